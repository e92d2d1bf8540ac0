// Copyright 2018 SumUp Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package aes

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/palantir/stacktrace"
)

const (
	// NOTE: Ansible Vault's AES256 cipher uses a 32 bytes key.
	aesCTRKeySize = 32
	// NOTE: The IV doubles as the initial 128-bit counter block.
	aesCTRIVSize = aes.BlockSize
)

var (
	errInvalidCTRKeySize = fmt.Errorf(
		"invalid AES key size for CTR decryption. it must be exactly %d",
		aesCTRKeySize,
	)
	errInvalidCTRIVSize = fmt.Errorf(
		"invalid AES IV size for CTR decryption. it must be exactly %d",
		aesCTRIVSize,
	)
	errInvalidEmptyPayload = errors.New("invalid empty payload to encrypt or decrypt")
)

type Service struct{}

func NewAesService() *Service {
	return &Service{}
}

// DecryptCTR decrypts `ciphertext` with AES-256 in counter mode,
// using `iv` as the initial counter value.
func (s *Service) DecryptCTR(key []byte, iv []byte, ciphertext []byte) ([]byte, error) {
	if len(key) != aesCTRKeySize {
		return nil, errInvalidCTRKeySize
	}

	if len(iv) != aesCTRIVSize {
		return nil, errInvalidCTRIVSize
	}

	if len(ciphertext) < 1 {
		return nil, errInvalidEmptyPayload
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, stacktrace.Propagate(err, "unable to create AES cipher")
	}

	plaintext := make([]byte, len(ciphertext))

	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(plaintext, ciphertext)

	return plaintext, nil
}
