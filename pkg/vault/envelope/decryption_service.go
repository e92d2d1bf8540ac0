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

package envelope

import (
	stdAes "crypto/aes"
	"crypto/hmac"
	"crypto/sha256"
	"errors"

	"github.com/palantir/stacktrace"
	"golang.org/x/crypto/pbkdf2"
)

const (
	KeyDerivationIterations = 10000

	cipherKeyLength = 32
	hmacKeyLength   = 32
	ivLength        = 16
)

var (
	// ErrHMACMismatch is returned when the password does not match the envelope,
	// or the envelope was tampered with.
	ErrHMACMismatch  = errors.New("hmac verification failed. wrong vault password or corrupted vaulttext")
	errEmptyPassword = errors.New("invalid vault password. empty")
)

type DecryptionService struct {
	aesService   aesDecrypter
	pkcs7Service pkcs7Unpadder
}

func NewDecryptionService(aesService aesDecrypter, pkcs7Service pkcs7Unpadder) *DecryptionService {
	return &DecryptionService{
		aesService:   aesService,
		pkcs7Service: pkcs7Service,
	}
}

func (s *DecryptionService) Decrypt(envelope *EncryptedEnvelope, password []byte) ([]byte, error) {
	if len(password) < 1 {
		return nil, errEmptyPassword
	}

	cipherKey, hmacKey, iv := deriveKeys(password, envelope.Salt)

	mac := hmac.New(sha256.New, hmacKey)
	// NOTE: `Write` on a hash never returns an error.
	_, _ = mac.Write(envelope.Ciphertext)

	if !hmac.Equal(mac.Sum(nil), envelope.HMAC) {
		return nil, ErrHMACMismatch
	}

	padded, err := s.aesService.DecryptCTR(cipherKey, iv, envelope.Ciphertext)
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to decrypt vaulttext ciphertext")
	}

	plaintext, err := s.pkcs7Service.Unpad(padded, stdAes.BlockSize)
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to unpad decrypted vaulttext")
	}

	return plaintext, nil
}

func deriveKeys(password, salt []byte) (cipherKey, hmacKey, iv []byte) {
	derived := pbkdf2.Key(
		password,
		salt,
		KeyDerivationIterations,
		cipherKeyLength+hmacKeyLength+ivLength,
		sha256.New,
	)

	cipherKey = derived[:cipherKeyLength]
	hmacKey = derived[cipherKeyLength : cipherKeyLength+hmacKeyLength]
	iv = derived[cipherKeyLength+hmacKeyLength:]

	return cipherKey, hmacKey, iv
}
