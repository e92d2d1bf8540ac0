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

package pkcs7

import (
	"errors"
)

var (
	errZeroLengthValue        = errors.New("invalid bytes value. zero-length value")
	errLesserThanOneBlockSize = errors.New(
		"invalid blocksize. it must be greater than or equal to 1",
	)
	errPadSizeOutOfRange      = errors.New("invalid padding. pad size is zero or larger than blocksize")
	errInconsistentPadding    = errors.New("invalid padding. inconsistent or non-PKCS#7 padding")
	errNotMultipleOfBlockSize = errors.New(
		"invalid bytes value length. not padded in blocksize via PKCS#7",
	)
)

type Service struct{}

func NewPkcs7Service() *Service {
	return &Service{}
}

// Unpad strips PKCS#7 padding from a decrypted vault payload.
// The padded `bytesValue` length must be a multiple of `blockSize`
// and its last byte tells how many trailing bytes belong to the pad.
func (p *Service) Unpad(bytesValue []byte, blockSize int) ([]byte, error) {
	if len(bytesValue) == 0 {
		return nil, errZeroLengthValue
	}

	if blockSize <= 0 {
		return nil, errLesserThanOneBlockSize
	}

	if len(bytesValue)%blockSize != 0 {
		return nil, errNotMultipleOfBlockSize
	}

	padSize := int(bytesValue[len(bytesValue)-1])
	if padSize == 0 || padSize > blockSize {
		return nil, errPadSizeOutOfRange
	}

	unpaddedLength := len(bytesValue) - padSize

	for _, padByte := range bytesValue[unpaddedLength:] {
		if int(padByte) != padSize {
			return nil, errInconsistentPadding
		}
	}

	// NOTE: Copy so the caller can't reach the pad through the returned slice's capacity.
	unpadded := make([]byte, unpaddedLength)
	copy(unpadded, bytesValue[:unpaddedLength])

	return unpadded, nil
}
