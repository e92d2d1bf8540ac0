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

package header

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sumup-oss/ansible-decryptor/pkg/vault"
)

const (
	headerPartSeparator = ";"
)

var (
	headerAllowedFormatIDs = []string{DefaultFormatID}
	headerAllowedVersions  = []string{DefaultVersion, VaultIDVersion}
	headerAllowedCiphers   = []string{DefaultCipher}

	errHeaderPartsMismatch = errors.New("did not find 3 or 4 header parts")
	errHeaderFormatInvalid = fmt.Errorf(
		"did not find format id equal to any of allowed format ids: %#v",
		headerAllowedFormatIDs,
	)
	errHeaderVersionInvalid = fmt.Errorf(
		"did not find version equal to any of allowed header versions: %#v",
		headerAllowedVersions,
	)
	errHeaderCipherInvalid = fmt.Errorf(
		"did not find cipher equal to any of allowed ciphers: %#v",
		headerAllowedCiphers,
	)
	errHeaderVaultIDVersion = fmt.Errorf(
		"vault id is only allowed with header version %s",
		VaultIDVersion,
	)
	errHeaderBlankVaultID = errors.New("vault id part is blank")
)

type HeaderService struct{}

func NewHeaderService() *HeaderService {
	return &HeaderService{}
}

func (s *HeaderService) Deserialize(content string) (*Header, error) {
	headerParts := strings.Split(
		strings.TrimSpace(content),
		headerPartSeparator,
	)

	if len(headerParts) != 3 && len(headerParts) != 4 {
		return nil, errHeaderPartsMismatch
	}

	for i := range headerParts {
		headerParts[i] = strings.TrimSpace(headerParts[i])
	}

	if !vault.Contains(headerAllowedFormatIDs, headerParts[0]) {
		return nil, errHeaderFormatInvalid
	}

	if !vault.Contains(headerAllowedVersions, headerParts[1]) {
		return nil, errHeaderVersionInvalid
	}

	if !vault.Contains(headerAllowedCiphers, headerParts[2]) {
		return nil, errHeaderCipherInvalid
	}

	header := &Header{
		FormatID: headerParts[0],
		Version:  headerParts[1],
		Cipher:   headerParts[2],
	}

	if len(headerParts) == 4 {
		if header.Version != VaultIDVersion {
			return nil, errHeaderVaultIDVersion
		}

		if headerParts[3] == "" {
			return nil, errHeaderBlankVaultID
		}

		header.VaultID = headerParts[3]
	}

	return header, nil
}
