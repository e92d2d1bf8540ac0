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
	"errors"
	"strings"

	"github.com/palantir/stacktrace"
)

const (
	bodyPartSeparator = "\n"
)

var (
	errEmptyVaulttext   = errors.New("invalid vaulttext. empty")
	errMissingBody      = errors.New("invalid vaulttext. missing body after header line")
	errInvalidBodyParts = errors.New(
		"invalid vaulttext body. it must be in format of `<hex salt>\\n<hex hmac>\\n<hex ciphertext>`",
	)
	errEmptySalt       = errors.New("invalid vaulttext salt. empty")
	errEmptyHMAC       = errors.New("invalid vaulttext hmac. empty")
	errEmptyCiphertext = errors.New("invalid vaulttext ciphertext. empty")
)

type SerdeService struct {
	headerService headerService
	hexSerde      hexSerde
}

func NewSerdeService(headerService headerService, hexSerde hexSerde) *SerdeService {
	return &SerdeService{
		headerService: headerService,
		hexSerde:      hexSerde,
	}
}

func (s *SerdeService) Deserialize(vaulttext []byte) (*EncryptedEnvelope, error) {
	trimmed := strings.TrimSpace(string(vaulttext))
	if len(trimmed) < 1 {
		return nil, errEmptyVaulttext
	}

	headerLine, body, found := strings.Cut(trimmed, "\n")
	if !found || len(strings.TrimSpace(body)) < 1 {
		return nil, errMissingBody
	}

	parsedHeader, err := s.headerService.Deserialize(headerLine)
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to deserialize vaulttext header")
	}

	decodedBody, err := s.hexSerde.Deserialize([]byte(body))
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to deserialize hex encoded vaulttext body")
	}

	bodyParts := strings.SplitN(string(decodedBody), bodyPartSeparator, 3)
	if len(bodyParts) != 3 {
		return nil, errInvalidBodyParts
	}

	salt, err := s.deserializeBodyPart(bodyParts[0], errEmptySalt)
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to deserialize hex encoded salt")
	}

	hmac, err := s.deserializeBodyPart(bodyParts[1], errEmptyHMAC)
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to deserialize hex encoded hmac")
	}

	ciphertext, err := s.deserializeBodyPart(bodyParts[2], errEmptyCiphertext)
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to deserialize hex encoded ciphertext")
	}

	return NewEncryptedEnvelope(parsedHeader, salt, hmac, ciphertext), nil
}

func (s *SerdeService) deserializeBodyPart(part string, errEmpty error) ([]byte, error) {
	if len(strings.TrimSpace(part)) < 1 {
		return nil, errEmpty
	}

	return s.hexSerde.Deserialize([]byte(part))
}
