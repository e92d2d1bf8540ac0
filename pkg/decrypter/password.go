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

package decrypter

import (
	"errors"

	"github.com/palantir/stacktrace"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/sumup-oss/ansible-decryptor/pkg/vault/password"
)

var (
	errNoPasswords      = errors.New("no vault passwords to try")
	errNoMatchingSecret = errors.New("no matching vault password found")
)

// PasswordDecrypter decrypts vault blocks in-process with a set of candidate passwords.
type PasswordDecrypter struct {
	serdeService      envelopeDeserializer
	decryptionService envelopeDecrypter
	passwords         []*password.Password
	logger            *log.Entry
}

func NewPasswordDecrypter(
	serdeService envelopeDeserializer,
	decryptionService envelopeDecrypter,
	passwords []*password.Password,
	logger *log.Entry,
) *PasswordDecrypter {
	return &PasswordDecrypter{
		serdeService:      serdeService,
		decryptionService: decryptionService,
		passwords:         passwords,
		logger:            logger,
	}
}

func (d *PasswordDecrypter) Decrypt(ciphertext string) (string, error) {
	if len(d.passwords) < 1 {
		return "", &DecryptionError{Err: errNoPasswords}
	}

	encryptedEnvelope, err := d.serdeService.Deserialize([]byte(ciphertext))
	if err != nil {
		return "", &DecryptionError{
			Err: stacktrace.Propagate(err, "failed to parse vault block"),
		}
	}

	var attemptErrs error

	for _, candidate := range d.orderedPasswords(encryptedEnvelope.Header.VaultID) {
		plaintext, err := d.decryptionService.Decrypt(encryptedEnvelope, candidate.Secret)
		if err == nil {
			d.logger.Debugf("decrypted vault block with vault id %q from %s", candidate.ID, candidate.Source)

			return string(plaintext), nil
		}

		attemptErrs = multierr.Append(
			attemptErrs,
			stacktrace.Propagate(err, "vault id %q from %s", candidate.ID, candidate.Source),
		)
	}

	return "", &DecryptionError{
		Err: multierr.Append(errNoMatchingSecret, attemptErrs),
	}
}

// orderedPasswords puts passwords labeled with `vaultID` first, keeping the relative order otherwise.
func (d *PasswordDecrypter) orderedPasswords(vaultID string) []*password.Password {
	if vaultID == "" {
		return d.passwords
	}

	ordered := make([]*password.Password, 0, len(d.passwords))

	for _, candidate := range d.passwords {
		if candidate.ID == vaultID {
			ordered = append(ordered, candidate)
		}
	}

	for _, candidate := range d.passwords {
		if candidate.ID != vaultID {
			ordered = append(ordered, candidate)
		}
	}

	return ordered
}
