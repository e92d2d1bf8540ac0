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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunc_Decrypt(t *testing.T) {
	t.Run(
		"it delegates to the wrapped function",
		func(t *testing.T) {
			t.Parallel()

			var received string

			var decrypter Decrypter = Func(
				func(ciphertext string) (string, error) {
					received = ciphertext
					return "plain", nil
				},
			)

			actualReturn, actualErr := decrypter.Decrypt("cipher\n")

			assert.Nil(t, actualErr)
			assert.Equal(t, "plain", actualReturn)
			assert.Equal(t, "cipher\n", received)
		},
	)
}

func TestDecryptionError_Error(t *testing.T) {
	t.Run(
		"when 'Err' is blank, it reports the exit code and trimmed stderr",
		func(t *testing.T) {
			t.Parallel()

			err := &DecryptionError{
				ExitCode: 1,
				Stderr:   "ERROR! Decryption failed (no vault secrets were found that could decrypt)\n",
			}

			assert.Equal(
				t,
				"failed to decrypt vault block, decryptor exited with code 1: "+
					"ERROR! Decryption failed (no vault secrets were found that could decrypt)",
				err.Error(),
			)
			assert.Nil(t, err.Unwrap())
		},
	)

	t.Run(
		"when 'Err' is set, it reports and unwraps it",
		func(t *testing.T) {
			t.Parallel()

			cause := errors.New("bad hmac")
			err := &DecryptionError{Err: cause}

			assert.Equal(t, "failed to decrypt vault block: bad hmac", err.Error())
			assert.True(t, errors.Is(err, cause))
		},
	)
}

func TestProcessLaunchError_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("executable file not found in $PATH")
	err := &ProcessLaunchError{
		Command: "ansible-vault",
		Err:     cause,
	}

	assert.Equal(t, "failed to launch ansible-vault: executable file not found in $PATH", err.Error())
	assert.True(t, errors.Is(err, cause))
}
