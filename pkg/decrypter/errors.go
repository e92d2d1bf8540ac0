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
	"fmt"
	"strings"
)

// DecryptionError means the decryptor ran but refused the ciphertext.
// `Stderr` holds the diagnostic output of an external decryptor,
// `Err` the cause reported by an in-process one.
type DecryptionError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *DecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to decrypt vault block: %s", e.Err)
	}

	return fmt.Sprintf(
		"failed to decrypt vault block, decryptor exited with code %d: %s",
		e.ExitCode,
		strings.TrimSpace(e.Stderr),
	)
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// ProcessLaunchError means the external decryptor could not be started or talked to.
type ProcessLaunchError struct {
	Command string
	Err     error
}

func (e *ProcessLaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %s", e.Command, e.Err)
}

func (e *ProcessLaunchError) Unwrap() error {
	return e.Err
}
