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

const (
	DefaultVaultCommand = "ansible-vault"
)

// DefaultVaultCommandArgs make `ansible-vault` read the ciphertext from stdin
// and write the plaintext to stdout.
var DefaultVaultCommandArgs = []string{"decrypt", "--output=-"}

type CommandDecrypter struct {
	runner commandRunner
	name   string
	args   []string
}

func NewCommandDecrypter(runner commandRunner, name string, args []string) *CommandDecrypter {
	return &CommandDecrypter{
		runner: runner,
		name:   name,
		args:   args,
	}
}

func (d *CommandDecrypter) Decrypt(ciphertext string) (string, error) {
	result, err := d.runner.Run(d.name, d.args, []byte(ciphertext))
	if err != nil {
		return "", &ProcessLaunchError{
			Command: d.name,
			Err:     err,
		}
	}

	if !result.Success() {
		return "", &DecryptionError{
			ExitCode: result.ExitCode,
			Stderr:   string(result.Stderr),
		}
	}

	return string(result.Stdout), nil
}
