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

package testutils

import (
	stdOs "os"
	"path/filepath"
	"strings"
	"testing"

	vault "github.com/sosedoff/ansible-vault-go"
	"github.com/stretchr/testify/require"
)

// VaultBlock encrypts `plaintext` with `password` and returns it as a YAML
// `<key>: !vault |` block whose header is indented by `indent` spaces.
func VaultBlock(t *testing.T, key, plaintext, password string, indent int) string {
	t.Helper()

	vaulttext, err := vault.Encrypt(plaintext, password)
	require.Nil(t, err)

	headerIndent := strings.Repeat(" ", indent)
	payloadIndent := strings.Repeat(" ", indent+2)

	var block strings.Builder

	block.WriteString(headerIndent + key + ": !vault |\n")

	for _, line := range strings.Split(vaulttext, "\n") {
		if line == "" {
			continue
		}

		block.WriteString(payloadIndent + line + "\n")
	}

	return block.String()
}

// WriteExecutable writes a `/bin/sh` script with `body` to `dir` and returns its path.
func WriteExecutable(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	err := stdOs.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755)
	require.Nil(t, err)

	return path
}
