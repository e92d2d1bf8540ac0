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

package password

const (
	// DefaultID is the vault-id Ansible assigns to passwords given without a label.
	DefaultID = "default"

	SourcePrompt       = "prompt"
	SourceFlagFile     = "--vault-password-file"
	SourceEnv          = "ANSIBLE_VAULT_PASSWORD"
	SourceEnvFile      = "ANSIBLE_VAULT_PASSWORD_FILE"
	SourceConfigFile   = "ansible.cfg vault_password_file"
	SourceDefaultFile  = "~/.vault_pass"
	SourceIdentityList = "vault identity list"
	SourceKeyring      = "keyring"
)

type Password struct {
	ID     string
	Secret []byte
	Source string
}

func NewPassword(id string, secret []byte, source string) *Password {
	if id == "" {
		id = DefaultID
	}

	return &Password{
		ID:     id,
		Secret: secret,
		Source: source,
	}
}

// Options selects the interactive and explicit password sources.
// Environment and `ansible.cfg` sources are always consulted.
type Options struct {
	AskVaultPass  bool
	PasswordFiles []string
	UseKeyring    bool
}
