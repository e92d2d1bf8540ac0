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

import (
	"errors"
	stdOs "os"
	"path/filepath"
	"testing"

	"github.com/palantir/stacktrace"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumup-oss/go-pkgs/os"

	"github.com/sumup-oss/ansible-decryptor/pkg/command"
	"github.com/sumup-oss/ansible-decryptor/pkg/ini"
	testPassword "github.com/sumup-oss/ansible-decryptor/pkg/vault/password/test"
)

type resolverFixture struct {
	resolver *Resolver
	prompter *testPassword.MockPrompter
	keyring  *testPassword.MockKeyringService
	hook     *test.Hook
	home     string
	env      map[string]string
}

func newResolverFixture(t *testing.T) *resolverFixture {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	entry := log.NewEntry(logger)

	prompter := &testPassword.MockPrompter{}
	prompter.Test(t)

	keyringService := &testPassword.MockKeyringService{}
	keyringService.Test(t)

	fixture := &resolverFixture{
		prompter: prompter,
		keyring:  keyringService,
		hook:     hook,
		home:     t.TempDir(),
		env:      map[string]string{},
	}

	resolver := NewResolver(
		&os.RealOsExecutor{},
		ini.NewIniService(),
		prompter,
		keyringService,
		command.NewRunner(entry),
		entry,
	)

	resolver.configSearchPath = []string{"~/.ansible.cfg"}
	resolver.lookupEnv = func(key string) (string, bool) {
		value, ok := fixture.env[key]
		return value, ok
	}
	resolver.homeDir = func() (string, error) {
		return fixture.home, nil
	}
	resolver.currentUser = func() (string, error) {
		return "operator", nil
	}

	fixture.resolver = resolver

	return fixture
}

func (f *resolverFixture) writeHomeFile(t *testing.T, name, content string, perm stdOs.FileMode) string {
	t.Helper()

	path := filepath.Join(f.home, name)

	err := stdOs.WriteFile(path, []byte(content), perm)
	require.Nil(t, err)

	return path
}

func (f *resolverFixture) warnings() []string {
	var messages []string

	for _, entry := range f.hook.AllEntries() {
		if entry.Level == log.WarnLevel {
			messages = append(messages, entry.Message)
		}
	}

	return messages
}

func secretsOf(passwords []*Password) []string {
	var secrets []string

	for _, password := range passwords {
		secrets = append(secrets, string(password.Secret))
	}

	return secrets
}

func TestIsClientScript(t *testing.T) {
	t.Parallel()

	assert.True(t, isClientScript("/usr/local/bin/vault-keyring-client"))
	assert.True(t, isClientScript("/usr/local/bin/vault-keyring-client.py"))
	assert.False(t, isClientScript("/usr/local/bin/vault-pass.sh"))
	assert.False(t, isClientScript("client"))
}

func TestResolver_Resolve(t *testing.T) {
	t.Run(
		"when no source yields a password, it returns 'ErrNoPasswords'",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{})

			require.Nil(t, actualReturn)
			assert.Equal(t, ErrNoPasswords, actualErr)
		},
	)

	t.Run(
		"when 'ANSIBLE_VAULT_PASSWORD' is set, it returns it",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.env["ANSIBLE_VAULT_PASSWORD"] = "from-env"

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{})

			require.Nil(t, actualErr)
			require.Len(t, actualReturn, 1)
			assert.Equal(t, NewPassword(DefaultID, []byte("from-env"), SourceEnv), actualReturn[0])
		},
	)

	t.Run(
		"when 'AskVaultPass' is set, it prompts for the password",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.prompter.On("Prompt", "Vault password: ").Return([]byte("typed"), nil)

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{AskVaultPass: true})

			require.Nil(t, actualErr)
			assert.Equal(t, []string{"typed"}, secretsOf(actualReturn))
			assert.Equal(t, SourcePrompt, actualReturn[0].Source)

			fixture.prompter.AssertExpectations(t)
		},
	)

	t.Run(
		"when 'AskVaultPass' is set, but the typed password is empty, it returns an error",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.prompter.On("Prompt", "Vault password: ").Return([]byte{}, nil)

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{AskVaultPass: true})

			require.Nil(t, actualReturn)
			assert.Contains(t, actualErr.Error(), "failed to read vault password from prompt")
			assert.Equal(t, errEmptyPassword, stacktrace.RootCause(actualErr))
		},
	)

	t.Run(
		"when 'PasswordFiles' are specified, it reads and trims every one of them",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			first := fixture.writeHomeFile(t, "first", "  one\n", 0o600)
			second := fixture.writeHomeFile(t, "second", "two\r\n", 0o600)

			actualReturn, actualErr := fixture.resolver.Resolve(
				&Options{PasswordFiles: []string{first, second}},
			)

			require.Nil(t, actualErr)
			assert.Equal(t, []string{"one", "two"}, secretsOf(actualReturn))
			assert.Equal(t, SourceFlagFile, actualReturn[1].Source)
		},
	)

	t.Run(
		"when a specified password file does not exist, it returns an error",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)

			actualReturn, actualErr := fixture.resolver.Resolve(
				&Options{PasswordFiles: []string{"~/missing"}},
			)

			require.Nil(t, actualReturn)
			assert.Contains(t, actualErr.Error(), "failed to read vault password file ~/missing")
		},
	)

	t.Run(
		"when a specified password file is empty, it returns an error",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			path := fixture.writeHomeFile(t, "empty", "\n", 0o600)

			actualReturn, actualErr := fixture.resolver.Resolve(
				&Options{PasswordFiles: []string{path}},
			)

			require.Nil(t, actualReturn)
			assert.Contains(t, actualErr.Error(), errEmptyPassword.Error())
		},
	)

	t.Run(
		"when 'ANSIBLE_VAULT_PASSWORD_FILE' is set, it expands variables and takes precedence over ansible.cfg",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.writeHomeFile(t, "env_pass", "from-env-file", 0o600)
			fixture.writeHomeFile(t, "cfg_pass", "from-cfg-file", 0o600)
			fixture.writeHomeFile(t, ".ansible.cfg", "[defaults]\nvault_password_file = ~/cfg_pass\n", 0o600)
			fixture.env["SECRETS_DIR"] = fixture.home
			fixture.env["ANSIBLE_VAULT_PASSWORD_FILE"] = "${SECRETS_DIR}/env_pass"

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{})

			require.Nil(t, actualErr)
			assert.Equal(t, []string{"from-env-file"}, secretsOf(actualReturn))
			assert.Equal(t, SourceEnvFile, actualReturn[0].Source)
		},
	)

	t.Run(
		"when ansible.cfg sets 'vault_password_file', it reads it",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.writeHomeFile(t, "cfg_pass", "from-cfg-file\n", 0o600)
			fixture.writeHomeFile(t, ".ansible.cfg", "[defaults]\nvault_password_file = ~/cfg_pass\n", 0o600)

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{})

			require.Nil(t, actualErr)
			assert.Equal(t, []string{"from-cfg-file"}, secretsOf(actualReturn))
			assert.Equal(t, SourceConfigFile, actualReturn[0].Source)
		},
	)

	t.Run(
		"when 'ANSIBLE_CONFIG' is set, it is used before the search path",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.writeHomeFile(t, "custom_pass", "from-custom-cfg", 0o600)
			fixture.writeHomeFile(t, "cfg_pass", "from-home-cfg", 0o600)
			fixture.writeHomeFile(t, ".ansible.cfg", "[defaults]\nvault_password_file = ~/cfg_pass\n", 0o600)
			customConfig := fixture.writeHomeFile(
				t,
				"custom.cfg",
				"[defaults]\nvault_password_file = ~/custom_pass\n",
				0o600,
			)
			fixture.env["ANSIBLE_CONFIG"] = customConfig

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{})

			require.Nil(t, actualErr)
			assert.Equal(t, []string{"from-custom-cfg"}, secretsOf(actualReturn))
		},
	)

	t.Run(
		"when ansible.cfg is not valid INI, it returns an error",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.writeHomeFile(t, ".ansible.cfg", "[defaults\n", 0o600)

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{})

			require.Nil(t, actualReturn)
			assert.Contains(t, actualErr.Error(), "failed to parse ansible config")
		},
	)

	t.Run(
		"when '~/.vault_pass' exists and nothing else points to a file, it reads it",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.writeHomeFile(t, ".vault_pass", "from-default-file\n", 0o600)

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{})

			require.Nil(t, actualErr)
			assert.Equal(t, []string{"from-default-file"}, secretsOf(actualReturn))
			assert.Equal(t, SourceDefaultFile, actualReturn[0].Source)
		},
	)

	t.Run(
		"when 'ANSIBLE_VAULT_IDENTITY_LIST' is set, it reads valid identities and skips broken ones",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.writeHomeFile(t, "dev_pass", "dev-secret", 0o600)
			fixture.env["ANSIBLE_VAULT_IDENTITY_LIST"] = "dev@~/dev_pass, no-id-here, prod@~/missing,"

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{})

			require.Nil(t, actualErr)
			require.Len(t, actualReturn, 1)
			assert.Equal(t, NewPassword("dev", []byte("dev-secret"), SourceIdentityList), actualReturn[0])
			assert.Len(t, fixture.warnings(), 2)
		},
	)

	t.Run(
		"when ansible.cfg sets 'vault_identity_list' with a prompt identity, it prompts for it",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.writeHomeFile(t, ".ansible.cfg", "[defaults]\nvault_identity_list = stage@prompt\n", 0o600)
			fixture.prompter.On("Prompt", "Vault password (stage): ").Return([]byte("stage-secret"), nil)

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{})

			require.Nil(t, actualErr)
			require.Len(t, actualReturn, 1)
			assert.Equal(t, "stage", actualReturn[0].ID)
			assert.Equal(t, []byte("stage-secret"), actualReturn[0].Secret)

			fixture.prompter.AssertExpectations(t)
		},
	)

	t.Run(
		"when 'UseKeyring' is set, it reads the keyname and username from ansible.cfg",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.writeHomeFile(t, ".ansible.cfg", "[vault]\nkeyname = ops\nusername = deployer\n", 0o600)
			fixture.keyring.On("Get", "ops", "deployer").Return("keyring-secret", nil)

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{UseKeyring: true})

			require.Nil(t, actualErr)
			assert.Equal(t, []string{"keyring-secret"}, secretsOf(actualReturn))
			assert.Equal(t, SourceKeyring, actualReturn[0].Source)

			fixture.keyring.AssertExpectations(t)
		},
	)

	t.Run(
		"when 'UseKeyring' is set without ansible.cfg, it uses the default keyname and current user",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.keyring.On("Get", "ansible", "operator").Return("keyring-secret", nil)

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{UseKeyring: true})

			require.Nil(t, actualErr)
			assert.Equal(t, []string{"keyring-secret"}, secretsOf(actualReturn))

			fixture.keyring.AssertExpectations(t)
		},
	)

	t.Run(
		"when 'UseKeyring' is set, but the keyring lookup fails, it returns an error",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			fixture.keyring.On("Get", "ansible", "operator").Return("", errors.New("keyringError"))

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{UseKeyring: true})

			require.Nil(t, actualReturn)
			assert.Contains(t, actualErr.Error(), "failed to read vault password from keyring")

			fixture.keyring.AssertExpectations(t)
		},
	)

	t.Run(
		"when every source is configured, it returns passwords in precedence order",
		func(t *testing.T) {
			t.Parallel()

			fixture := newResolverFixture(t)
			flagFile := fixture.writeHomeFile(t, "flag_pass", "flag-file", 0o600)
			fixture.writeHomeFile(t, "cfg_pass", "cfg-file", 0o600)
			fixture.writeHomeFile(t, "dev_pass", "identity", 0o600)
			fixture.writeHomeFile(
				t,
				".ansible.cfg",
				"[defaults]\nvault_password_file = ~/cfg_pass\nvault_identity_list = dev@~/dev_pass\n",
				0o600,
			)
			fixture.env["ANSIBLE_VAULT_PASSWORD"] = "env"
			fixture.prompter.On("Prompt", "Vault password: ").Return([]byte("prompt"), nil)
			fixture.keyring.On("Get", "ansible", "operator").Return("keyring", nil)

			actualReturn, actualErr := fixture.resolver.Resolve(
				&Options{
					AskVaultPass:  true,
					PasswordFiles: []string{flagFile},
					UseKeyring:    true,
				},
			)

			require.Nil(t, actualErr)
			assert.Equal(
				t,
				[]string{"prompt", "flag-file", "env", "cfg-file", "identity", "keyring"},
				secretsOf(actualReturn),
			)
		},
	)
}

// NOTE: Subtests that exec freshly written scripts do not run in parallel,
// a concurrent fork can hold the write descriptor open and the exec fails with ETXTBSY.
func TestResolver_Resolve_PasswordScripts(t *testing.T) {
	t.Run(
		"when a password file is executable, it uses the first line of its stdout",
		func(t *testing.T) {
			fixture := newResolverFixture(t)
			script := fixture.writeHomeFile(t, "pass.sh", "#!/bin/sh\necho scripted\necho ignored\n", 0o700)

			actualReturn, actualErr := fixture.resolver.Resolve(
				&Options{PasswordFiles: []string{script}},
			)

			require.Nil(t, actualErr)
			assert.Equal(t, []string{"scripted"}, secretsOf(actualReturn))
		},
	)

	t.Run(
		"when an identity points to a client script, it passes the vault id to it",
		func(t *testing.T) {
			fixture := newResolverFixture(t)
			fixture.writeHomeFile(t, "vault-keyring-client.sh", "#!/bin/sh\necho \"$1=$2\"\n", 0o700)
			fixture.env["ANSIBLE_VAULT_IDENTITY_LIST"] = "prod@~/vault-keyring-client.sh"

			actualReturn, actualErr := fixture.resolver.Resolve(&Options{})

			require.Nil(t, actualErr)
			require.Len(t, actualReturn, 1)
			assert.Equal(t, "prod", actualReturn[0].ID)
			assert.Equal(t, []byte("--vault-id=prod"), actualReturn[0].Secret)
		},
	)

	t.Run(
		"when an executable password file exits non-zero, it returns an error",
		func(t *testing.T) {
			fixture := newResolverFixture(t)
			script := fixture.writeHomeFile(t, "pass.sh", "#!/bin/sh\necho denied >&2\nexit 1\n", 0o700)

			actualReturn, actualErr := fixture.resolver.Resolve(
				&Options{PasswordFiles: []string{script}},
			)

			require.Nil(t, actualReturn)
			assert.Contains(t, actualErr.Error(), "exited with code 1")
			assert.Len(t, fixture.warnings(), 1)
		},
	)
}
