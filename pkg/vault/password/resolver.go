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
	"bufio"
	"bytes"
	"errors"
	"fmt"
	stdOs "os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/palantir/stacktrace"
	log "github.com/sirupsen/logrus"

	iniPkg "github.com/sumup-oss/ansible-decryptor/pkg/ini"
)

const (
	envPassword     = "ANSIBLE_VAULT_PASSWORD"
	envPasswordFile = "ANSIBLE_VAULT_PASSWORD_FILE"
	envIdentityList = "ANSIBLE_VAULT_IDENTITY_LIST"

	defaultPasswordFile = "~/.vault_pass"

	identitySeparator   = "@"
	identityListSep     = ","
	identityPromptValue = "prompt"

	promptMessage = "Vault password: "
)

var (
	// ErrNoPasswords is returned when no source yielded a vault password.
	ErrNoPasswords = errors.New(
		"no vault password found. use --ask-vault-pass, --vault-password-file, " +
			"ANSIBLE_VAULT_PASSWORD or ANSIBLE_VAULT_PASSWORD_FILE",
	)
	errEmptyPassword = errors.New("vault password is empty")
)

type Resolver struct {
	osExecutor     fileReader
	iniService     iniParser
	prompter       prompter
	keyringService keyringGetter
	commandRunner  commandRunner
	logger         *log.Entry

	configSearchPath []string
	lookupEnv        func(key string) (string, bool)
	stat             func(path string) (stdOs.FileInfo, error)
	homeDir          func() (string, error)
	currentUser      func() (string, error)
}

func NewResolver(
	osExecutor fileReader,
	iniService iniParser,
	prompter prompter,
	keyringService keyringGetter,
	commandRunner commandRunner,
	logger *log.Entry,
) *Resolver {
	return &Resolver{
		osExecutor:       osExecutor,
		iniService:       iniService,
		prompter:         prompter,
		keyringService:   keyringService,
		commandRunner:    commandRunner,
		logger:           logger,
		configSearchPath: defaultConfigSearchPath,
		lookupEnv:        stdOs.LookupEnv,
		stat:             stdOs.Stat,
		homeDir:          stdOs.UserHomeDir,
		currentUser: func() (string, error) {
			current, err := user.Current()
			if err != nil {
				return "", err
			}

			return current.Username, nil
		},
	}
}

// Resolve collects vault passwords from every configured source, in precedence order.
func (r *Resolver) Resolve(options *Options) ([]*Password, error) {
	config, err := r.loadConfig()
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to load ansible config")
	}

	var passwords []*Password

	if options.AskVaultPass {
		secret, err := r.prompt()
		if err != nil {
			return nil, stacktrace.Propagate(err, "failed to read vault password from prompt")
		}

		passwords = append(passwords, NewPassword(DefaultID, secret, SourcePrompt))
	}

	for _, path := range options.PasswordFiles {
		secret, err := r.readPasswordFile(path, DefaultID)
		if err != nil {
			return nil, stacktrace.Propagate(err, "failed to read vault password file %s", path)
		}

		passwords = append(passwords, NewPassword(DefaultID, secret, SourceFlagFile))
	}

	if value, ok := r.lookupEnv(envPassword); ok && value != "" {
		passwords = append(passwords, NewPassword(DefaultID, []byte(value), SourceEnv))
	}

	filePassword, err := r.resolveDefaultPasswordFile(config)
	if err != nil {
		return nil, err
	}

	if filePassword != nil {
		passwords = append(passwords, filePassword)
	}

	passwords = append(passwords, r.resolveIdentityList(config)...)

	if options.UseKeyring {
		keyringPassword, err := r.resolveKeyring(config)
		if err != nil {
			return nil, stacktrace.Propagate(err, "failed to read vault password from keyring")
		}

		passwords = append(passwords, keyringPassword)
	}

	if len(passwords) < 1 {
		return nil, ErrNoPasswords
	}

	for _, password := range passwords {
		r.logger.Debugf("resolved vault password for id %q from %s", password.ID, password.Source)
	}

	return passwords, nil
}

func (r *Resolver) prompt() ([]byte, error) {
	secret, err := r.prompter.Prompt(promptMessage)
	if err != nil {
		return nil, err
	}

	if len(secret) < 1 {
		return nil, errEmptyPassword
	}

	return secret, nil
}

func (r *Resolver) resolveDefaultPasswordFile(config *iniPkg.Content) (*Password, error) {
	path, source := "", ""

	if value, ok := r.lookupEnv(envPasswordFile); ok && value != "" {
		path, source = value, SourceEnvFile
	} else if value := config.Value(configSectionDefaults, configKeyPasswordFile); value != "" {
		path, source = value, SourceConfigFile
	}

	if path != "" {
		secret, err := r.readPasswordFile(path, DefaultID)
		if err != nil {
			return nil, stacktrace.Propagate(err, "failed to read vault password file %s from %s", path, source)
		}

		return NewPassword(DefaultID, secret, source), nil
	}

	expanded, err := r.expandPath(defaultPasswordFile)
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to expand %s", defaultPasswordFile)
	}

	if _, err := r.stat(expanded); err != nil {
		// NOTE: `~/.vault_pass` is only a convention, its absence is not an error.
		return nil, nil
	}

	secret, err := r.readPasswordFile(expanded, DefaultID)
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to read vault password file %s", expanded)
	}

	return NewPassword(DefaultID, secret, SourceDefaultFile), nil
}

// resolveIdentityList reads `id@source` entries. Broken entries are skipped with a warning.
func (r *Resolver) resolveIdentityList(config *iniPkg.Content) []*Password {
	list, ok := r.lookupEnv(envIdentityList)
	if !ok || list == "" {
		list = config.Value(configSectionDefaults, configKeyIdentityList)
	}

	var passwords []*Password

	for _, entry := range strings.Split(list, identityListSep) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		id, source, found := strings.Cut(entry, identitySeparator)
		if !found || id == "" || source == "" {
			r.logger.Warnf("skipping vault identity %q. it must be in format of `<id>@<password file>`", entry)
			continue
		}

		var (
			secret []byte
			err    error
		)

		if source == identityPromptValue {
			secret, err = r.prompter.Prompt(fmt.Sprintf("Vault password (%s): ", id))
			if err == nil && len(secret) < 1 {
				err = errEmptyPassword
			}
		} else {
			secret, err = r.readPasswordFile(source, id)
		}

		if err != nil {
			r.logger.Warnf("skipping vault identity %q: %s", id, err)
			continue
		}

		passwords = append(passwords, NewPassword(id, secret, SourceIdentityList))
	}

	return passwords
}

func (r *Resolver) resolveKeyring(config *iniPkg.Content) (*Password, error) {
	keyname := config.Value(configSectionVault, configKeyKeyname)
	if keyname == "" {
		keyname = defaultKeyname
	}

	username := config.Value(configSectionVault, configKeyUsername)
	if username == "" {
		var err error

		username, err = r.currentUser()
		if err != nil {
			return nil, stacktrace.Propagate(err, "failed to resolve current user for keyring lookup")
		}
	}

	secret, err := r.keyringService.Get(keyname, username)
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to get keyring secret %s for user %s", keyname, username)
	}

	if secret == "" {
		return nil, errEmptyPassword
	}

	return NewPassword(DefaultID, []byte(secret), SourceKeyring), nil
}

// readPasswordFile returns the password stored in `path`.
// Executable files are run and the first line of their stdout is the password.
func (r *Resolver) readPasswordFile(path, vaultID string) ([]byte, error) {
	expanded, err := r.expandPath(path)
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to expand vault password file path")
	}

	info, err := r.stat(expanded)
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to stat vault password file")
	}

	var secret []byte

	if !info.IsDir() && info.Mode().Perm()&0o111 != 0 {
		secret, err = r.runPasswordScript(expanded, vaultID)
		if err != nil {
			return nil, err
		}
	} else {
		content, err := r.osExecutor.ReadFile(expanded)
		if err != nil {
			return nil, stacktrace.Propagate(err, "failed to read vault password file")
		}

		secret = bytes.TrimSpace(content)
	}

	if len(secret) < 1 {
		return nil, errEmptyPassword
	}

	return secret, nil
}

func (r *Resolver) runPasswordScript(path, vaultID string) ([]byte, error) {
	var args []string

	// NOTE: Client scripts (`*-client`, `*-client.<ext>`) are told which vault-id is wanted.
	if isClientScript(path) && vaultID != DefaultID {
		args = []string{"--vault-id", vaultID}
	}

	result, err := r.commandRunner.Run(path, args, nil)
	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to run vault password script")
	}

	if !result.Success() {
		r.logger.Warnf("vault password script %s: %s", path, bytes.TrimSpace(result.Stderr))

		return nil, fmt.Errorf("vault password script %s exited with code %d", path, result.ExitCode)
	}

	scanner := bufio.NewScanner(bytes.NewReader(result.Stdout))
	if !scanner.Scan() {
		return nil, nil
	}

	return append([]byte(nil), bytes.TrimSpace(scanner.Bytes())...), nil
}

func isClientScript(path string) bool {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return strings.HasSuffix(base, "-client")
}
