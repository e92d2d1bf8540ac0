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

package cmd

import (
	"fmt"
	"strings"

	"github.com/palantir/stacktrace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/sumup-oss/go-pkgs/os"

	"github.com/sumup-oss/ansible-decryptor/cmd/external_interfaces"
	"github.com/sumup-oss/ansible-decryptor/internal/cli"
	"github.com/sumup-oss/ansible-decryptor/internal/version"
	"github.com/sumup-oss/ansible-decryptor/pkg/command"
	"github.com/sumup-oss/ansible-decryptor/pkg/decrypter"
	"github.com/sumup-oss/ansible-decryptor/pkg/document"
	"github.com/sumup-oss/ansible-decryptor/pkg/vault/envelope"
	"github.com/sumup-oss/ansible-decryptor/pkg/vault/header"
	"github.com/sumup-oss/ansible-decryptor/pkg/vault/password"
)

const (
	BackendCommand = "command"
	BackendBuiltin = "builtin"

	DefaultLogLevel = "info"
)

type rootOptions struct {
	backend          string
	vaultCommand     string
	vaultCommandArgs []string
	inline           bool
	askVaultPass     bool
	passwordFiles    []string
	useKeyring       bool
	logLevel         string
}

func NewRootCmd(
	osExecutor os.OsExecutor,
	logger *log.Logger,
	defaultLogLevel string,
	aesSvc external_interfaces.AesService,
	pkcs7Svc external_interfaces.Pkcs7Service,
	hexSvc external_interfaces.HexService,
	iniSvc external_interfaces.IniService,
	keyringSvc external_interfaces.KeyringService,
) *cobra.Command {
	if defaultLogLevel == "" {
		defaultLogLevel = DefaultLogLevel
	}

	options := &rootOptions{}

	cmdInstance := &cobra.Command{
		Use:     "ansible-decryptor [flags] <vault_file.yml>",
		Short:   "Print a YAML file with its `!vault |` blocks decrypted",
		Long:    "Print a YAML file to stdout with every inline Ansible Vault `!vault |` block replaced by its plaintext",
		Version: version.Version,
		// NOTE: Silence errors and usage since it'll log twice,
		// due to bad cobra API design and the fact that `RunE` actually returns the error
		// that it's going to log either way.
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &UsageError{
					Reason: fmt.Sprintf("expected exactly 1 argument, received %d", len(args)),
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(options.logLevel)
			if err != nil {
				return &UsageError{Reason: fmt.Sprintf("invalid --log-level %q", options.logLevel)}
			}

			logger.SetLevel(level)
			entry := log.NewEntry(logger)

			path := args[0]

			content, err := osExecutor.ReadFile(path)
			if err != nil {
				return &FileReadError{
					Path: path,
					Err:  err,
				}
			}

			vaultDecrypter, err := newDecrypter(
				options,
				osExecutor,
				entry,
				aesSvc,
				pkcs7Svc,
				hexSvc,
				iniSvc,
				keyringSvc,
			)
			if err != nil {
				return stacktrace.Propagate(err, "failed to set up %s decryption backend", options.backend)
			}

			rendered, err := document.NewDocumentService(
				vaultDecrypter,
				options.inline,
				entry,
			).Render(document.NewDocument(content))
			if err != nil {
				return stacktrace.Propagate(err, "failed to render %s", path)
			}

			return cli.WriteDocument(osExecutor, rendered)
		},
	}

	flags := cmdInstance.Flags()
	flags.StringVar(
		&options.backend,
		"backend",
		BackendCommand,
		fmt.Sprintf("Decryption backend, `%s` runs the vault command, `%s` decrypts in-process", BackendCommand, BackendBuiltin),
	)
	flags.StringVar(
		&options.vaultCommand,
		"vault-command",
		decrypter.DefaultVaultCommand,
		"Command fed each vault block on stdin, printing its plaintext on stdout",
	)
	flags.StringArrayVar(
		&options.vaultCommandArgs,
		"vault-command-arg",
		decrypter.DefaultVaultCommandArgs,
		"Argument passed to the vault command (repeatable)",
	)
	flags.BoolVar(
		&options.inline,
		"inline",
		false,
		"Render single-line plaintext on the header line instead of a block",
	)
	flags.BoolVar(
		&options.askVaultPass,
		"ask-vault-pass",
		false,
		"Prompt for the vault password (builtin backend)",
	)
	flags.StringArrayVar(
		&options.passwordFiles,
		"vault-password-file",
		nil,
		"Vault password file or executable script (builtin backend, repeatable)",
	)
	flags.BoolVar(
		&options.useKeyring,
		"keyring",
		false,
		"Read the vault password from the OS keyring (builtin backend)",
	)
	flags.StringVar(
		&options.logLevel,
		"log-level",
		defaultLogLevel,
		"Log level written to stderr: "+strings.Join(logLevelNames(), ", "),
	)

	return cmdInstance
}

func newDecrypter(
	options *rootOptions,
	osExecutor os.OsExecutor,
	logger *log.Entry,
	aesSvc external_interfaces.AesService,
	pkcs7Svc external_interfaces.Pkcs7Service,
	hexSvc external_interfaces.HexService,
	iniSvc external_interfaces.IniService,
	keyringSvc external_interfaces.KeyringService,
) (decrypter.Decrypter, error) {
	runner := command.NewRunner(logger)

	switch options.backend {
	case BackendCommand:
		return decrypter.NewCommandDecrypter(
			runner,
			options.vaultCommand,
			options.vaultCommandArgs,
		), nil
	case BackendBuiltin:
		resolver := password.NewResolver(
			osExecutor,
			iniSvc,
			cli.NewPasswordPrompter(osExecutor),
			keyringSvc,
			runner,
			logger,
		)

		passwords, err := resolver.Resolve(
			&password.Options{
				AskVaultPass:  options.askVaultPass,
				PasswordFiles: options.passwordFiles,
				UseKeyring:    options.useKeyring,
			},
		)
		if err != nil {
			return nil, stacktrace.Propagate(err, "failed to resolve vault passwords")
		}

		return decrypter.NewPasswordDecrypter(
			envelope.NewSerdeService(header.NewHeaderService(), hexSvc),
			envelope.NewDecryptionService(aesSvc, pkcs7Svc),
			passwords,
			logger,
		), nil
	default:
		return nil, &UsageError{
			Reason: fmt.Sprintf("unknown --backend %q, expected %s or %s", options.backend, BackendCommand, BackendBuiltin),
		}
	}
}

func logLevelNames() []string {
	names := make([]string, 0, len(log.AllLevels))

	for _, level := range log.AllLevels {
		names = append(names, level.String())
	}

	return names
}
