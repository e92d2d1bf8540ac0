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
	stdOs "os"
	"path/filepath"
	"strings"

	"github.com/drone/envsubst"
	"github.com/palantir/stacktrace"

	iniPkg "github.com/sumup-oss/ansible-decryptor/pkg/ini"
)

const (
	envAnsibleConfig = "ANSIBLE_CONFIG"

	configSectionDefaults = "defaults"
	configSectionVault    = "vault"

	configKeyPasswordFile = "vault_password_file"
	configKeyIdentityList = "vault_identity_list"
	configKeyKeyname      = "keyname"
	configKeyUsername     = "username"

	defaultKeyname = "ansible"
)

var defaultConfigSearchPath = []string{
	"ansible.cfg",
	"~/.ansible.cfg",
	"/etc/ansible/ansible.cfg",
}

// configCandidates returns the `ansible.cfg` search path in precedence order.
func (r *Resolver) configCandidates() []string {
	var candidates []string

	if value, ok := r.lookupEnv(envAnsibleConfig); ok && value != "" {
		candidates = append(candidates, value)
	}

	return append(candidates, r.configSearchPath...)
}

// loadConfig reads the first existing `ansible.cfg`.
// When none exists an empty configuration is returned.
func (r *Resolver) loadConfig() (*iniPkg.Content, error) {
	for _, candidate := range r.configCandidates() {
		path, err := r.expandPath(candidate)
		if err != nil {
			return nil, stacktrace.Propagate(err, "failed to expand ansible config path %s", candidate)
		}

		content, err := r.osExecutor.ReadFile(path)
		if err != nil {
			if stdOs.IsNotExist(err) {
				continue
			}

			return nil, stacktrace.Propagate(err, "failed to read ansible config at %s", path)
		}

		file, err := r.iniService.ParseIni(content)
		if err != nil {
			return nil, stacktrace.Propagate(err, "failed to parse ansible config at %s", path)
		}

		r.logger.Debugf("using ansible config at %s", path)

		return r.iniService.ParseIniFileContents(file), nil
	}

	return iniPkg.NewIniContent(), nil
}

// expandPath substitutes `$VAR`/`${VAR}` and a leading `~`.
func (r *Resolver) expandPath(path string) (string, error) {
	expanded, err := envsubst.Eval(
		path,
		func(name string) string {
			value, _ := r.lookupEnv(name)
			return value
		},
	)
	if err != nil {
		return "", err
	}

	if expanded != "~" && !strings.HasPrefix(expanded, "~/") {
		return expanded, nil
	}

	home, err := r.homeDir()
	if err != nil {
		return "", stacktrace.Propagate(err, "failed to resolve home directory")
	}

	return filepath.Join(home, strings.TrimPrefix(expanded, "~")), nil
}
