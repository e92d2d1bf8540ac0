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
	"github.com/go-ini/ini"

	"github.com/sumup-oss/ansible-decryptor/pkg/command"
	iniPkg "github.com/sumup-oss/ansible-decryptor/pkg/ini"
)

type fileReader interface {
	ReadFile(path string) ([]byte, error)
}

type iniParser interface {
	ParseIni(content []byte) (*ini.File, error)
	ParseIniFileContents(file *ini.File) *iniPkg.Content
}

type prompter interface {
	Prompt(message string) ([]byte, error)
}

type keyringGetter interface {
	Get(service, user string) (string, error)
}

type commandRunner interface {
	Run(name string, args []string, stdin []byte) (*command.Result, error)
}
