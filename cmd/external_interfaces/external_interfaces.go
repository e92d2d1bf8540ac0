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

package external_interfaces

import (
	"github.com/go-ini/ini"

	iniPkg "github.com/sumup-oss/ansible-decryptor/pkg/ini"
)

type AesService interface {
	DecryptCTR(key, iv, ciphertext []byte) ([]byte, error)
}

type Pkcs7Service interface {
	Unpad(bytesValue []byte, blockSize int) ([]byte, error)
}

type HexService interface {
	Deserialize(encoded []byte) ([]byte, error)
}

type IniService interface {
	ParseIni(content []byte) (*ini.File, error)
	ParseIniFileContents(file *ini.File) *iniPkg.Content
}

type KeyringService interface {
	Get(service, user string) (string, error)
}
