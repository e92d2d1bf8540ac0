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

package header

const (
	DefaultFormatID = "$ANSIBLE_VAULT"
	DefaultVersion  = "1.1"
	// VaultIDVersion is the only format version that carries a vault-id label.
	VaultIDVersion = "1.2"
	DefaultCipher  = "AES256"
)

type Header struct {
	FormatID string
	Version  string
	Cipher   string
	VaultID  string
}

func NewHeader() *Header {
	return &Header{
		FormatID: DefaultFormatID,
		Version:  DefaultVersion,
		Cipher:   DefaultCipher,
	}
}

func (h *Header) HasVaultID() bool {
	return h.VaultID != ""
}
