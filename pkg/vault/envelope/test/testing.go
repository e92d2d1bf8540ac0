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

package test

import (
	"github.com/stretchr/testify/mock"

	"github.com/sumup-oss/ansible-decryptor/pkg/vault/envelope"
)

type MockSerdeService struct {
	mock.Mock
}

func (m *MockSerdeService) Deserialize(vaulttext []byte) (*envelope.EncryptedEnvelope, error) {
	args := m.Called(vaulttext)
	returnValue := args.Get(0)
	err := args.Error(1)

	if returnValue == nil {
		return nil, err
	}

	return returnValue.(*envelope.EncryptedEnvelope), err
}

type MockDecryptionService struct {
	mock.Mock
}

func (m *MockDecryptionService) Decrypt(encryptedEnvelope *envelope.EncryptedEnvelope, password []byte) ([]byte, error) {
	args := m.Called(encryptedEnvelope, password)
	returnValue := args.Get(0)
	err := args.Error(1)

	if returnValue == nil {
		return nil, err
	}

	return returnValue.([]byte), err
}
