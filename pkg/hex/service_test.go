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

package hex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHexService(t *testing.T) {
	t.Run(
		"it creates a new hex Service",
		func(t *testing.T) {
			t.Parallel()

			actual := NewHexService()

			assert.IsType(t, actual, &Service{})
		},
	)
}

func TestService_Serialize(t *testing.T) {
	t.Run(
		"when 'rawArg' is specified, it returns it hexlified",
		func(t *testing.T) {
			t.Parallel()

			actualReturn, actualErr := NewHexService().Serialize([]byte("foobar"))

			require.Nil(t, actualErr)
			assert.Equal(t, []byte("666f6f626172"), actualReturn)
		},
	)
}

func TestService_Deserialize(t *testing.T) {
	t.Run(
		"when non-blank 'encoded' is specified, it returns it unhexlified",
		func(t *testing.T) {
			t.Parallel()

			actualReturn, actualErr := NewHexService().Deserialize([]byte("666f6f626172"))

			require.Nil(t, actualErr)
			assert.Equal(t, []byte("foobar"), actualReturn)
		},
	)

	t.Run(
		"when 'encoded' is wrapped across lines, it ignores the line breaks",
		func(t *testing.T) {
			t.Parallel()

			actualReturn, actualErr := NewHexService().Deserialize([]byte("666f6f\n626172\n"))

			require.Nil(t, actualErr)
			assert.Equal(t, []byte("foobar"), actualReturn)
		},
	)

	t.Run(
		"when 'encoded' has odd length, it returns an error",
		func(t *testing.T) {
			t.Parallel()

			actualReturn, actualErr := NewHexService().Deserialize([]byte("666"))

			require.Nil(t, actualReturn)
			assert.Equal(t, errOddLength, actualErr)
		},
	)

	t.Run(
		"when 'encoded' contains non-hex characters, it returns an error",
		func(t *testing.T) {
			t.Parallel()

			actualReturn, actualErr := NewHexService().Deserialize([]byte("zz"))

			require.Nil(t, actualReturn)
			assert.NotNil(t, actualErr)
		},
	)
}
