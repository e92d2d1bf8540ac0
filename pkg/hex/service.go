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
	"encoding/hex"
	"errors"
	"strings"
)

var errOddLength = errors.New("invalid hex value. odd length")

type Service struct{}

func NewHexService() *Service {
	return &Service{}
}

func (s *Service) Serialize(raw []byte) ([]byte, error) {
	encoded := make(
		[]byte,
		hex.EncodedLen(
			len(raw),
		),
	)

	hex.Encode(encoded, raw)
	return encoded, nil
}

// Deserialize decodes hexlified content.
// Whitespace between hex digits is ignored, since vault bodies are wrapped at 80 columns.
func (s *Service) Deserialize(encoded []byte) ([]byte, error) {
	compact := []byte(
		strings.Join(
			strings.Fields(string(encoded)),
			"",
		),
	)

	if len(compact)%2 != 0 {
		return nil, errOddLength
	}

	dst := make(
		[]byte,
		hex.DecodedLen(
			len(compact),
		),
	)

	n, err := hex.Decode(dst, compact)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}
