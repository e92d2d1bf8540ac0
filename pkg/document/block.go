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

package document

import (
	"regexp"
	"strings"
	"unicode"
)

// headerPattern matches `<indent>[<key-or-list-prefix>[:]] !vault |`.
// Group 1 is everything before the tag, group 2 the leading whitespace run.
var headerPattern = regexp.MustCompile(`^((\s*)(-?\s*.*?:?)?)\s*!vault\s*\|`)

type SecretBlock struct {
	HeaderLine string
	LineNumber int
	BaseIndent int
	Prefix     string

	ciphertext strings.Builder
	blankLines []string
}

func matchHeader(line string, lineNumber int) (*SecretBlock, bool) {
	matches := headerPattern.FindStringSubmatch(line)
	if matches == nil {
		return nil, false
	}

	return &SecretBlock{
		HeaderLine: line,
		LineNumber: lineNumber,
		BaseIndent: len(matches[2]),
		Prefix:     matches[1],
	}, true
}

// appendPayload adds a line indented deeper than the header to the ciphertext.
func (b *SecretBlock) appendPayload(line string) {
	data := strings.TrimLeftFunc(line[b.BaseIndent:], unicode.IsSpace)
	data = strings.TrimSuffix(data, "\n")
	data = strings.TrimSuffix(data, "\r")

	b.ciphertext.WriteString(data)
	b.ciphertext.WriteByte('\n')
}

func (b *SecretBlock) Ciphertext() string {
	return b.ciphertext.String()
}

func indentation(line string) int {
	return len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
