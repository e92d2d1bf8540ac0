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
	"strings"
)

// Document is the input split into lines. Every line keeps its original terminator,
// so concatenating `Lines` reproduces the input byte for byte.
type Document struct {
	Lines []string
}

func NewDocument(content []byte) *Document {
	lines := strings.SplitAfter(string(content), "\n")

	// NOTE: A trailing terminator leaves an empty element behind, which is not a line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return &Document{
		Lines: lines,
	}
}

// splitLines splits on `\n`, `\r\n` and `\r`. A trailing terminator does not yield an empty last line.
func splitLines(text string) []string {
	var lines []string

	for len(text) > 0 {
		idx := strings.IndexAny(text, "\r\n")
		if idx < 0 {
			lines = append(lines, text)
			break
		}

		lines = append(lines, text[:idx])

		if text[idx] == '\r' && idx+1 < len(text) && text[idx+1] == '\n' {
			idx++
		}

		text = text[idx+1:]
	}

	return lines
}
