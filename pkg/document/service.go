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
	"bytes"
	"strings"

	"github.com/palantir/stacktrace"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// NOTE: Plaintext is indented two columns deeper than its header.
	plaintextIndentStep = 2
	blockMarker         = "|"
	emptyScalar         = "''"
)

type state int

const (
	stateScanning state = iota
	stateInBlock
)

type Service struct {
	decrypter vaultDecrypter
	inline    bool
	logger    *log.Entry
}

func NewDocumentService(decrypter vaultDecrypter, inline bool, logger *log.Entry) *Service {
	return &Service{
		decrypter: decrypter,
		inline:    inline,
		logger:    logger,
	}
}

// Render returns `document` with every `!vault |` block replaced by its plaintext.
// Either the whole document renders or an error is returned, never a partial result.
func (s *Service) Render(document *Document) ([]byte, error) {
	var (
		output  bytes.Buffer
		block   *SecretBlock
		current = stateScanning
		cursor  = 0
	)

	for cursor < len(document.Lines) {
		line := document.Lines[cursor]

		switch current {
		case stateScanning:
			matched, ok := matchHeader(line, cursor+1)
			if !ok {
				output.WriteString(line)
				cursor++

				continue
			}

			s.logger.Debugf("found vault block at line %d with indent %d", matched.LineNumber, matched.BaseIndent)

			if !s.inline {
				output.WriteString(line)
			}

			block = matched
			current = stateInBlock
			cursor++
		case stateInBlock:
			switch {
			case isBlank(line):
				if s.inline {
					block.blankLines = append(block.blankLines, line)
				} else {
					output.WriteString(line)
				}

				cursor++
			case indentation(line) > block.BaseIndent:
				block.appendPayload(line)
				cursor++
			default:
				// NOTE: The dedented line belongs to the document, it is scanned again.
				err := s.emitBlock(&output, block)
				if err != nil {
					return nil, err
				}

				block = nil
				current = stateScanning
			}
		}
	}

	if current == stateInBlock {
		err := s.emitBlock(&output, block)
		if err != nil {
			return nil, err
		}
	}

	return output.Bytes(), nil
}

func (s *Service) emitBlock(output *bytes.Buffer, block *SecretBlock) error {
	plaintext, err := s.decrypter.Decrypt(block.Ciphertext())
	if err != nil {
		return stacktrace.Propagate(err, "failed to decrypt vault block at line %d", block.LineNumber)
	}

	lines := splitLines(plaintext)
	indent := strings.Repeat(" ", block.BaseIndent+plaintextIndentStep)

	if s.inline {
		err = s.emitInline(output, block, lines, indent)
		if err != nil {
			return stacktrace.Propagate(err, "failed to render vault block at line %d inline", block.LineNumber)
		}

		return nil
	}

	terminateLine(output)
	output.WriteString(indent + blockMarker + "\n")
	writeIndented(output, lines, indent)

	return nil
}

// terminateLine ends the last written line when the input left it unterminated,
// e.g. a header on the last line of a file without a trailing newline.
func terminateLine(output *bytes.Buffer) {
	written := output.Bytes()
	if len(written) > 0 && written[len(written)-1] != '\n' {
		output.WriteByte('\n')
	}
}

// emitInline replaces the header line with `<prefix> <value>`.
// Blank lines met inside the block follow the rendered value.
func (s *Service) emitInline(output *bytes.Buffer, block *SecretBlock, lines []string, indent string) error {
	prefix := strings.TrimRight(block.Prefix, " \t")

	switch len(lines) {
	case 0:
		output.WriteString(joinPrefix(prefix, emptyScalar) + "\n")
	case 1:
		scalar, err := quoteScalar(lines[0])
		if err != nil {
			return err
		}

		output.WriteString(joinPrefix(prefix, scalar) + "\n")
	default:
		output.WriteString(joinPrefix(prefix, blockMarker) + "\n")
		writeIndented(output, lines, indent)
	}

	for _, blankLine := range block.blankLines {
		output.WriteString(blankLine)
	}

	return nil
}

func writeIndented(output *bytes.Buffer, lines []string, indent string) {
	for _, line := range lines {
		output.WriteString(indent + line + "\n")
	}
}

func joinPrefix(prefix, value string) string {
	if strings.TrimSpace(prefix) == "" {
		return prefix + value
	}

	return prefix + " " + value
}

// quoteScalar renders `value` as a YAML flow scalar, quoting it only when plain style
// would change its meaning.
func quoteScalar(value string) (string, error) {
	encoded, err := yaml.Marshal(value)
	if err != nil {
		return "", stacktrace.Propagate(err, "failed to encode plaintext as YAML scalar")
	}

	return strings.TrimSuffix(string(encoded), "\n"), nil
}
