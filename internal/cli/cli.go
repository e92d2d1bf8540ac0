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

package cli

import (
	"errors"
	"fmt"
	"io"
	stdOs "os"

	"github.com/palantir/stacktrace"
	"github.com/sumup-oss/go-pkgs/os"
	"golang.org/x/term"
)

var errEmptyValue = errors.New("empty value")

// PasswordPrompter asks for a vault password on stderr, so stdout carries only the rendered document.
type PasswordPrompter struct {
	osExecutor os.OsExecutor
}

func NewPasswordPrompter(osExecutor os.OsExecutor) *PasswordPrompter {
	return &PasswordPrompter{
		osExecutor: osExecutor,
	}
}

func (p *PasswordPrompter) Prompt(message string) ([]byte, error) {
	//nolint:errcheck
	fmt.Fprint(p.osExecutor.Stderr(), message)

	var stdin io.Reader = p.osExecutor.Stdin()

	var (
		value []byte
		err   error
	)

	if file, ok := stdin.(*stdOs.File); ok && term.IsTerminal(int(file.Fd())) {
		value, err = term.ReadPassword(int(file.Fd()))

		// NOTE: The terminal swallowed the user's newline along with the echo.
		//nolint:errcheck
		fmt.Fprintln(p.osExecutor.Stderr())
	} else {
		value, err = readPassword(stdin)
	}

	if err != nil {
		return nil, stacktrace.Propagate(err, "failed to read password from stdin")
	}

	if len(value) < 1 {
		return nil, errEmptyValue
	}

	return value, nil
}

func readPassword(reader io.Reader) ([]byte, error) {
	var readContent []byte

	// NOTE: Since we're acting based on single characters,
	// read only 1 byte at a time.
	var readBuff [1]byte

	for {
		n, err := reader.Read(readBuff[:])

		// NOTE: Discard any return characters
		if n > 0 && readBuff[0] != '\r' {
			if readBuff[0] == '\n' {
				return readContent, nil
			}

			readContent = append(readContent, readBuff[0])
		}

		if err != nil {
			// NOTE: Accept EOF-terminated content if not empty,
			// as other stdin-reading CLIs do.
			if err == io.EOF && len(readContent) > 0 {
				err = nil
			}

			return readContent, err
		}
	}
}

// WriteDocument writes the rendered document to stdout in a single write.
func WriteDocument(osExecutor os.OsExecutor, rendered []byte) error {
	_, err := osExecutor.Stdout().Write(rendered)
	if err != nil {
		return stacktrace.Propagate(err, "failed to write rendered document to stdout")
	}

	return nil
}
