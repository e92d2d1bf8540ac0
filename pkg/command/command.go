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

package command

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"

	"github.com/palantir/stacktrace"
	log "github.com/sirupsen/logrus"
)

// Result is the outcome of a child process that was started and waited for.
// A non-zero `ExitCode` is not an error at this level.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

func (r *Result) Success() bool {
	return r.ExitCode == 0
}

type Runner struct {
	logger *log.Entry
}

func NewRunner(logger *log.Entry) *Runner {
	return &Runner{
		logger: logger,
	}
}

func outputLines(output string) []string {
	return strings.Split(strings.TrimRight(output, "\n"), "\n")
}

// Run starts `name` with `args`, feeds it `stdin` and closes the pipe,
// then waits until both output streams are drained and the process exits.
func (r *Runner) Run(name string, args []string, stdin []byte) (*Result, error) {
	//nolint:gosec
	cmd := exec.Command(name, args...)

	var stdoutBuffer, stderrBuffer bytes.Buffer

	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Stdout = &stdoutBuffer
	cmd.Stderr = &stderrBuffer

	logger := r.logger.WithField("command", name)
	logger.Debugf("running %s %s", name, strings.Join(args, " "))

	err := cmd.Run()

	if stderrBuffer.Len() > 0 && logger.Logger.IsLevelEnabled(log.DebugLevel) {
		for _, line := range outputLines(stderrBuffer.String()) {
			logger.Debugln(line)
		}
	}

	result := &Result{
		Stdout: stdoutBuffer.Bytes(),
		Stderr: stderrBuffer.Bytes(),
	}

	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()

		return result, nil
	}

	return nil, stacktrace.Propagate(err, "failed to run %s", name)
}
