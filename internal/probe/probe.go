// precheck
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/caas-team/precheck/internal/logger"
)

// Result is the outcome of a finished command.
type Result struct {
	Stdout   string `json:"stdout" yaml:"stdout"`
	Stderr   string `json:"stderr" yaml:"stderr"`
	ExitCode int    `json:"exitCode" yaml:"exitCode"`
}

// Success reports whether the command exited with code 0.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// Lines returns the non-empty, trimmed lines of stdout.
func (r *Result) Lines() []string {
	if r == nil {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(r.Stdout, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Prober is the only way checks interact with external programs.
type Prober interface {
	// Run executes the command and waits for it to finish. A non-zero exit code
	// is reported in the result and is not an error. Errors are returned when
	// the command could not be started or the context expired.
	Run(ctx context.Context, name string, args ...string) (*Result, error)
	// LookPath searches for an executable in the directories of PATH.
	LookPath(name string) (string, error)
}

var _ Prober = (*Exec)(nil)

// Exec runs commands through os/exec.
type Exec struct{}

// New returns a Prober that executes real commands.
func New() *Exec {
	return &Exec{}
}

func (*Exec) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	log := logger.FromContext(ctx).With("command", commandLine(name, args))
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("Running command")
	err := cmd.Run()
	result := &Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("command %q did not finish: %w", name, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			log.Debug("Command exited", "exitCode", result.ExitCode)
			return result, nil
		}
		return result, fmt.Errorf("failed to run %s: %w", name, err)
	}

	log.Debug("Command exited", "exitCode", 0)
	return result, nil
}

func (*Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}
