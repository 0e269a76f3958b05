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

package checks

import (
	"errors"
	"fmt"
	"strings"
)

var errEmptyOutput = errors.New("command returned no output")

// ErrConfiguration is returned when a configuration file needed by a check is
// missing, unreadable or malformed. Checks report it as a failed outcome.
type ErrConfiguration struct {
	Source string
	Err    error
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("configuration %q: %v", e.Source, e.Err)
}

func (e *ErrConfiguration) Unwrap() error {
	return e.Err
}

// ErrExecution is returned when a check could not be executed at all,
// e.g. because a command could not be started.
type ErrExecution struct {
	Check string
	Err   error
}

func (e *ErrExecution) Error() string {
	return fmt.Sprintf("unable to run %s: %v", e.Check, e.Err)
}

func (e *ErrExecution) Unwrap() error {
	return e.Err
}

// ErrInvalidSystemType is returned for a system type that is not supported
type ErrInvalidSystemType struct {
	Value     string
	Supported []string
}

func (e ErrInvalidSystemType) Error() string {
	return fmt.Sprintf("invalid system type %q: must be one of [%s]", e.Value, strings.Join(e.Supported, ", "))
}

// errExitCode describes an unexpected exit code of a command.
func errExitCode(code int, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("exit code %d", code)
	}
	return fmt.Errorf("exit code %d: %s", code, stderr)
}

// ExitError wraps an unexpected exit code of the command into an ErrExecution.
func ExitError(command string, code int, stderr string) error {
	return &ErrExecution{Check: command, Err: errExitCode(code, stderr)}
}
