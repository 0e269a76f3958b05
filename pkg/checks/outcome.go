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
	"fmt"
	"strings"
)

// Status is the tri-state result of a check
type Status int

const (
	// statusUnknown is the zero value and never a valid result
	statusUnknown Status = iota
	// StatusPass means the condition is met
	StatusPass
	// StatusFail means the condition is not met
	StatusFail
	// StatusErrored means the check could not be executed
	StatusErrored
)

var statusNames = map[Status]string{
	StatusPass:    "pass",
	StatusFail:    "fail",
	StatusErrored: "errored",
}

// Valid reports whether s is one of pass, fail or errored.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	for k, v := range statusNames {
		if strings.EqualFold(v, string(b)) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(b))
}

// Outcome is the result of running a check once
type Outcome struct {
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
	// Err is the cause of an errored outcome
	Err error `json:"-" yaml:"-"`
}

// Pass returns a passing outcome.
func Pass(format string, args ...any) Outcome {
	return Outcome{Status: StatusPass, Message: fmt.Sprintf(format, args...)}
}

// Fail returns a failing outcome.
func Fail(format string, args ...any) Outcome {
	return Outcome{Status: StatusFail, Message: fmt.Sprintf(format, args...)}
}

// Errored returns the outcome of a check that could not be executed.
func Errored(message string, cause error) Outcome {
	return Outcome{Status: StatusErrored, Message: message, Err: cause}
}

// Passed reports whether the outcome is a pass.
func (o Outcome) Passed() bool {
	return o.Status == StatusPass
}

func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%s: %s: %v", o.Status, o.Message, o.Err)
	}
	return fmt.Sprintf("%s: %s", o.Status, o.Message)
}
