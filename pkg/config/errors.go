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

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeout is returned when the check timeout is not positive
	ErrInvalidTimeout = errors.New("invalid check timeout")
	// ErrInvalidOutput is returned when the report output format is unknown
	ErrInvalidOutput = errors.New("invalid output format")
	// ErrInvalidVerbosity is returned when the verbosity is negative
	ErrInvalidVerbosity = errors.New("invalid verbosity")
	// ErrInvalidConfigPath is returned when no holodeck config path is set
	ErrInvalidConfigPath = errors.New("invalid holodeck config path")
	// ErrInvalidOSReleasePath is returned when no os-release path is set
	ErrInvalidOSReleasePath = errors.New("invalid os-release path")
)

// ErrMalformedLine is reported for a line that does not split into exactly
// a key and a value
type ErrMalformedLine struct {
	Source string
	Line   string
}

func (e ErrMalformedLine) Error() string {
	return fmt.Sprintf("skipping %q in %q", e.Line, e.Source)
}
