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

package osrelease

import (
	"context"
	"errors"
	"io/fs"
	"slices"
	"strings"
	"unicode"

	"github.com/caas-team/precheck/internal/logger"
	"github.com/caas-team/precheck/pkg/checks"
	"github.com/caas-team/precheck/pkg/config"
)

// CheckName is the name of the os type check
const CheckName = "os-type"

const unidentified = "Unable to identify ID and or VERSION from /etc/os-release"

// distribution describes a supported os-release ID
type distribution struct {
	// display is the name used in messages
	display string
	// versionKey is the os-release key holding the version
	versionKey string
	// supported lists the supported major versions
	supported []string
}

var distributions = map[string]distribution{
	"amzn":   {display: "Amazon", versionKey: "VERSION", supported: []string{"2"}},
	"rhel":   {display: "Redhat", versionKey: "VERSION", supported: []string{"6", "7"}},
	"ubuntu": {display: "Ubuntu", versionKey: "VERSION_ID", supported: []string{"18"}},
}

var _ checks.Check = (*check)(nil)

type check struct{}

// NewCheck returns the check verifying the operating system and its version.
func NewCheck() checks.Check {
	return &check{}
}

func (*check) Name() string {
	return CheckName
}

func (*check) Applies(checks.SystemType) bool {
	return true
}

func (*check) Execute(ctx context.Context, env *checks.Env) (checks.Outcome, error) {
	log := logger.FromContext(ctx)
	data, err := env.OSRelease(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.DebugContext(ctx, "os-release file not found", "path", env.OSReleasePath)
			return checks.Fail(unidentified), nil
		}
		return checks.Outcome{}, &checks.ErrExecution{Check: CheckName, Err: err}
	}
	return Evaluate(data, env.OSReleasePath), nil
}

// Evaluate decides whether the os-release data read from path describes a
// supported system.
func Evaluate(data config.Map, path string) checks.Outcome {
	id, ok := data.Get("ID")
	if !ok || id == "" {
		return checks.Fail(unidentified)
	}

	dist, ok := distributions[id]
	if !ok {
		return checks.Fail("Unrecognized OS %q in %s", id, path)
	}

	version, ok := data.Get(dist.versionKey)
	if !ok || version == "" {
		// older releases only carry one of both keys
		version, ok = data.Get("VERSION")
	}
	if !ok || version == "" {
		return checks.Fail(unidentified)
	}

	if !slices.Contains(dist.supported, MajorVersion(version)) {
		return checks.Fail("%s version %s unsupported", dist.display, version)
	}
	return checks.Pass("%s version %s supported", dist.display, version)
}

// MajorVersion returns the leading digits of a version string,
// e.g. "7" for "7.9 (Maipo)" and "18" for "18.04".
func MajorVersion(version string) string {
	v := strings.TrimSpace(version)
	end := strings.IndexFunc(v, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		return v
	}
	return v[:end]
}

// ID returns the distribution ID of the parsed os-release data.
func ID(data config.Map) string {
	id, _ := data.Get("ID")
	return id
}
