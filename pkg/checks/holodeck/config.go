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

package holodeck

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/caas-team/precheck/internal/logger"
	"github.com/caas-team/precheck/pkg/checks"
	"github.com/caas-team/precheck/pkg/config"
)

// ConfigCheckName is the name of the check verifying the holodeck configuration
const ConfigCheckName = "config-exists"

var _ checks.Check = (*configCheck)(nil)

type configCheck struct{}

// NewConfigCheck returns the check verifying that the holodeck configuration
// exists and can be parsed.
func NewConfigCheck() checks.Check {
	return &configCheck{}
}

func (*configCheck) Name() string {
	return ConfigCheckName
}

func (*configCheck) Applies(checks.SystemType) bool {
	return true
}

func (*configCheck) Execute(ctx context.Context, env *checks.Env) (checks.Outcome, error) {
	log := logger.FromContext(ctx)
	m, err := env.Holodeck(ctx)
	if err != nil {
		return configFailure(env.HolodeckPath, err), nil
	}

	settings, unknown, err := config.NewHolodeck(m)
	if err != nil {
		return checks.Fail("Failing holodeck configuration.  %s cannot be decoded: %v", env.HolodeckPath, err), nil
	}
	log.DebugContext(ctx, "Holodeck configuration loaded",
		"path", env.HolodeckPath, "settings", len(m), "other", strings.Join(unknown, ","))
	if missing := settings.Missing(); len(missing) > 0 {
		log.InfoContext(ctx, "Holodeck configuration misses directories", "keys", strings.Join(missing, ","))
	}

	return checks.Pass("Passing holodeck configuration.  Found %s with %d settings", env.HolodeckPath, len(m)), nil
}

// configFailure turns a configuration error into a failed outcome.
func configFailure(path string, err error) checks.Outcome {
	if errors.Is(err, fs.ErrNotExist) {
		return checks.Fail("Failing holodeck configuration.  %s does not exist", path)
	}
	return checks.Fail("Failing holodeck configuration.  Unable to read %s: %v", path, err)
}
