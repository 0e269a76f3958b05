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

package docker

import (
	"context"
	"slices"
	"strings"

	"github.com/caas-team/precheck/internal/logger"
	"github.com/caas-team/precheck/pkg/checks"
)

const (
	// CheckName is the name of the docker group membership check
	CheckName = "user-in-docker-group"
	group     = "docker"
)

var _ checks.Check = (*check)(nil)

type check struct{}

// NewCheck returns the check verifying that the current user may talk to the
// docker daemon without sudo.
func NewCheck() checks.Check {
	return &check{}
}

func (*check) Name() string {
	return CheckName
}

func (*check) Applies(st checks.SystemType) bool {
	return st.Has(checks.TagVda)
}

func (*check) Execute(ctx context.Context, env *checks.Env) (checks.Outcome, error) {
	res, err := env.Prober.Run(ctx, "id", "-nG")
	if err != nil {
		return checks.Outcome{}, &checks.ErrExecution{Check: CheckName, Err: err}
	}
	if !res.Success() {
		return checks.Outcome{}, checks.ExitError("id -nG", res.ExitCode, res.Stderr)
	}

	groups := strings.Fields(res.Stdout)
	logger.FromContext(ctx).DebugContext(ctx, "Groups of current user", "groups", strings.Join(groups, ","))
	if !slices.Contains(groups, group) {
		return checks.Fail("Failing docker group.  Add your user to the docker group: sudo usermod -aG docker $USER"), nil
	}
	return checks.Pass("Passing docker group.  User is a member of the docker group"), nil
}
