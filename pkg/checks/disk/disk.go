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

package disk

import (
	"context"
	"strings"

	"github.com/caas-team/precheck/internal/logger"
	"github.com/caas-team/precheck/pkg/checks"
)

// CheckName is the name of the nvme disk check
const CheckName = "nvme-disk"

var _ checks.Check = (*check)(nil)

type check struct{}

// NewCheck returns the check verifying that an NVMe block device is attached.
func NewCheck() checks.Check {
	return &check{}
}

func (*check) Name() string {
	return CheckName
}

func (*check) Applies(st checks.SystemType) bool {
	return st.Has(checks.TagVtrq)
}

func (*check) Execute(ctx context.Context, env *checks.Env) (checks.Outcome, error) {
	res, err := env.Prober.Run(ctx, "lsblk", "-d", "-n", "-o", "NAME")
	if err != nil {
		return checks.Outcome{}, &checks.ErrExecution{Check: CheckName, Err: err}
	}
	if !res.Success() {
		return checks.Outcome{}, checks.ExitError("lsblk", res.ExitCode, res.Stderr)
	}

	devices := NVMeDevices(res.Lines())
	logger.FromContext(ctx).DebugContext(ctx, "Found block devices", "all", len(res.Lines()), "nvme", devices)
	if len(devices) == 0 {
		return checks.Fail("Failing NVMe disk.  No NVMe block device found"), nil
	}
	return checks.Pass("Passing NVMe disk.  Found %s", strings.Join(devices, ", ")), nil
}

// NVMeDevices filters device names that follow the NVMe naming scheme, e.g. nvme0n1.
func NVMeDevices(names []string) []string {
	var devices []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if strings.HasPrefix(n, "nvme") {
			devices = append(devices, n)
		}
	}
	return devices
}
