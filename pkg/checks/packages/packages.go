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

package packages

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/caas-team/precheck/internal/logger"
	"github.com/caas-team/precheck/internal/probe"
	"github.com/caas-team/precheck/pkg/checks"
	"github.com/caas-team/precheck/pkg/checks/osrelease"
)

// CheckName is the name of the installed packages check
const CheckName = "installed-packages"

// manager queries the package database of a distribution
type manager struct {
	// command returns the command line asking for a single package
	command func(pkg string) (string, []string)
	// installed interprets the result of the query
	installed func(res *probe.Result) bool
}

var rpm = manager{
	command: func(pkg string) (string, []string) {
		return "rpm", []string{"-q", pkg}
	},
	installed: func(res *probe.Result) bool {
		return res.Success()
	},
}

var dpkg = manager{
	command: func(pkg string) (string, []string) {
		return "dpkg-query", []string{"-W", "-f=${Status}", pkg}
	},
	installed: func(res *probe.Result) bool {
		return res.Success() && strings.Contains(res.Stdout, "install ok installed")
	},
}

// rpmPackages are the build dependencies installed by the stack builder on yum based systems
var rpmPackages = []string{
	"openssl-libs", "openssl-devel", "bzip2-devel", "zlib", "zlib-devel",
	"libffi-devel", "readline-devel", "wget", "git", "nmap-ncat", "which",
}

var debPackages = []string{
	"libssl-dev", "libbz2-dev", "zlib1g-dev", "libffi-dev",
	"libreadline-dev", "wget", "git", "netcat", "build-essential",
}

type packageList struct {
	manager  manager
	packages []string
}

var lists = map[string]packageList{
	"amzn":   {manager: rpm, packages: rpmPackages},
	"rhel":   {manager: rpm, packages: rpmPackages},
	"ubuntu": {manager: dpkg, packages: debPackages},
}

var _ checks.Check = (*check)(nil)

type check struct{}

// NewCheck returns the check verifying that the packages needed by the
// installer are present.
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
			return checks.Fail("Failing installed packages.  Unable to identify the OS from %s", env.OSReleasePath), nil
		}
		return checks.Outcome{}, &checks.ErrExecution{Check: CheckName, Err: err}
	}

	id := osrelease.ID(data)
	list, ok := lists[id]
	if !ok {
		return checks.Fail("Failing installed packages.  No package list for OS %q", id), nil
	}

	missing, err := missingPackages(ctx, env.Prober, list.manager, list.packages)
	if err != nil {
		return checks.Outcome{}, &checks.ErrExecution{Check: CheckName, Err: err}
	}
	if len(missing) > 0 {
		log.DebugContext(ctx, "Packages are missing", "os", id, "packages", strings.Join(missing, ","))
		return checks.Fail("Failing installed packages.  Install %s", strings.Join(missing, " ")), nil
	}
	return checks.Pass("Passing installed packages.  All %d packages are installed", len(list.packages)), nil
}

// missingPackages returns the packages the manager does not report as installed,
// in the order given.
func missingPackages(ctx context.Context, p probe.Prober, m manager, pkgs []string) ([]string, error) {
	var missing []string
	for _, pkg := range pkgs {
		name, args := m.command(pkg)
		res, err := p.Run(ctx, name, args...)
		if err != nil {
			return nil, err
		}
		if !m.installed(res) {
			missing = append(missing, pkg)
		}
	}
	return missing, nil
}
