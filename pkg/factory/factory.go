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

package factory

import (
	"github.com/caas-team/precheck/pkg/checks"
	"github.com/caas-team/precheck/pkg/checks/disk"
	"github.com/caas-team/precheck/pkg/checks/docker"
	"github.com/caas-team/precheck/pkg/checks/holodeck"
	"github.com/caas-team/precheck/pkg/checks/osrelease"
	"github.com/caas-team/precheck/pkg/checks/packages"
	"github.com/caas-team/precheck/pkg/checks/sudo"
	"github.com/caas-team/precheck/pkg/checks/tools"
	"github.com/caas-team/precheck/pkg/config"
)

// Suite is the ordered list of checks selected for a run
type Suite []checks.Check

// Names returns the names of the checks in suite order
func (s Suite) Names() []string {
	names := make([]string, 0, len(s))
	for _, c := range s {
		names = append(names, c.Name())
	}
	return names
}

// registry holds every known check in the order it is run
var registry = []func() checks.Check{
	osrelease.NewCheck,
	sudo.NewAvailableCheck,
	sudo.NewAccessCheck,
	disk.NewCheck,
	tools.NewGitCheck,
	holodeck.NewConfigCheck,
	writable(config.KeyInstallDir, checks.Always),
	writable(config.KeyLogDir, checks.Always),
	writable(config.KeyVtrqBackingStore, checks.WithTag(checks.TagVtrq)),
	writable(config.KeyVdaBackingStore, checks.WithTag(checks.TagVda)),
	packages.NewCheck,
	tools.NewDockerCheck,
	docker.NewCheck,
}

func writable(key string, applies checks.Applicability) func() checks.Check {
	return func() checks.Check {
		return holodeck.NewWritableCheck(key, applies)
	}
}

// BuildSuite returns the checks applying to the system type in
// registration order. The empty system type selects the checks
// every host has to pass.
func BuildSuite(st checks.SystemType) (Suite, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}

	suite := Suite{}
	for _, newCheck := range registry {
		c := newCheck()
		if c.Applies(st) {
			suite = append(suite, c)
		}
	}
	return suite, nil
}

// Registered returns all known checks in registration order.
func Registered() Suite {
	suite := make(Suite, 0, len(registry))
	for _, newCheck := range registry {
		suite = append(suite, newCheck())
	}
	return suite
}
