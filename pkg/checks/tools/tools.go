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

package tools

import (
	"context"

	"github.com/caas-team/precheck/pkg/checks"
)

const (
	// GitCheckName is the name of the check looking for git
	GitCheckName = "git-available"
	// DockerCheckName is the name of the check looking for docker
	DockerCheckName = "docker-available"
)

var _ checks.Check = (*binaryCheck)(nil)

// binaryCheck verifies that an executable can be found in PATH
type binaryCheck struct {
	name    string
	binary  string
	display string
	applies checks.Applicability
}

// NewGitCheck returns the check verifying that git is installed.
func NewGitCheck() checks.Check {
	return NewBinaryCheck(GitCheckName, "git", "git", checks.Always)
}

// NewDockerCheck returns the check verifying that docker is installed on vda hosts.
func NewDockerCheck() checks.Check {
	return NewBinaryCheck(DockerCheckName, "docker", "docker", checks.WithTag(checks.TagVda))
}

// NewBinaryCheck returns a check named name which passes if binary is in PATH.
func NewBinaryCheck(name, binary, display string, applies checks.Applicability) checks.Check {
	return &binaryCheck{
		name:    name,
		binary:  binary,
		display: display,
		applies: applies,
	}
}

func (c *binaryCheck) Name() string {
	return c.name
}

func (c *binaryCheck) Applies(st checks.SystemType) bool {
	return c.applies == nil || c.applies(st)
}

func (c *binaryCheck) Execute(_ context.Context, env *checks.Env) (checks.Outcome, error) {
	if _, err := env.Prober.LookPath(c.binary); err != nil {
		return checks.Fail("Failing %s availability.  Install %s.", c.display, c.display), nil
	}
	return checks.Pass("Passing %s availability.  %s is available", c.display, c.display), nil
}
