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

package sudo

import (
	"context"
	"slices"
	"strings"

	"github.com/caas-team/precheck/internal/helper"
	"github.com/caas-team/precheck/internal/logger"
	"github.com/caas-team/precheck/pkg/checks"
)

const (
	// AvailableCheckName is the name of the check looking for the sudo binary
	AvailableCheckName = "sudo-available"
	// AccessCheckName is the name of the check verifying passwordless sudo
	AccessCheckName = "sudo-access"
)

var (
	_ checks.Check = (*availableCheck)(nil)
	_ checks.Check = (*accessCheck)(nil)
)

type availableCheck struct{}

// NewAvailableCheck returns the check verifying that sudo is installed.
func NewAvailableCheck() checks.Check {
	return &availableCheck{}
}

func (*availableCheck) Name() string {
	return AvailableCheckName
}

func (*availableCheck) Applies(checks.SystemType) bool {
	return true
}

func (*availableCheck) Execute(ctx context.Context, env *checks.Env) (checks.Outcome, error) {
	path, err := env.Prober.LookPath("sudo")
	if err != nil {
		logger.FromContext(ctx).DebugContext(ctx, "sudo not found in PATH", "error", err)
		return checks.Fail("Failing sudo availability.  Install sudo."), nil
	}
	return checks.Pass("Passing sudo availability.  Sudo is available at %s", path), nil
}

type accessCheck struct {
	isRoot func() bool
}

// NewAccessCheck returns the check verifying that the user has passwordless,
// unrestricted sudo access.
func NewAccessCheck() checks.Check {
	return &accessCheck{isRoot: helper.IsRoot}
}

func (*accessCheck) Name() string {
	return AccessCheckName
}

func (*accessCheck) Applies(st checks.SystemType) bool {
	return st.Has(checks.TagVtrq)
}

func (c *accessCheck) Execute(ctx context.Context, env *checks.Env) (checks.Outcome, error) {
	log := logger.FromContext(ctx)
	if c.isRoot != nil && c.isRoot() {
		return checks.Pass("Passing sudo access.  Running as root"), nil
	}

	res, err := env.Prober.Run(ctx, "sudo", "-nl")
	if err != nil {
		return checks.Outcome{}, &checks.ErrExecution{Check: AccessCheckName, Err: err}
	}

	switch res.ExitCode {
	case 0:
	case 1:
		log.DebugContext(ctx, "sudo -nl denied", "stderr", res.Stderr)
		return checks.Fail("Failing sudo access - You don't appear to have sudo access"), nil
	default:
		return checks.Outcome{}, checks.ExitError("sudo -nl", res.ExitCode, res.Stderr)
	}

	if HasPasswordlessAll(res.Lines()) {
		return checks.Pass("Passing sudo access.  User has passwordless sudo access"), nil
	}
	return checks.Fail("Failing passwordless sudo access.  You need to ensure you have passwordless sudo"), nil
}

// HasPasswordlessAll reports whether the output of `sudo -nl` grants running
// all commands as any user without a password, e.g.
//
//	(ALL) NOPASSWD: ALL
//	(ALL : ALL) NOPASSWD: ALL
func HasPasswordlessAll(lines []string) bool {
	for _, line := range lines {
		runas, rest, ok := parseEntry(line)
		if !ok || !isAll(runas) {
			continue
		}
		tags, commands, ok := splitTags(rest)
		if !ok || !slices.Contains(tags, "NOPASSWD") {
			continue
		}
		for _, cmd := range strings.Split(commands, ",") {
			if strings.TrimSpace(cmd) == "ALL" {
				return true
			}
		}
	}
	return false
}

// parseEntry splits "(runas) rest" into its parts.
func parseEntry(line string) (runas, rest string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "(") {
		return "", "", false
	}
	end := strings.Index(line, ")")
	if end == -1 {
		return "", "", false
	}
	return line[1:end], strings.TrimSpace(line[end+1:]), true
}

// isAll reports whether the run-as list allows any user, e.g. "ALL" or "ALL : ALL".
func isAll(runas string) bool {
	user, _, _ := strings.Cut(runas, ":")
	for _, u := range strings.Split(user, ",") {
		if strings.TrimSpace(u) == "ALL" {
			return true
		}
	}
	return false
}

// splitTags separates leading tags like "NOPASSWD: SETENV:" from the command list.
func splitTags(rest string) (tags []string, commands string, ok bool) {
	for {
		word, after, found := strings.Cut(rest, ":")
		word = strings.TrimSpace(word)
		if !found || word == "" || strings.ContainsAny(word, " /,") || strings.ToUpper(word) != word {
			break
		}
		tags = append(tags, word)
		rest = after
	}
	if len(tags) == 0 {
		return nil, "", false
	}
	return tags, strings.TrimSpace(rest), true
}
