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
	"context"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/caas-team/precheck/internal/logger"
	"github.com/caas-team/precheck/internal/probe"
	"github.com/caas-team/precheck/pkg/config"
)

// Check implementations verify a single prerequisite of the host.
//
// A check must not change the host, apart from a scoped probe that is undone
// before Execute returns. Conditions that are not met are reported as a
// failed Outcome. A returned error means the check itself could not be
// executed and is recorded as errored.
type Check interface {
	// Name returns the name of the check. It is unique within a suite.
	Name() string
	// Applies reports whether the check is part of the suite for the system type.
	Applies(st SystemType) bool
	// Execute runs the check once.
	Execute(ctx context.Context, env *Env) (Outcome, error)
}

// Applicability decides for which system types a check runs
type Applicability func(st SystemType) bool

// Always selects a check for every system type, including none.
func Always(SystemType) bool { return true }

// WithTag selects a check when the system type carries tag.
func WithTag(tag string) Applicability {
	return func(st SystemType) bool {
		return st.Has(tag)
	}
}

var _ Check = (*Func)(nil)

// Func is a Check built from plain functions.
type Func struct {
	CheckName string
	AppliesTo Applicability
	Run       func(ctx context.Context, env *Env) (Outcome, error)
}

func (f *Func) Name() string {
	return f.CheckName
}

func (f *Func) Applies(st SystemType) bool {
	if f.AppliesTo == nil {
		return true
	}
	return f.AppliesTo(st)
}

func (f *Func) Execute(ctx context.Context, env *Env) (Outcome, error) {
	return f.Run(ctx, env)
}

// Env bundles everything a check may consult. The parsed files are read
// lazily on first use and shared read-only by all checks of a run.
type Env struct {
	SystemType    SystemType
	OSReleasePath string
	HolodeckPath  string
	Prober        probe.Prober
	Fs            afero.Fs

	osOnce    sync.Once
	osRelease config.Map
	osErr     error

	hdOnce   sync.Once
	holodeck config.Map
	hdErr    error
}

// NewEnv returns an Env working on the real host.
func NewEnv(st SystemType, osReleasePath, holodeckPath string) *Env {
	return &Env{
		SystemType:    st,
		OSReleasePath: osReleasePath,
		HolodeckPath:  holodeckPath,
		Prober:        probe.New(),
		Fs:            afero.NewOsFs(),
	}
}

// OSRelease returns the parsed os-release file. Lines that are not
// key=value pairs are skipped without a warning.
func (e *Env) OSRelease(ctx context.Context) (config.Map, error) {
	e.osOnce.Do(func() {
		var skipped []config.ErrMalformedLine
		e.osRelease, skipped, e.osErr = config.ReadMap(ctx, e.Fs, e.OSReleasePath, config.WithSeparator("="), config.Quiet())
		if len(skipped) > 0 {
			logger.FromContext(ctx).DebugContext(ctx, "os-release has skipped lines", "count", len(skipped))
		}
	})
	return e.osRelease, e.osErr
}

// Holodeck returns the parsed holodeck configuration. Failing to read or
// parse the file is reported as ErrConfiguration.
func (e *Env) Holodeck(ctx context.Context) (config.Map, error) {
	e.hdOnce.Do(func() {
		m, skipped, err := config.ReadMap(ctx, e.Fs, e.HolodeckPath, config.WithHostnameResolver(e.hostAddress))
		if err != nil {
			e.hdErr = &ErrConfiguration{Source: e.HolodeckPath, Err: err}
			return
		}
		if len(skipped) > 0 {
			logger.FromContext(ctx).DebugContext(ctx, "Holodeck configuration has skipped lines", "count", len(skipped))
		}
		e.holodeck = m
	})
	return e.holodeck, e.hdErr
}

func (e *Env) hostAddress(ctx context.Context) (string, error) {
	res, err := e.Prober.Run(ctx, "hostname", "-i")
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", ExitError("hostname -i", res.ExitCode, res.Stderr)
	}
	fields := strings.Fields(res.Stdout)
	if len(fields) == 0 {
		return "", &ErrExecution{Check: "hostname -i", Err: errEmptyOutput}
	}
	return fields[0], nil
}
