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

package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caas-team/precheck/internal/logger"
	"github.com/caas-team/precheck/pkg/checks"
	"github.com/caas-team/precheck/pkg/config"
	"github.com/caas-team/precheck/pkg/factory"
	"github.com/caas-team/precheck/pkg/metrics"
)

// Option configures a run
type Option func(*options)

type options struct {
	timeout time.Duration
	metrics metrics.Metrics
	now     func() time.Time
}

// WithTimeout sets the timeout applied to every single check.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMetrics records the outcome of every check in the registry of m.
func WithMetrics(m metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// Run executes the checks of the suite one after another in suite order
// and aggregates their outcomes. A check returning an error or panicking
// is recorded as errored and the run continues with the next check.
func Run(ctx context.Context, suite factory.Suite, env *checks.Env, opts ...Option) Report {
	o := &options{timeout: config.DefaultTimeout, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	log := logger.FromContext(ctx)

	var m *runMetrics
	if o.metrics != nil {
		m = newRunMetrics()
		for _, c := range m.collectors() {
			if err := o.metrics.GetRegistry().Register(c); err != nil {
				log.WarnContext(ctx, "Failed to register metric collector", "error", err)
			}
		}
	}

	log.InfoContext(ctx, "Starting pre-checks", "count", len(suite), "type", env.SystemType.String())
	start := o.now()
	report := Report{Results: make([]Result, 0, len(suite))}
	for _, c := range suite {
		res := runCheck(ctx, c, env, o)
		logResult(ctx, log, res)
		if m != nil {
			m.record(res)
		}
		report.add(res)
	}
	report.Elapsed = o.now().Sub(start)

	log.InfoContext(ctx, "All done! System verified", "elapsed", report.Elapsed.String())
	return report
}

// runCheck executes a single check under the per check timeout.
func runCheck(ctx context.Context, c checks.Check, env *checks.Env, o *options) (res Result) {
	name := c.Name()
	ctx, cancel := logger.NewContextWithLogger(ctx, name)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, o.timeout)
	defer cancelTimeout()

	start := o.now()
	res.Name = name
	defer func() {
		if r := recover(); r != nil {
			res.Outcome = checks.Errored(fmt.Sprintf("Unable to run check %q", name), fmt.Errorf("check panicked: %v", r))
		}
		res.Duration = o.now().Sub(start)
	}()

	logger.FromContext(ctx).DebugContext(ctx, "Running check")
	outcome, err := c.Execute(ctx, env)
	if err != nil {
		res.Outcome = checks.Errored(fmt.Sprintf("Unable to run check %q", name), err)
		return res
	}
	if !outcome.Status.Valid() {
		res.Outcome = checks.Errored(fmt.Sprintf("Unable to run check %q", name), errors.New("check returned no outcome"))
		return res
	}
	res.Outcome = outcome
	return res
}

func logResult(ctx context.Context, log *slog.Logger, res Result) {
	attrs := []any{"check", res.Name, logger.StatusKey, res.Outcome.Status.String()}
	switch res.Outcome.Status {
	case checks.StatusPass:
		log.InfoContext(ctx, res.Outcome.Message, attrs...)
	case checks.StatusErrored:
		log.ErrorContext(ctx, res.Outcome.Message, append(attrs, "error", res.Outcome.Err)...)
	default:
		log.ErrorContext(ctx, res.Outcome.Message, attrs...)
	}
}
