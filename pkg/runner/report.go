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
	"fmt"
	"strings"
	"time"

	"github.com/caas-team/precheck/internal/color"
	"github.com/caas-team/precheck/pkg/checks"
)

// ExitFailure is the exit code of a run with failed or errored checks
const ExitFailure = 255

// Result is the outcome of a single check within a run
type Result struct {
	Name     string
	Outcome  checks.Outcome
	Duration time.Duration
}

// Report aggregates the results of a run.
// Total always equals Passed + Failed + Errored.
type Report struct {
	Total   int
	Passed  int
	Failed  int
	Errored int
	Elapsed time.Duration
	Results []Result
}

func (r *Report) add(res Result) {
	r.Total++
	switch res.Outcome.Status {
	case checks.StatusPass:
		r.Passed++
	case checks.StatusFail:
		r.Failed++
	default:
		r.Errored++
	}
	r.Results = append(r.Results, res)
}

// Ok reports whether every check passed.
func (r Report) Ok() bool {
	return r.Failed+r.Errored == 0
}

// ExitCode returns the process exit code for the report.
func ExitCode(r Report) int {
	if r.Ok() {
		return 0
	}
	return ExitFailure
}

// FormatReport renders the report for humans. With a verbosity of at least
// one every check is listed before the summary. A quiet run with problems
// ends with a hint on how to get more details.
func FormatReport(r Report, verbosity int, c *color.Colorizer) string {
	var b strings.Builder
	if verbosity >= 1 {
		for _, res := range r.Results {
			fmt.Fprintf(&b, "%s %-36s %s\n", statusLabel(res.Outcome.Status, c), res.Name, res.Outcome.Message)
			if res.Outcome.Err != nil {
				fmt.Fprintf(&b, "%-9s %-36s %v\n", "", "", res.Outcome.Err)
			}
		}
	}

	summary := fmt.Sprintf("%d checks: %d passed, %d failed, %d errored in %s",
		r.Total, r.Passed, r.Failed, r.Errored, r.Elapsed.Round(time.Millisecond))
	if r.Ok() {
		summary = c.Green(summary)
	} else {
		summary = c.Red(summary)
	}
	b.WriteString(summary)
	b.WriteByte('\n')

	if !r.Ok() && verbosity == 0 {
		b.WriteString(c.Cyan("re-run with -vv for details"))
		b.WriteByte('\n')
	}
	return b.String()
}

func statusLabel(s checks.Status, c *color.Colorizer) string {
	label := fmt.Sprintf("%-9s", "["+strings.ToUpper(s.String())+"]")
	switch s {
	case checks.StatusPass:
		return c.Green(label)
	case checks.StatusFail:
		return c.Red(label)
	default:
		return c.Paint(label, color.Red, true)
	}
}
