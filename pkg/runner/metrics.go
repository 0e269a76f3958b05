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
	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/precheck/pkg/checks"
)

// runMetrics defines the metrics recorded for every check of a run
type runMetrics struct {
	status   *prometheus.GaugeVec
	duration *prometheus.GaugeVec
	count    *prometheus.CounterVec
}

func newRunMetrics() *runMetrics {
	return &runMetrics{
		status: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "precheck_check_status",
				Help: "Status of the check: 0 pass, 1 fail, 2 errored",
			},
			[]string{
				"check",
			},
		),
		duration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "precheck_check_duration_seconds",
				Help: "Duration of the check",
			},
			[]string{
				"check",
			},
		),
		count: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "precheck_checks_total",
				Help: "Count of checks run by status",
			},
			[]string{
				"status",
			},
		),
	}
}

func (m *runMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.status, m.duration, m.count}
}

// statusValues keeps the exported gauge values independent of the Status constants
var statusValues = map[checks.Status]float64{
	checks.StatusPass:    0,
	checks.StatusFail:    1,
	checks.StatusErrored: 2,
}

func (m *runMetrics) record(res Result) {
	v, ok := statusValues[res.Outcome.Status]
	if !ok {
		v = statusValues[checks.StatusErrored]
	}
	m.status.WithLabelValues(res.Name).Set(v)
	m.duration.WithLabelValues(res.Name).Set(res.Duration.Seconds())
	m.count.WithLabelValues(res.Outcome.Status.String()).Inc()
}
