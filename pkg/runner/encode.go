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
	"encoding/json"
	"fmt"
	"io"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"gopkg.in/yaml.v3"

	"github.com/caas-team/precheck/internal/color"
	"github.com/caas-team/precheck/pkg/config"
)

// Document is the machine readable form of a Report
type Document struct {
	Total   int              `json:"total" yaml:"total"`
	Passed  int              `json:"passed" yaml:"passed"`
	Failed  int              `json:"failed" yaml:"failed"`
	Errored int              `json:"errored" yaml:"errored"`
	Elapsed float64          `json:"elapsedSeconds" yaml:"elapsedSeconds"`
	Checks  []DocumentResult `json:"checks" yaml:"checks"`
}

// DocumentResult is the machine readable form of a Result
type DocumentResult struct {
	Name     string  `json:"name" yaml:"name"`
	Status   string  `json:"status" yaml:"status"`
	Message  string  `json:"message" yaml:"message"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
	Duration float64 `json:"durationSeconds" yaml:"durationSeconds"`
}

// NewDocument converts the report.
func NewDocument(r Report) Document {
	doc := Document{
		Total:   r.Total,
		Passed:  r.Passed,
		Failed:  r.Failed,
		Errored: r.Errored,
		Elapsed: r.Elapsed.Seconds(),
		Checks:  make([]DocumentResult, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		dr := DocumentResult{
			Name:     res.Name,
			Status:   res.Outcome.Status.String(),
			Message:  res.Outcome.Message,
			Duration: res.Duration.Seconds(),
		}
		if res.Outcome.Err != nil {
			dr.Error = res.Outcome.Err.Error()
		}
		doc.Checks = append(doc.Checks, dr)
	}
	return doc
}

// Encode writes the report to w in the given format.
// The text format is rendered by FormatReport.
func Encode(w io.Writer, r Report, format string, verbosity int, c *color.Colorizer) error {
	switch format {
	case config.OutputText, "":
		_, err := io.WriteString(w, FormatReport(r, verbosity, c))
		return err
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(r))
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(r)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// Schema returns the OpenAPI schema of the machine readable report.
func Schema() (*openapi3.SchemaRef, error) {
	return openapi3gen.NewSchemaRefForValue(Document{}, openapi3.Schemas{})
}
