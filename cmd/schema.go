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

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/caas-team/precheck/pkg/config"
	"github.com/caas-team/precheck/pkg/runner"
)

// reportSchemaName is the component name of the report schema
const reportSchemaName = "Report"

// NewCmdSchema creates a new schema command
func NewCmdSchema() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the schema of the report",
		Long:  `Print the OpenAPI schema of the report written by "check --output json|yaml"`,
		Args:  cobra.NoArgs,
		RunE:  runSchema(&output),
	}

	cmd.PersistentFlags().StringVarP(&output, "output", "o", config.OutputYAML, "format of the schema: json or yaml")

	return cmd
}

// ReportDocument returns the OpenAPI document describing the report.
func ReportDocument(version string) (openapi3.T, error) {
	ref, err := runner.Schema()
	if err != nil {
		return openapi3.T{}, fmt.Errorf("failed to generate report schema: %w", err)
	}

	return openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "precheck report",
			Description: "Outcome of the holodeck pre-checks",
			Version:     version,
		},
		Paths: openapi3.Paths{},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				reportSchemaName: ref,
			},
		},
	}, nil
}

func runSchema(output *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		version := cmd.Root().Version
		if version == "" {
			version = "dev"
		}
		doc, err := ReportDocument(version)
		if err != nil {
			return err
		}

		switch *output {
		case config.OutputJSON:
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		case config.OutputYAML:
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return err
			}
			return enc.Close()
		default:
			return fmt.Errorf("%w: %q", config.ErrInvalidOutput, *output)
		}
	}
}
