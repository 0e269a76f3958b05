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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caas-team/precheck/internal/color"
	"github.com/caas-team/precheck/internal/logger"
	"github.com/caas-team/precheck/pkg/checks"
	"github.com/caas-team/precheck/pkg/config"
	"github.com/caas-team/precheck/pkg/factory"
	"github.com/caas-team/precheck/pkg/metrics"
	"github.com/caas-team/precheck/pkg/runner"
)

// EnvConfigFile overrides the default location of the holodeck configuration
const EnvConfigFile = "HOLODECK_CONFIGURATION_FILE"

// NewCmdCheck creates a new check command
func NewCmdCheck() *cobra.Command {
	flagMapping := config.CheckFlagsNameMapping{
		SystemType:    "type",
		HolodeckFile:  "config",
		OSReleaseFile: "os-release",
		Timeout:       "timeout",
		Verbosity:     "verbose",
		Output:        "output",
		MetricsFile:   "metrics-file",
		LogFile:       "log-file",
	}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the pre-checks",
		Long: "Verifies that the host meets the prerequisites of the holodeck installation.\n" +
			"Exits with 255 if any check fails or cannot be run.",
		Args: cobra.NoArgs,
		RunE: runChecks(&flagMapping),
	}

	NewFlag(flagMapping.Verbosity, flagMapping.Verbosity).CountP("v").Bind(cmd,
		"verbosity: -v lists every check and logs info, -vv logs debug details")
	NewFlag(flagMapping.SystemType, flagMapping.SystemType).StringP("t").Bind(cmd, "",
		fmt.Sprintf("system type that needs checking, one of %v", checks.SupportedSystemTypes))
	NewFlag(flagMapping.HolodeckFile, flagMapping.HolodeckFile).BindEnv(EnvConfigFile).StringP("c").Bind(cmd, config.DefaultHolodeckFile(),
		"path of the holodeck configuration, defaults to $"+EnvConfigFile)
	NewFlag(flagMapping.OSReleaseFile, flagMapping.OSReleaseFile).String().Bind(cmd, config.DefaultOSReleasePath,
		"path of the os-release file")
	NewFlag(flagMapping.Timeout, flagMapping.Timeout).Duration().Bind(cmd, config.DefaultTimeout,
		"timeout of a single check")
	NewFlag(flagMapping.Output, flagMapping.Output).StringP("o").Bind(cmd, config.OutputText,
		"output format of the report: text, json or yaml")
	NewFlag(flagMapping.MetricsFile, flagMapping.MetricsFile).String().Bind(cmd, "",
		"write the check results as prometheus metrics to this file")
	NewFlag(flagMapping.LogFile, flagMapping.LogFile).String().Bind(cmd, "",
		"additionally write debug logs as JSON to this file")

	return cmd
}

// runChecks is the entry point of the check command
func runChecks(fm *config.CheckFlagsNameMapping) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg := config.NewConfig()
		cfg.SystemType = viper.GetString(fm.SystemType)
		cfg.HolodeckFile = viper.GetString(fm.HolodeckFile)
		cfg.OSReleaseFile = viper.GetString(fm.OSReleaseFile)
		cfg.Timeout = viper.GetDuration(fm.Timeout)
		cfg.Verbosity = viper.GetInt(fm.Verbosity)
		cfg.Output = viper.GetString(fm.Output)
		cfg.MetricsFile = viper.GetString(fm.MetricsFile)
		cfg.LogFile = viper.GetString(fm.LogFile)

		colorizer := color.FromEnv()
		log, closer := logger.New(logger.Options{
			Verbosity: cfg.Verbosity,
			Writer:    cmd.ErrOrStderr(),
			File:      cfg.LogFile,
			Color:     colorizer,
		})
		defer closer.Close()
		ctx := logger.IntoContext(cmd.Context(), log)

		if err := cfg.Validate(ctx, fm); err != nil {
			return err
		}

		st, err := checks.ParseSystemType(cfg.SystemType)
		if err != nil {
			log.ErrorContext(ctx, "Invalid system type", fm.SystemType, cfg.SystemType)
			return err
		}
		suite, err := factory.BuildSuite(st)
		if err != nil {
			return err
		}
		log.DebugContext(ctx, "Checks selected", "checks", suite.Names())

		opts := []runner.Option{runner.WithTimeout(cfg.Timeout)}
		var m metrics.Metrics
		if cfg.HasMetricsFile() {
			m = metrics.NewMetrics()
			opts = append(opts, runner.WithMetrics(m))
		}

		env := checks.NewEnv(st, cfg.OSReleaseFile, cfg.HolodeckFile)
		report := runner.Run(ctx, suite, env, opts...)

		if m != nil {
			if err := m.WriteToTextfile(cfg.MetricsFile); err != nil {
				log.ErrorContext(ctx, "Failed to write metrics", "error", err)
			}
		}

		if err := runner.Encode(cmd.OutOrStdout(), report, cfg.Output, cfg.Verbosity, colorizer); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if code := runner.ExitCode(report); code != 0 {
			return &ExitError{Code: code}
		}
		return nil
	}
}
