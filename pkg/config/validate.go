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

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/caas-team/precheck/internal/logger"
)

// Validate checks the run configuration. Every invalid field is logged with
// its flag name and all problems are returned joined.
func (c *Config) Validate(ctx context.Context, fm *CheckFlagsNameMapping) (err error) {
	ctx, cancel := logger.NewContextWithLogger(ctx, "configValidation")
	defer cancel()
	log := logger.FromContext(ctx)

	if c.Timeout <= 0 {
		log.ErrorContext(ctx, "The check timeout must be positive", fm.Timeout, c.Timeout)
		err = errors.Join(err, fmt.Errorf("%w: %v", ErrInvalidTimeout, c.Timeout))
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		log.ErrorContext(ctx, "The output format is not supported", fm.Output, c.Output)
		err = errors.Join(err, fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output))
	}

	if c.Verbosity < 0 {
		log.ErrorContext(ctx, "The verbosity must not be negative", fm.Verbosity, c.Verbosity)
		err = errors.Join(err, fmt.Errorf("%w: %d", ErrInvalidVerbosity, c.Verbosity))
	}

	if c.HolodeckFile == "" {
		log.ErrorContext(ctx, "The holodeck config path is empty", fm.HolodeckFile, c.HolodeckFile)
		err = errors.Join(err, ErrInvalidConfigPath)
	}

	if c.OSReleaseFile == "" {
		log.ErrorContext(ctx, "The os-release path is empty", fm.OSReleaseFile, c.OSReleaseFile)
		err = errors.Join(err, ErrInvalidOSReleasePath)
	}

	if err != nil {
		return fmt.Errorf("validation of configuration failed: %w", err)
	}
	return nil
}
