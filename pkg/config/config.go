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
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultOSReleasePath is the os-release file of the host.
	DefaultOSReleasePath = "/etc/os-release"
	// DefaultConfigName is the holodeck config file looked up in $HOME.
	DefaultConfigName = "holodeck.cfg"
	// DefaultTimeout bounds a single check.
	DefaultTimeout = 30 * time.Second
)

// Output formats of the run report
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the settings of a single precheck run
type Config struct {
	// SystemType is the raw value of the --type flag, e.g. "vtrq-vda"
	SystemType string
	// HolodeckFile is the path of the holodeck key value configuration
	HolodeckFile string
	// OSReleaseFile is the path of the os-release file
	OSReleaseFile string
	// Timeout bounds every single check
	Timeout   time.Duration
	Verbosity int
	Output    string
	// MetricsFile is an optional prometheus textfile collector output
	MetricsFile string
	// LogFile is an optional rotated JSON log file
	LogFile string
}

// NewConfig returns a Config carrying the defaults.
func NewConfig() *Config {
	return &Config{
		HolodeckFile:  DefaultHolodeckFile(),
		OSReleaseFile: DefaultOSReleasePath,
		Timeout:       DefaultTimeout,
		Output:        OutputText,
	}
}

// DefaultHolodeckFile returns $HOME/holodeck.cfg, or holodeck.cfg
// relative to the working directory if HOME is not set.
func DefaultHolodeckFile() string {
	home := os.Getenv("HOME")
	if home == "" {
		return DefaultConfigName
	}
	return filepath.Join(home, DefaultConfigName)
}

// HasMetricsFile returns true if the run metrics should be written to a file
func (c *Config) HasMetricsFile() bool {
	return c.MetricsFile != ""
}
