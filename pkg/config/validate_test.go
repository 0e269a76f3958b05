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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/caas-team/precheck/internal/logger"
)

func TestConfig_Validate(t *testing.T) {
	ctx, cancel := logger.NewContextWithLogger(context.Background(), "test")
	defer cancel()

	fm := &CheckFlagsNameMapping{
		Timeout:       "timeout",
		Output:        "output",
		Verbosity:     "verbose",
		HolodeckFile:  "config",
		OSReleaseFile: "osRelease",
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr []error
	}{
		{
			name:   "defaults are valid",
			modify: func(c *Config) {},
		},
		{
			name:   "yaml output",
			modify: func(c *Config) { c.Output = OutputYAML },
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Timeout = 0 },
			wantErr: []error{ErrInvalidTimeout},
		},
		{
			name:    "unknown output",
			modify:  func(c *Config) { c.Output = "xml" },
			wantErr: []error{ErrInvalidOutput},
		},
		{
			name: "all problems are reported",
			modify: func(c *Config) {
				c.Timeout = -time.Second
				c.Verbosity = -1
				c.HolodeckFile = ""
				c.OSReleaseFile = ""
			},
			wantErr: []error{ErrInvalidTimeout, ErrInvalidVerbosity, ErrInvalidConfigPath, ErrInvalidOSReleasePath},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConfig()
			tt.modify(c)

			err := c.Validate(ctx, fm)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestDefaultHolodeckFile(t *testing.T) {
	t.Setenv("HOME", "/home/holodeck")
	assert.Equal(t, "/home/holodeck/holodeck.cfg", DefaultHolodeckFile())

	t.Setenv("HOME", "")
	assert.Equal(t, "holodeck.cfg", DefaultHolodeckFile())
}

func TestNewHolodeck(t *testing.T) {
	m := Map{
		KeyInstallDir:       "/opt/holodeck",
		KeyLogDir:           "/var/log/holodeck",
		KeyVtrqBackingStore: "/data/vtrq",
		"HOLODECK_VERSION":  "3.1",
	}

	h, unused, err := NewHolodeck(m)
	assert.NoError(t, err)
	assert.Equal(t, Holodeck{
		InstallDir:       "/opt/holodeck",
		LogDir:           "/var/log/holodeck",
		VtrqBackingStore: "/data/vtrq",
	}, h)
	assert.Equal(t, []string{"HOLODECK_VERSION"}, unused)
	assert.Equal(t, []string{KeyVdaBackingStore}, h.Missing())
}
