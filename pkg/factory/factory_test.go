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

package factory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/precheck/pkg/checks"
)

func TestBuildSuite(t *testing.T) {
	universal := []string{
		"os-type",
		"sudo-available",
		"git-available",
		"config-exists",
		"writable-dir(HOLODECK_INSTALL_DIR)",
		"writable-dir(HOLODECK_LOG_DIR)",
		"installed-packages",
	}

	tests := []struct {
		name    string
		st      checks.SystemType
		want    []string
		wantErr bool
	}{
		{
			name: "no system type",
			st:   checks.SystemType{},
			want: universal,
		},
		{
			name: "vtrq",
			st:   checks.NewSystemType(checks.TagVtrq),
			want: []string{
				"os-type",
				"sudo-available",
				"sudo-access",
				"nvme-disk",
				"git-available",
				"config-exists",
				"writable-dir(HOLODECK_INSTALL_DIR)",
				"writable-dir(HOLODECK_LOG_DIR)",
				"writable-dir(VTRQ_BACKING_STORE)",
				"installed-packages",
			},
		},
		{
			name: "vtrq-vda",
			st:   checks.NewSystemType(checks.TagVtrq, checks.TagVda),
			want: []string{
				"os-type",
				"sudo-available",
				"sudo-access",
				"nvme-disk",
				"git-available",
				"config-exists",
				"writable-dir(HOLODECK_INSTALL_DIR)",
				"writable-dir(HOLODECK_LOG_DIR)",
				"writable-dir(VTRQ_BACKING_STORE)",
				"writable-dir(VDA_BACKING_STORE)",
				"installed-packages",
				"docker-available",
				"user-in-docker-group",
			},
		},
		{
			name:    "unknown tag",
			st:      checks.NewSystemType("mainframe"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildSuite(tt.st)
			if tt.wantErr {
				var stErr checks.ErrInvalidSystemType
				require.ErrorAs(t, err, &stErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got.Names()); diff != "" {
				t.Errorf("BuildSuite() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildSuite_Deterministic(t *testing.T) {
	st := checks.NewSystemType(checks.TagVda, checks.TagVtrq)
	first, err := BuildSuite(st)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := BuildSuite(st)
		require.NoError(t, err)
		assert.Equal(t, first.Names(), again.Names())
	}
}

func TestRegistered_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range Registered().Names() {
		assert.False(t, seen[name], "duplicate check name %q", name)
		seen[name] = true
	}
	assert.Len(t, seen, 13)
}
