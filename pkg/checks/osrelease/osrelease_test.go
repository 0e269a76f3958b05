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

package osrelease

import (
	"context"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/precheck/internal/probe/probetest"
	"github.com/caas-team/precheck/pkg/checks"
	"github.com/caas-team/precheck/pkg/config"
)

func newEnv(t *testing.T, osRelease string) *checks.Env {
	t.Helper()
	memFs := afero.NewMemMapFs()
	if osRelease != "" {
		require.NoError(t, afero.WriteFile(memFs, "/etc/os-release", []byte(osRelease), 0o644))
	}
	return &checks.Env{
		OSReleasePath: "/etc/os-release",
		Prober:        probetest.New(),
		Fs:            memFs,
	}
}

func TestCheck_Execute(t *testing.T) {
	tests := []struct {
		name       string
		osRelease  string
		wantStatus checks.Status
		wantMsg    string
	}{
		{
			name:       "amazon linux 2",
			osRelease:  "NAME=\"Amazon Linux\"\nVERSION=\"2\"\nID=\"amzn\"\nID_LIKE=\"centos rhel fedora\"\nVERSION_ID=\"2\"\n",
			wantStatus: checks.StatusPass,
			wantMsg:    "Amazon version 2 supported",
		},
		{
			name:       "amazon linux 1",
			osRelease:  "ID=amzn\nVERSION=2018.03\n",
			wantStatus: checks.StatusFail,
			wantMsg:    "Amazon version 2018.03 unsupported",
		},
		{
			name:       "redhat 5",
			osRelease:  "ID=rhel\nVERSION=5\n",
			wantStatus: checks.StatusFail,
			wantMsg:    "Redhat version 5 unsupported",
		},
		{
			name:       "redhat 7 with code name",
			osRelease:  "ID=\"rhel\"\nVERSION=\"7.9 (Maipo)\"\n",
			wantStatus: checks.StatusPass,
			wantMsg:    "Redhat version 7.9 (Maipo) supported",
		},
		{
			name:       "redhat 6",
			osRelease:  "ID=rhel\nVERSION=6\n",
			wantStatus: checks.StatusPass,
			wantMsg:    "Redhat version 6 supported",
		},
		{
			name:       "ubuntu 18.04",
			osRelease:  "ID=ubuntu\nVERSION=\"18.04.5 LTS (Bionic Beaver)\"\nVERSION_ID=\"18.04\"\n",
			wantStatus: checks.StatusPass,
			wantMsg:    "Ubuntu version 18.04 supported",
		},
		{
			name:       "ubuntu 20.04",
			osRelease:  "ID=ubuntu\nVERSION_ID=\"20.04\"\n",
			wantStatus: checks.StatusFail,
			wantMsg:    "Ubuntu version 20.04 unsupported",
		},
		{
			name:       "unrecognized os",
			osRelease:  "ID=debian\nVERSION_ID=\"12\"\n",
			wantStatus: checks.StatusFail,
			wantMsg:    "Unrecognized OS \"debian\" in /etc/os-release",
		},
		{
			name:       "no ID key",
			osRelease:  "NAME=Linux\nVERSION=2\n",
			wantStatus: checks.StatusFail,
			wantMsg:    "Unable to identify ID and or VERSION",
		},
		{
			name:       "no version",
			osRelease:  "ID=amzn\n",
			wantStatus: checks.StatusFail,
			wantMsg:    "Unable to identify ID and or VERSION",
		},
		{
			name:       "missing file",
			osRelease:  "",
			wantStatus: checks.StatusFail,
			wantMsg:    "Unable to identify ID and or VERSION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCheck()
			got, err := c.Execute(context.Background(), newEnv(t, tt.osRelease))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status, got.Message)
			assert.Contains(t, got.Message, tt.wantMsg)
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		data       config.Map
		path       string
		wantStatus checks.Status
		wantMsg    string
	}{
		{
			name:       "unrecognized os names the file it was read from",
			data:       config.Map{"ID": "gentoo"},
			path:       "/srv/host/os-release",
			wantStatus: checks.StatusFail,
			wantMsg:    `Unrecognized OS "gentoo" in /srv/host/os-release`,
		},
		{
			name:       "unidentified keeps the fixed wording",
			data:       config.Map{"NAME": "Linux"},
			path:       "/srv/host/os-release",
			wantStatus: checks.StatusFail,
			wantMsg:    "Unable to identify ID and or VERSION from /etc/os-release",
		},
		{
			name:       "supported",
			data:       config.Map{"ID": "amzn", "VERSION": "2"},
			path:       "/srv/host/os-release",
			wantStatus: checks.StatusPass,
			wantMsg:    "Amazon version 2 supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.data, tt.path)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestCheck_ExecuteCustomPath(t *testing.T) {
	env := newEnv(t, "")
	env.OSReleasePath = "/mnt/root/etc/os-release"
	require.NoError(t, afero.WriteFile(env.Fs, env.OSReleasePath, []byte("ID=arch\n"), 0o644))

	got, err := NewCheck().Execute(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, `Unrecognized OS "arch" in /mnt/root/etc/os-release`, got.Message)
}

func TestCheck_ExecuteReadError(t *testing.T) {
	env := newEnv(t, "")
	env.Fs = &permissionDeniedFs{Fs: env.Fs}

	_, err := NewCheck().Execute(context.Background(), env)
	var execErr *checks.ErrExecution
	assert.ErrorAs(t, err, &execErr)
}

type permissionDeniedFs struct {
	afero.Fs
}

func (*permissionDeniedFs) Open(name string) (afero.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
}

func TestCheck_Applies(t *testing.T) {
	c := NewCheck()
	assert.Equal(t, CheckName, c.Name())
	assert.True(t, c.Applies(checks.SystemType{}))
	assert.True(t, c.Applies(checks.NewSystemType(checks.TagVtrq, checks.TagVda)))
}

func TestMajorVersion(t *testing.T) {
	tests := map[string]string{
		"2":                           "2",
		"7.9 (Maipo)":                 "7",
		"18.04":                       "18",
		"18.04.5 LTS (Bionic Beaver)": "18",
		" 6 ":                         "6",
		"Rolling":                     "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, MajorVersion(in))
		})
	}
}
