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

package checks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/caas-team/precheck/internal/logger"
	"github.com/caas-team/precheck/internal/probe/probetest"
	"github.com/caas-team/precheck/pkg/config"
)

func TestParseSystemType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    SystemType
		wantErr bool
	}{
		{name: "empty", input: "", want: SystemType{}},
		{name: "vtrq", input: "vtrq", want: SystemType{"vtrq"}},
		{name: "vtrq-vda", input: "vtrq-vda", want: SystemType{"vda", "vtrq"}},
		{name: "unsupported", input: "vda-vtrq", wantErr: true},
		{name: "unknown", input: "holodeck", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSystemType(tt.input)
			if tt.wantErr {
				var stErr ErrInvalidSystemType
				require.ErrorAs(t, err, &stErr)
				assert.Equal(t, tt.input, stErr.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSystemType(t *testing.T) {
	st := NewSystemType("vtrq", "vda", "vtrq", "")
	assert.Equal(t, SystemType{"vda", "vtrq"}, st)
	assert.True(t, st.Has(TagVtrq))
	assert.True(t, st.Has(TagVda))
	assert.False(t, st.Has("docker"))
	assert.Equal(t, "vda,vtrq", st.String())
	assert.NoError(t, st.Validate())

	assert.Error(t, NewSystemType("vtrq", "gpu").Validate())
	assert.NoError(t, SystemType{}.Validate())
}

func TestApplicability(t *testing.T) {
	assert.True(t, Always(SystemType{}))
	assert.True(t, WithTag(TagVtrq)(NewSystemType(TagVtrq)))
	assert.False(t, WithTag(TagVda)(NewSystemType(TagVtrq)))

	f := &Func{CheckName: "no-predicate"}
	assert.True(t, f.Applies(SystemType{}))
}

func TestOutcome(t *testing.T) {
	p := Pass("Amazon version %s supported", "2")
	assert.Equal(t, StatusPass, p.Status)
	assert.True(t, p.Passed())
	assert.Equal(t, "pass: Amazon version 2 supported", p.String())

	f := Fail("Redhat version %s unsupported", "5")
	assert.Equal(t, StatusFail, f.Status)
	assert.False(t, f.Passed())

	cause := errors.New("boom")
	e := Errored("Unable to run check", cause)
	assert.Equal(t, StatusErrored, e.Status)
	assert.Equal(t, "errored: Unable to run check: boom", e.String())
}

func TestStatus_Marshal(t *testing.T) {
	b, err := json.Marshal(Errored("x", errors.New("y")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"errored","message":"x"}`, string(b))

	y, err := yaml.Marshal(Fail("nope"))
	require.NoError(t, err)
	assert.Equal(t, "status: fail\nmessage: nope\n", string(y))

	var s Status
	require.NoError(t, s.UnmarshalText([]byte("PASS")))
	assert.Equal(t, StatusPass, s)
	assert.Error(t, s.UnmarshalText([]byte("skipped")))

	var zero Outcome
	assert.False(t, zero.Status.Valid())
	assert.False(t, zero.Passed())
	_, err = zero.Status.MarshalText()
	assert.Error(t, err)
	assert.True(t, StatusErrored.Valid())

	_, err = Status(42).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Status(42)", Status(42).String())
}

func newTestEnv(t *testing.T) (*Env, *probetest.Fake) {
	t.Helper()
	fake := probetest.New()
	return &Env{
		SystemType:    NewSystemType(TagVtrq),
		OSReleasePath: "/etc/os-release",
		HolodeckPath:  "/home/holodeck/holodeck.cfg",
		Prober:        fake,
		Fs:            afero.NewMemMapFs(),
	}, fake
}

func TestEnv_OSRelease(t *testing.T) {
	env, _ := newTestEnv(t)
	require.NoError(t, afero.WriteFile(env.Fs, env.OSReleasePath, []byte("ID=\"amzn\"\nVERSION=\"2\"\n"), 0o644))

	m, err := env.OSRelease(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.Map{"ID": "amzn", "VERSION": "2"}, m)

	// the file is read only once per run
	require.NoError(t, env.Fs.Remove(env.OSReleasePath))
	m, err = env.OSRelease(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "amzn", m["ID"])
}

func TestEnv_OSReleaseSkipsQuietly(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.IntoContext(context.Background(), slog.New(logger.NewConsoleHandler(&buf, slog.LevelDebug)))
	env, _ := newTestEnv(t)
	require.NoError(t, afero.WriteFile(env.Fs, env.OSReleasePath, []byte("ID=amzn\nnot a pair\nVERSION = \"2\"\n"), 0o644))

	m, err := env.OSRelease(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.Map{"ID": "amzn", "VERSION": "2"}, m)
	assert.NotContains(t, buf.String(), "Skipping line")
	assert.Contains(t, buf.String(), "os-release has skipped lines")
}

func TestEnv_OSReleaseMissing(t *testing.T) {
	env, _ := newTestEnv(t)
	_, err := env.OSRelease(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnv_Holodeck(t *testing.T) {
	env, fake := newTestEnv(t)
	fake.On("hostname -i", "10.1.2.3 fe80::1", 0)
	require.NoError(t, afero.WriteFile(env.Fs, env.HolodeckPath, []byte(
		"# holodeck\nHOLODECK_INSTALL_DIR /opt/holodeck\nVTRQ_ADDRESS `hostname -i`\n"), 0o644))

	m, err := env.Holodeck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.Map{"HOLODECK_INSTALL_DIR": "/opt/holodeck", "VTRQ_ADDRESS": "10.1.2.3"}, m)
	assert.Equal(t, []string{"hostname -i"}, fake.Calls)
}

func TestEnv_HolodeckMissing(t *testing.T) {
	env, _ := newTestEnv(t)

	_, err := env.Holodeck(context.Background())
	var cfgErr *ErrConfiguration
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, env.HolodeckPath, cfgErr.Source)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnv_HolodeckHostnameFails(t *testing.T) {
	env, fake := newTestEnv(t)
	fake.On("hostname -i", "", 1)
	require.NoError(t, afero.WriteFile(env.Fs, env.HolodeckPath, []byte("ADDR `hostname -i`\n"), 0o644))

	_, err := env.Holodeck(context.Background())
	var execErr *ErrExecution
	assert.ErrorAs(t, err, &execErr)
}
