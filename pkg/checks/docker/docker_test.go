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

package docker

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/precheck/internal/probe/probetest"
	"github.com/caas-team/precheck/pkg/checks"
)

func TestCheck_Execute(t *testing.T) {
	tests := []struct {
		name       string
		fake       *probetest.Fake
		wantStatus checks.Status
		wantErr    bool
	}{
		{
			name:       "member",
			fake:       probetest.New().On("id -nG", "ec2-user adm wheel docker", 0),
			wantStatus: checks.StatusPass,
		},
		{
			name:       "not a member",
			fake:       probetest.New().On("id -nG", "ec2-user adm wheel", 0),
			wantStatus: checks.StatusFail,
		},
		{
			name:       "similar group name",
			fake:       probetest.New().On("id -nG", "ec2-user dockerroot", 0),
			wantStatus: checks.StatusFail,
		},
		{
			name:    "id fails",
			fake:    probetest.New().On("id -nG", "", 1),
			wantErr: true,
		},
		{
			name:    "id cannot be started",
			fake:    probetest.New().OnError("id -nG", errors.New("not found")),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &checks.Env{Prober: tt.fake, Fs: afero.NewMemMapFs()}
			got, err := NewCheck().Execute(context.Background(), env)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status, got.Message)
		})
	}
}

func TestCheck_Applies(t *testing.T) {
	c := NewCheck()
	assert.True(t, c.Applies(checks.NewSystemType(checks.TagVtrq, checks.TagVda)))
	assert.False(t, c.Applies(checks.NewSystemType(checks.TagVtrq)))
}
