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

package holodeck

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/caas-team/precheck/internal/logger"
	"github.com/caas-team/precheck/pkg/checks"
)

const probePattern = ".precheck-*"

var _ checks.Check = (*writableCheck)(nil)

type writableCheck struct {
	key     string
	applies checks.Applicability
}

// NewWritableCheck returns the check verifying that the directory configured
// under key in the holodeck configuration accepts new files.
func NewWritableCheck(key string, applies checks.Applicability) checks.Check {
	return &writableCheck{key: key, applies: applies}
}

// WritableCheckName returns the name of the writable check for key.
func WritableCheckName(key string) string {
	return fmt.Sprintf("writable-dir(%s)", key)
}

func (c *writableCheck) Name() string {
	return WritableCheckName(c.key)
}

func (c *writableCheck) Applies(st checks.SystemType) bool {
	return c.applies == nil || c.applies(st)
}

func (c *writableCheck) Execute(ctx context.Context, env *checks.Env) (checks.Outcome, error) {
	m, err := env.Holodeck(ctx)
	if err != nil {
		return configFailure(env.HolodeckPath, err), nil
	}

	dir, ok := m.Get(c.key)
	if !ok || dir == "" {
		return checks.Fail("Failing writable directory.  %s is not defined in %s", c.key, env.HolodeckPath), nil
	}

	info, err := env.Fs.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return checks.Fail("Failing writable directory.  %s (%s) does not exist", dir, c.key), nil
	case err != nil:
		return checks.Fail("Failing writable directory.  Unable to access %s (%s): %v", dir, c.key, err), nil
	case !info.IsDir():
		return checks.Fail("Failing writable directory.  %s (%s) is not a directory", dir, c.key), nil
	}

	if err := Probe(ctx, env.Fs, dir); err != nil {
		return checks.Fail("Failing writable directory.  %s (%s) is not writable: %v", dir, c.key, err), nil
	}
	return checks.Pass("Passing writable directory.  %s (%s) is writable", dir, c.key), nil
}

// Probe creates a uniquely named file in dir and removes it again.
// The file is removed on every return path.
func Probe(ctx context.Context, afs afero.Fs, dir string) (err error) {
	log := logger.FromContext(ctx)
	f, err := afero.TempFile(afs, dir, probePattern)
	if err != nil {
		return err
	}
	name := f.Name()
	log.DebugContext(ctx, "Created probe file", "path", name)

	defer func() {
		if rErr := afs.Remove(name); rErr != nil && !errors.Is(rErr, fs.ErrNotExist) {
			err = errors.Join(err, fmt.Errorf("failed to remove probe file: %w", rErr))
		}
	}()

	if _, err := f.WriteString("precheck\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
