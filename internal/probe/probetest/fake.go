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

// Package probetest provides a scripted probe.Prober for tests.
package probetest

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/caas-team/precheck/internal/probe"
)

var _ probe.Prober = (*Fake)(nil)

// Response is the scripted answer for a command line.
type Response struct {
	Result *probe.Result
	Err    error
}

// Fake answers commands from a table keyed by the full command line,
// e.g. "sudo -nl". Unknown commands return an error.
type Fake struct {
	mu        sync.Mutex
	Responses map[string]Response
	// Paths maps executable names to the path LookPath reports.
	Paths map[string]string
	// Calls records every command line passed to Run.
	Calls []string
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		Responses: map[string]Response{},
		Paths:     map[string]string{},
	}
}

// On scripts the output and exit code for a command line.
func (f *Fake) On(cmdline, stdout string, exitCode int) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[cmdline] = Response{Result: &probe.Result{Stdout: stdout, ExitCode: exitCode}}
	return f
}

// OnError scripts a launch failure for a command line.
func (f *Fake) OnError(cmdline string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[cmdline] = Response{Err: err}
	return f
}

// WithPath makes LookPath resolve name.
func (f *Fake) WithPath(name, path string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Paths[name] = path
	return f
}

func (f *Fake) Run(ctx context.Context, name string, args ...string) (*probe.Result, error) {
	cmdline := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, cmdline)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, ok := f.Responses[cmdline]
	if !ok {
		return nil, fmt.Errorf("failed to run %s: %w", name, exec.ErrNotFound)
	}
	return r.Result, r.Err
}

func (f *Fake) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.Paths[name]; ok {
		return p, nil
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}
