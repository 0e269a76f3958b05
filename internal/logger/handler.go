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

package logger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/caas-team/precheck/internal/color"
)

const timeFormat = "15:04:05"

// Records carrying StatusKey=StatusPassed are painted green.
const (
	StatusKey    = "status"
	StatusPassed = "pass"
)

var (
	_ slog.Handler = (*ConsoleHandler)(nil)
	_ slog.Handler = fanout(nil)
)

// ConsoleHandler writes records as single lines of the form
//
//	15:04:05 LEVEL message key=value ...
type ConsoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
	color  *color.Colorizer
}

// NewConsoleHandler returns a handler writing to w for records at or above level.
func NewConsoleHandler(w io.Writer, level slog.Leveler) *ConsoleHandler {
	return &ConsoleHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
	}
}

// WithColor returns a copy of the handler painting messages with c:
// errors red, warnings yellow and records of passed checks green.
func (h *ConsoleHandler) WithColor(c *color.Colorizer) *ConsoleHandler {
	cp := *h
	cp.color = c
	return &cp
}

func (h *ConsoleHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	if !r.Time.IsZero() {
		buf.WriteString(r.Time.Format(timeFormat))
		buf.WriteByte(' ')
	}
	buf.WriteString(r.Level.String())
	buf.WriteByte(' ')
	buf.WriteString(h.paint(r))

	for _, a := range h.attrs {
		writeAttr(&buf, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// paint colors the message of r according to its level and status attribute.
func (h *ConsoleHandler) paint(r slog.Record) string {
	switch {
	case !h.color.Enabled():
		return r.Message
	case r.Level >= slog.LevelError:
		return h.color.Red(r.Message)
	case r.Level >= slog.LevelWarn:
		return h.color.Yellow(r.Message)
	}

	passed := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == StatusKey {
			passed = a.Value.String() == StatusPassed
			return false
		}
		return true
	})
	if passed {
		return h.color.Green(r.Message)
	}
	return r.Message
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		c.attrs = append(c.attrs, a)
	}
	return &c
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

func writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(buf, p, ga)
		}
		return
	}
	val := a.Value.String()
	if strings.ContainsAny(val, " \t\"=") {
		val = fmt.Sprintf("%q", val)
	}
	fmt.Fprintf(buf, " %s%s=%s", prefix, a.Key, val)
}

// fanout dispatches every record to all handlers enabled for its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) (err error) {
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			err = errors.Join(err, h.Handle(ctx, r.Clone()))
		}
	}
	return err
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make(fanout, len(f))
	for i, h := range f {
		hs[i] = h.WithAttrs(attrs)
	}
	return hs
}

func (f fanout) WithGroup(name string) slog.Handler {
	hs := make(fanout, len(f))
	for i, h := range f {
		hs[i] = h.WithGroup(name)
	}
	return hs
}
