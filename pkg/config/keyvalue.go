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
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/caas-team/precheck/internal/logger"
)

const hostnameSubstitution = "`hostname -i`"

var (
	commentLine = regexp.MustCompile(`^\s*#`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Map is a flat set of settings read from a key value file.
// It is never modified after it has been parsed.
type Map map[string]string

// Get returns the value stored for key.
func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

type mapOptions struct {
	separator string
	quiet     bool
	hostname  func(ctx context.Context) (string, error)
}

// MapOption configures the parsing of a key value file
type MapOption func(*mapOptions)

// WithSeparator sets the string between key and value. Defaults to a single space.
func WithSeparator(sep string) MapOption {
	return func(o *mapOptions) {
		o.separator = sep
	}
}

// Quiet disables the warnings for skipped lines.
func Quiet() MapOption {
	return func(o *mapOptions) {
		o.quiet = true
	}
}

// WithHostnameResolver replaces a literal `hostname -i` in a line
// with the address returned by resolve before the line is split.
func WithHostnameResolver(resolve func(ctx context.Context) (string, error)) MapOption {
	return func(o *mapOptions) {
		o.hostname = resolve
	}
}

// ReadMap reads the key value file at path from fs.
func ReadMap(ctx context.Context, fs afero.Fs, path string, opts ...MapOption) (Map, []ErrMalformedLine, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ParseMap(ctx, f, path, opts...)
}

// ParseMap parses newline separated "key<sep>value" pairs.
//
// Blank lines and lines starting with # are ignored. Runs of whitespace are
// collapsed into a single space. Lines which do not split into exactly two
// tokens are skipped and returned. Whitespace around the separator is
// trimmed from both tokens. One layer of matching single or double
// quotes is stripped from the value; mismatched quotes are kept.
func ParseMap(ctx context.Context, r io.Reader, source string, opts ...MapOption) (Map, []ErrMalformedLine, error) {
	o := &mapOptions{separator: " "}
	for _, opt := range opts {
		opt(o)
	}
	log := logger.FromContext(ctx)

	result := Map{}
	var skipped []ErrMalformedLine
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || commentLine.MatchString(line) {
			continue
		}
		line = whitespace.ReplaceAllString(line, " ")

		if o.hostname != nil && strings.Contains(line, hostnameSubstitution) {
			addr, err := o.hostname(ctx)
			if err != nil {
				return nil, skipped, fmt.Errorf("failed to resolve host address for %q: %w", source, err)
			}
			line = strings.ReplaceAll(line, hostnameSubstitution, strings.TrimSpace(addr))
		}

		parts := strings.Split(line, o.separator)
		if len(parts) != 2 {
			skip := ErrMalformedLine{Source: source, Line: line}
			skipped = append(skipped, skip)
			if !o.quiet {
				log.WarnContext(ctx, "Skipping line", "line", line, "source", source)
			}
			continue
		}

		result[strings.TrimSpace(parts[0])] = unquote(strings.TrimSpace(parts[1]))
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("failed to read %q: %w", source, err)
	}

	return result, skipped, nil
}

// unquote strips one layer of matching quotes.
func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	first, last := v[0], v[len(v)-1]
	if first == last && (first == '"' || first == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}
