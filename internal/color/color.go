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

package color

import (
	"os"

	"github.com/muesli/termenv"
)

// Color names one of the basic ANSI colors.
type Color string

const (
	Default Color = "default"
	Black   Color = "black"
	Red     Color = "red"
	Green   Color = "green"
	Yellow  Color = "yellow"
	Blue    Color = "blue"
	Magenta Color = "magenta"
	Cyan    Color = "cyan"
	White   Color = "white"
)

var palette = map[Color]termenv.ANSIColor{
	Black:   termenv.ANSIBlack,
	Red:     termenv.ANSIRed,
	Green:   termenv.ANSIGreen,
	Yellow:  termenv.ANSIYellow,
	Blue:    termenv.ANSIBlue,
	Magenta: termenv.ANSIMagenta,
	Cyan:    termenv.ANSICyan,
	White:   termenv.ANSIWhite,
}

// Colorizer wraps text in ANSI escape sequences.
// The zero value does not color anything.
type Colorizer struct {
	enabled bool
}

// New returns a Colorizer. A disabled Colorizer returns all text unchanged.
func New(enabled bool) *Colorizer {
	return &Colorizer{enabled: enabled}
}

// FromEnv returns a Colorizer that is disabled when NO_COLOR is set to "1".
func FromEnv() *Colorizer {
	return New(os.Getenv("NO_COLOR") != "1")
}

// Enabled reports whether escape sequences are emitted.
func (c *Colorizer) Enabled() bool {
	return c != nil && c.enabled
}

// Paint wraps msg in the given color. Unknown colors keep the terminal default.
func (c *Colorizer) Paint(msg string, color Color, bold bool) string {
	if !c.Enabled() {
		return msg
	}
	s := termenv.ANSI.String(msg)
	if ansi, ok := palette[color]; ok {
		s = s.Foreground(ansi)
	}
	if bold {
		s = s.Bold()
	}
	return s.String()
}

func (c *Colorizer) Red(msg string) string    { return c.Paint(msg, Red, false) }
func (c *Colorizer) Green(msg string) string  { return c.Paint(msg, Green, false) }
func (c *Colorizer) Yellow(msg string) string { return c.Paint(msg, Yellow, false) }
func (c *Colorizer) Cyan(msg string) string   { return c.Paint(msg, Cyan, false) }
