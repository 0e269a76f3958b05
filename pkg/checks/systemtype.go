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
	"slices"
	"strings"
)

// Known system type tags
const (
	TagVtrq = "vtrq"
	TagVda  = "vda"
)

// SupportedSystemTypes are the values accepted by ParseSystemType
var SupportedSystemTypes = []string{"vtrq", "vtrq-vda"}

var knownTags = []string{TagVtrq, TagVda}

// SystemType is the set of tags describing the role of the host,
// e.g. {"vtrq"} or {"vtrq", "vda"}. The empty set is valid.
type SystemType []string

// ParseSystemType parses the command line value of the system type.
// "vtrq-vda" yields the tags vtrq and vda.
func ParseSystemType(s string) (SystemType, error) {
	if s == "" {
		return SystemType{}, nil
	}
	if !slices.Contains(SupportedSystemTypes, s) {
		return nil, ErrInvalidSystemType{Value: s, Supported: SupportedSystemTypes}
	}
	return NewSystemType(strings.Split(s, "-")...), nil
}

// NewSystemType returns the sorted, de-duplicated set of tags.
func NewSystemType(tags ...string) SystemType {
	st := SystemType{}
	for _, t := range tags {
		if t != "" && !slices.Contains(st, t) {
			st = append(st, t)
		}
	}
	slices.Sort(st)
	return st
}

// Has reports whether the system type carries tag.
func (st SystemType) Has(tag string) bool {
	return slices.Contains(st, tag)
}

// Validate returns an error if a tag is unknown.
func (st SystemType) Validate() error {
	for _, t := range st {
		if !slices.Contains(knownTags, t) {
			return ErrInvalidSystemType{Value: st.String(), Supported: SupportedSystemTypes}
		}
	}
	return nil
}

func (st SystemType) String() string {
	return strings.Join(st, ",")
}
