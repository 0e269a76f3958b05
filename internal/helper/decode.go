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

package helper

import (
	"github.com/mitchellh/mapstructure"
)

// DecodeUnused decodes a loosely typed map (e.g. parsed key value
// configuration) into T. Strings are converted weakly, durations are parsed
// and comma separated strings become slices. It also returns the input keys
// that did not map to any field of T, or nil when every key was used.
func DecodeUnused[T any](input any) (T, []string, error) {
	var result T
	var md mapstructure.Metadata
	config := &mapstructure.DecoderConfig{
		Metadata:         &md,
		WeaklyTypedInput: true,
		Result:           &result,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return result, nil, err
	}

	if err := decoder.Decode(input); err != nil {
		return result, nil, err
	}

	if len(md.Unused) == 0 {
		return result, nil, nil
	}
	return result, md.Unused, nil
}
