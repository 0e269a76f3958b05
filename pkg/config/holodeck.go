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
	"github.com/caas-team/precheck/internal/helper"
)

// Well known keys of the holodeck configuration
const (
	KeyInstallDir       = "HOLODECK_INSTALL_DIR"
	KeyLogDir           = "HOLODECK_LOG_DIR"
	KeyVtrqBackingStore = "VTRQ_BACKING_STORE"
	KeyVdaBackingStore  = "VDA_BACKING_STORE"
)

// Holodeck is the typed view on the directories of a holodeck configuration
type Holodeck struct {
	InstallDir       string `mapstructure:"HOLODECK_INSTALL_DIR" json:"installDir" yaml:"installDir"`
	LogDir           string `mapstructure:"HOLODECK_LOG_DIR" json:"logDir" yaml:"logDir"`
	VtrqBackingStore string `mapstructure:"VTRQ_BACKING_STORE" json:"vtrqBackingStore" yaml:"vtrqBackingStore"`
	VdaBackingStore  string `mapstructure:"VDA_BACKING_STORE" json:"vdaBackingStore" yaml:"vdaBackingStore"`
}

// NewHolodeck decodes the well known keys of m. The keys of m which are not
// known are returned as well, they are kept in m for checks that need them.
func NewHolodeck(m Map) (Holodeck, []string, error) {
	return helper.DecodeUnused[Holodeck](map[string]string(m))
}

// Missing returns the well known keys that are not set.
func (h Holodeck) Missing() []string {
	var missing []string
	for _, kv := range []struct {
		key, value string
	}{
		{KeyInstallDir, h.InstallDir},
		{KeyLogDir, h.LogDir},
		{KeyVtrqBackingStore, h.VtrqBackingStore},
		{KeyVdaBackingStore, h.VdaBackingStore},
	} {
		if kv.value == "" {
			missing = append(missing, kv.key)
		}
	}
	return missing
}
