// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ruleset

import (
	"github.com/walteh/kitcat/pkg/text"
)

// SourceDefaults is the Source of the built-in ruleset.
const SourceDefaults = "defaults"

// 🏷️ Built-in group names
const (
	GroupGroup     = "group"
	GroupSample    = "sample"
	GroupKit       = "kit"
	GroupVariation = "variation"
	GroupExtension = "extension"
)

// 🧩 Built-in group fragments
const (
	DefaultGroupFragment     = `([a-zA-Z0-9 ]*)`
	DefaultSampleFragment    = `([a-zA-Z0-9]*)`
	DefaultKitFragment       = `([a-zA-Z0-9]*)`
	DefaultVariationFragment = `([a-zA-Z0-9 ]*)`
	DefaultExtensionFragment = `([wav|WAV|mp3|MP3]*)`
	DefaultRecheck           = `^([0-9a-zA-Z]{1,2})$`
	DefaultIndex             = GroupKit
)

// 📦 DefaultDefinition returns the built-in rule definition
func DefaultDefinition() Definition {
	ph := text.Placeholder
	return Definition{
		Input:   ph(GroupGroup) + "/" + ph(GroupSample) + " ?" + ph(GroupKit) + ph(GroupVariation) + `?\.` + ph(GroupExtension),
		Output:  ph(GroupKit) + "/" + ph(GroupSample) + " " + ph(GroupVariation) + "." + ph(GroupExtension),
		Index:   DefaultIndex,
		Recheck: DefaultRecheck,
		Groups: map[string]string{
			GroupGroup:     DefaultGroupFragment,
			GroupSample:    DefaultSampleFragment,
			GroupKit:       DefaultKitFragment,
			GroupVariation: DefaultVariationFragment,
			GroupExtension: DefaultExtensionFragment,
		},
		Rearranges: map[string]string{
			GroupSample: ph(GroupKit),
		},
		Source: SourceDefaults,
	}
}

// 📦 Default compiles the built-in ruleset
func Default() *Ruleset {
	rs, err := Compile(DefaultDefinition())
	if err != nil {
		panic("compiling built-in ruleset: " + err.Error())
	}
	return rs
}
