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

package config

import (
	"context"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/ini.v1"
)

const (
	sectionGroups    = "groups"
	sectionRearrange = "rearrange"
)

// iniOptions keeps regular expressions intact: no inline comments and only
// "=" separates a key from its value.
var iniOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
	KeyValueDelimiters:  "=",
}

func init() {
	Register(&INIParser{})
}

// 🔧 INIParser implements the Parser interface for INI rule files
type INIParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *INIParser) CanParse(filename string) bool {
	return hasExt(filename, ".ini", ".conf", ".kitcat")
}

// 📝 Parse parses the rule file from INI. General keys live before the first
// section; groups and rearranges have their own sections.
func (p *INIParser) Parse(ctx context.Context, data []byte) (*RuleFile, error) {
	f, err := ini.LoadSources(iniOptions, data)
	if err != nil {
		return nil, errors.Errorf("parsing INI: %w", err)
	}

	general := f.Section("")
	file := &RuleFile{
		Input:   general.Key("input").String(),
		Output:  general.Key("output").String(),
		Index:   general.Key("index").String(),
		Recheck: general.Key("recheck").String(),
	}

	if s, err := f.GetSection(sectionGroups); err == nil {
		file.Groups = s.KeysHash()
	}
	if s, err := f.GetSection(sectionRearrange); err == nil {
		file.Rearrange = s.KeysHash()
	}

	return file, nil
}
