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
	"encoding/json"
	"io"
	"sort"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/walteh/kitcat/pkg/ruleset"
)

// Formats lists every format Encode understands
var Formats = []string{"ini", "hcl", "yaml", "json", "toml"}

// 📤 Encode writes def to w in the given format. The output parses back into
// the same definition with the matching parser.
func Encode(def ruleset.Definition, format string, w io.Writer) error {
	file := FromDefinition(def)

	switch format {
	case "ini":
		return encodeINI(file, w)
	case "hcl":
		return encodeHCL(file, w)
	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(file); err != nil {
			return errors.Errorf("encoding YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return errors.Errorf("encoding YAML: %w", err)
		}
		return nil
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(file); err != nil {
			return errors.Errorf("encoding JSON: %w", err)
		}
		return nil
	case "toml":
		if err := toml.NewEncoder(w).Encode(file); err != nil {
			return errors.Errorf("encoding TOML: %w", err)
		}
		return nil
	default:
		return errors.Errorf("unsupported format %q", format)
	}
}

func encodeINI(file *RuleFile, w io.Writer) error {
	f := ini.Empty(iniOptions)

	general := f.Section("")
	for _, kv := range [][2]string{
		{"input", file.Input},
		{"output", file.Output},
		{"index", file.Index},
		{"recheck", file.Recheck},
	} {
		if kv[1] == "" {
			continue
		}
		if _, err := general.NewKey(kv[0], kv[1]); err != nil {
			return errors.Errorf("writing key %s: %w", kv[0], err)
		}
	}

	for _, section := range []struct {
		name   string
		values map[string]string
	}{
		{sectionGroups, file.Groups},
		{sectionRearrange, file.Rearrange},
	} {
		if len(section.values) == 0 {
			continue
		}
		s, err := f.NewSection(section.name)
		if err != nil {
			return errors.Errorf("writing section %s: %w", section.name, err)
		}
		for _, name := range sortedNames(section.values) {
			if _, err := s.NewKey(name, section.values[name]); err != nil {
				return errors.Errorf("writing key %s.%s: %w", section.name, name, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Errorf("encoding INI: %w", err)
	}
	return nil
}

func encodeHCL(file *RuleFile, w io.Writer) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for _, kv := range [][2]string{
		{"input", file.Input},
		{"output", file.Output},
		{"index", file.Index},
		{"recheck", file.Recheck},
	} {
		if kv[1] == "" {
			continue
		}
		body.SetAttributeValue(kv[0], cty.StringVal(kv[1]))
	}

	if len(file.Groups) > 0 {
		body.SetAttributeValue("groups", stringMapValue(file.Groups))
	}
	if len(file.Rearrange) > 0 {
		body.SetAttributeValue("rearrange", stringMapValue(file.Rearrange))
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Errorf("encoding HCL: %w", err)
	}
	return nil
}

func stringMapValue(m map[string]string) cty.Value {
	values := make(map[string]cty.Value, len(m))
	for k, v := range m {
		values[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(values)
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
