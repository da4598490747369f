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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/kitcat/pkg/ruleset"
)

const iniRules = `
input = {group}/{sample} ?{kit}{variation}?\.{extension}
output = {kit}/{sample} {variation}.{extension}
index = kit
recheck = ^([0-9a-zA-Z]{1,2})$

[groups]
group = ([a-zA-Z0-9 ]*)
sample = ([a-zA-Z0-9]*)
kit = ([a-zA-Z0-9]*)
variation = ([a-zA-Z0-9 ]*)
extension = ([wav|WAV|mp3|MP3]*)

[rearrange]
sample = {kit} Full
`

const hclRules = `
input   = "{group}/{sample} ?{kit}{variation}?\\.{extension}"
output  = "{kit}/{sample} {variation}.{extension}"
index   = "kit"
recheck = "^([0-9a-zA-Z]{1,2})$"

groups = {
  group     = "([a-zA-Z0-9 ]*)"
  sample    = "([a-zA-Z0-9]*)"
  kit       = "([a-zA-Z0-9]*)"
  variation = "([a-zA-Z0-9 ]*)"
  extension = "([wav|WAV|mp3|MP3]*)"
}

rearrange = {
  sample = "{kit} Full"
}
`

const yamlRules = `
input: '{group}/{sample} ?{kit}{variation}?\.{extension}'
output: '{kit}/{sample} {variation}.{extension}'
index: kit
recheck: '^([0-9a-zA-Z]{1,2})$'
groups:
  group: '([a-zA-Z0-9 ]*)'
  sample: '([a-zA-Z0-9]*)'
  kit: '([a-zA-Z0-9]*)'
  variation: '([a-zA-Z0-9 ]*)'
  extension: '([wav|WAV|mp3|MP3]*)'
rearrange:
  sample: '{kit} Full'
`

const jsonRules = `{
  "input": "{group}/{sample} ?{kit}{variation}?\\.{extension}",
  "output": "{kit}/{sample} {variation}.{extension}",
  "index": "kit",
  "recheck": "^([0-9a-zA-Z]{1,2})$",
  "groups": {
    "group": "([a-zA-Z0-9 ]*)",
    "sample": "([a-zA-Z0-9]*)",
    "kit": "([a-zA-Z0-9]*)",
    "variation": "([a-zA-Z0-9 ]*)",
    "extension": "([wav|WAV|mp3|MP3]*)"
  },
  "rearrange": {
    "sample": "{kit} Full"
  }
}`

const tomlRules = `
input = '{group}/{sample} ?{kit}{variation}?\.{extension}'
output = '{kit}/{sample} {variation}.{extension}'
index = 'kit'
recheck = '^([0-9a-zA-Z]{1,2})$'

[groups]
group = '([a-zA-Z0-9 ]*)'
sample = '([a-zA-Z0-9]*)'
kit = '([a-zA-Z0-9]*)'
variation = '([a-zA-Z0-9 ]*)'
extension = '([wav|WAV|mp3|MP3]*)'

[rearrange]
sample = '{kit} Full'
`

func writeRules(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "ini", file: "rules.ini", content: iniRules},
		{name: "conf_extension", file: "drums.conf", content: iniRules},
		{name: "kitcat_extension", file: "drums.kitcat", content: iniRules},
		{name: "hcl", file: "rules.hcl", content: hclRules},
		{name: "yaml", file: "rules.yaml", content: yamlRules},
		{name: "yml", file: "rules.yml", content: yamlRules},
		{name: "json", file: "rules.json", content: jsonRules},
		{name: "toml", file: "rules.toml", content: tomlRules},
		{name: "upper_case_extension", file: "RULES.INI", content: iniRules},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			path := writeRules(t, tt.file, tt.content)

			rules, err := Load(ctx, path)
			require.NoError(t, err)

			assert.Equal(t, path, rules.Source, "source should be the file path")
			assert.Equal(t, "kit", rules.Index)
			assert.Equal(t, `{kit}/{sample} {variation}.{extension}`, rules.Output)
			assert.Equal(t, `^([0-9a-zA-Z]{1,2})$`, rules.Recheck)
			assert.Equal(t, map[string]string{"sample": "{kit} Full"}, rules.Rearranges)
			assert.Equal(t, map[string]int{
				"group":     1,
				"sample":    2,
				"kit":       3,
				"variation": 4,
				"extension": 5,
			}, rules.InputOrder)
			assert.Equal(t, ruleset.Default().Input, rules.Input, "expanded input should match the built-in rules")
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		errContains []string
		errIs       error
	}{
		{
			name:        "unknown_extension",
			file:        "rules.txt",
			content:     iniRules,
			errContains: []string{"no parser found for file"},
		},
		{
			name: "missing_required_keys",
			file: "rules.ini",
			content: `
recheck = ^x$

[groups]
kit = ([a-z]*)
`,
			errContains: []string{"input, output, index in", "rules.ini", "missing required key"},
			errIs:       ErrMissingKey,
		},
		{
			name: "missing_groups_section",
			file: "rules.ini",
			content: `
input = {kit}
output = {kit}
index = kit
`,
			errContains: []string{"groups in"},
			errIs:       ErrMissingKey,
		},
		{
			name: "index_not_a_group",
			file: "rules.ini",
			content: `
input = {kit}
output = {kit}
index = bank

[groups]
kit = ([a-z]*)
`,
			errContains: []string{"invalid ruleset", "rules.ini", "bank"},
			errIs:       ruleset.ErrInvalidRuleset,
		},
		{
			name: "output_group_not_captured",
			file: "rules.ini",
			content: `
input = {group}/{sample} ?{kit}{variation}?\.{extension}
output = {kit}/{sample} {variation}.{extension}/{extra}
index = kit

[groups]
group = ([a-zA-Z0-9 ]*)
sample = ([a-zA-Z0-9]*)
kit = ([a-zA-Z0-9]*)
variation = ([a-zA-Z0-9 ]*)
extension = ([wav|WAV|mp3|MP3]*)
extra = ([a-z]*)
`,
			errContains: []string{"rules.ini", "output template references group {extra} which the input template does not capture"},
			errIs:       ruleset.ErrInvalidRuleset,
		},
		{
			name:        "unknown_yaml_field",
			file:        "rules.yaml",
			content:     "input: x\nbogus: y\n",
			errContains: []string{"parsing YAML"},
		},
		{
			name:        "unknown_json_field",
			file:        "rules.json",
			content:     `{"input": "x", "bogus": "y"}`,
			errContains: []string{"parsing JSON"},
		},
		{
			name:        "unknown_toml_field",
			file:        "rules.toml",
			content:     "input = 'x'\nbogus = 'y'\n",
			errContains: []string{"parsing TOML"},
		},
		{
			name:        "invalid_hcl_escape",
			file:        "rules.hcl",
			content:     `input = "{kit}\.wav"`,
			errContains: []string{"parsing HCL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			path := writeRules(t, tt.file, tt.content)

			_, err := Load(ctx, path)
			require.Error(t, err)
			for _, want := range tt.errContains {
				assert.Contains(t, err.Error(), want)
			}
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	ctx := zerolog.Nop().WithContext(context.Background())
	_, err := Load(ctx, filepath.Join(t.TempDir(), "nope.ini"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading rule file")
}

func TestINIParser_OptionalSections(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	file, err := (&INIParser{}).Parse(ctx, []byte(`
input = {kit};{sample}#x
output = {kit}/{sample}
index = kit

[groups]
kit = ([a-z]*)
sample = ([a-z:=]*)
`))
	require.NoError(t, err)

	assert.Equal(t, "{kit};{sample}#x", file.Input, "inline comment markers are part of the value")
	assert.Equal(t, "([a-z:=]*)", file.Groups["sample"], "only the first = separates key and value")
	assert.Empty(t, file.Recheck)
	assert.Empty(t, file.Rearrange)

	require.NoError(t, file.Validate(ctx, "inline.ini"), "missing optional parts only warn")
}

func TestGetParser(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{"rules.ini", &INIParser{}},
		{"rules.conf", &INIParser{}},
		{"my.kitcat", &INIParser{}},
		{"rules.hcl", &HCLParser{}},
		{"rules.yaml", &YAMLParser{}},
		{"rules.yml", &YAMLParser{}},
		{"rules.json", &JSONParser{}},
		{"rules.toml", &TOMLParser{}},
		{"rules.txt", nil},
		{"rules", nil},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.IsType(t, tt.want, got)
		})
	}
}
