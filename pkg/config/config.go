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
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/kitcat/pkg/ruleset"
)

// 🔌 Parser is the interface for rule file parsers
type Parser interface {
	// 📝 Parse parses the rule file from bytes
	Parse(ctx context.Context, data []byte) (*RuleFile, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// ErrMissingKey is returned when a rule file lacks a required key or section
var ErrMissingKey = errors.New("missing required key")

// 📚 RuleFile is the on-disk shape of a ruleset, shared by every format
type RuleFile struct {
	Input     string            `json:"input" yaml:"input" toml:"input"`
	Output    string            `json:"output" yaml:"output" toml:"output"`
	Index     string            `json:"index" yaml:"index" toml:"index"`
	Recheck   string            `json:"recheck,omitempty" yaml:"recheck,omitempty" toml:"recheck,omitempty"`
	Groups    map[string]string `json:"groups" yaml:"groups" toml:"groups"`
	Rearrange map[string]string `json:"rearrange,omitempty" yaml:"rearrange,omitempty" toml:"rearrange,omitempty"`
}

// FromDefinition converts a rule definition into its file shape
func FromDefinition(def ruleset.Definition) *RuleFile {
	return &RuleFile{
		Input:     def.Input,
		Output:    def.Output,
		Index:     def.Index,
		Recheck:   def.Recheck,
		Groups:    def.Groups,
		Rearrange: def.Rearranges,
	}
}

// Definition converts the file into a rule definition tagged with source
func (f *RuleFile) Definition(source string) ruleset.Definition {
	return ruleset.Definition{
		Input:      f.Input,
		Output:     f.Output,
		Index:      f.Index,
		Recheck:    f.Recheck,
		Groups:     f.Groups,
		Rearranges: f.Rearrange,
		Source:     source,
	}
}

// 🔍 Validate checks that every required key is present. Optional keys that
// are absent are logged as warnings.
func (f *RuleFile) Validate(ctx context.Context, source string) error {
	var missing []string
	if f.Input == "" {
		missing = append(missing, "input")
	}
	if f.Output == "" {
		missing = append(missing, "output")
	}
	if f.Index == "" {
		missing = append(missing, "index")
	}
	if len(f.Groups) == 0 {
		missing = append(missing, "groups")
	}
	if len(missing) > 0 {
		return errors.Errorf("%s in %s: %w", strings.Join(missing, ", "), source, ErrMissingKey)
	}

	logger := zerolog.Ctx(ctx)
	if len(f.Rearrange) == 0 {
		logger.Warn().Str("file", source).Msg("missing rearrange section, no fields will be rewritten")
	}
	if f.Recheck == "" {
		logger.Warn().Str("file", source).Msg("missing recheck, every value passes the recheck")
	}

	return nil
}

// 🎯 Load reads the rule file at path and compiles it
func Load(ctx context.Context, path string) (*ruleset.Ruleset, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading rule file")

	// Read rule file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading rule file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse rule file
	file, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing rule file %s: %w", path, err)
	}

	// Validate
	if err := file.Validate(ctx, path); err != nil {
		return nil, errors.Errorf("validating rule file: %w", err)
	}

	rules, err := ruleset.Compile(file.Definition(path))
	if err != nil {
		return nil, err
	}

	logger.Debug().Object("ruleset", rules).Msg("loaded rule file")
	return rules, nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
