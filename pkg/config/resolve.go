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

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"github.com/walteh/kitcat/pkg/ruleset"
)

// searchNames are the rule files looked up under the XDG config directories,
// in order of preference.
var searchNames = []string{
	"kitcat/rules.ini",
	"kitcat/rules.hcl",
	"kitcat/rules.yaml",
	"kitcat/rules.yml",
	"kitcat/rules.json",
	"kitcat/rules.toml",
}

// 🔍 Resolve picks the ruleset for a run. An explicit path always wins; then
// the first rule file found in the XDG config directories; then the built-in
// defaults.
func Resolve(ctx context.Context, path string) (*ruleset.Ruleset, error) {
	logger := zerolog.Ctx(ctx)

	if path != "" {
		return Load(ctx, path)
	}

	for _, name := range searchNames {
		found, err := xdg.SearchConfigFile(name)
		if err != nil {
			continue
		}
		logger.Info().Str("path", found).Msg("using rule file from config directory")
		return Load(ctx, found)
	}

	logger.Debug().Msg("no rule file given, using built-in rules")
	return ruleset.Default(), nil
}
