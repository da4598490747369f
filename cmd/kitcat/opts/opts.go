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

package opts

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/kitcat/pkg/config"
	"github.com/walteh/kitcat/pkg/log"
	"github.com/walteh/kitcat/pkg/operation"
	"github.com/walteh/kitcat/pkg/ruleset"
	"github.com/walteh/kitcat/pkg/status"
)

// 🎛️ RootOpts holds the shared flags and collaborators of every command
type RootOpts struct {
	Path      string   // Source root
	RulesFile string   // Optional rule file
	Name      string   // Target root pattern, "*" is the source root
	Kits      []string // Allow list of kit names
	Trunc     int      // Minimum samples per kit
	Dry       bool
	Soft      bool
	Copy      bool
	Verbose   bool
	Include   []string
	Exclude   []string

	Console *log.Logger // User facing lines
	Out     io.Writer   // Command output (tables, rule files)
}

// Rules resolves the ruleset for this invocation
func (o *RootOpts) Rules(ctx context.Context) (*ruleset.Ruleset, error) {
	rules, err := config.Resolve(ctx, o.RulesFile)
	if err != nil {
		return nil, errors.Errorf("loading rules: %w", err)
	}
	return rules, nil
}

// SourceRoot returns the source root as an absolute path with symlinks
// resolved. It fails when the root does not exist.
func (o *RootOpts) SourceRoot() (string, error) {
	path := o.Path
	if path == "" {
		path = "."
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Errorf("resolving path %s: %w", path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Errorf("resolving path %s: %w", path, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", errors.Errorf("reading path %s: %w", path, err)
	}
	if !info.IsDir() {
		return "", errors.Errorf("path %s is not a directory", path)
	}

	return resolved, nil
}

// TargetName returns the target root pattern without path separators
func (o *RootOpts) TargetName() string {
	return strings.NewReplacer("/", "", `\`, "").Replace(o.Name)
}

// Runner builds the runner for this invocation; tracker may be nil
func (o *RootOpts) Runner(rules *ruleset.Ruleset, tracker *status.Tracker) (*operation.Runner, error) {
	root, err := o.SourceRoot()
	if err != nil {
		return nil, err
	}

	return operation.NewRunner(operation.RunnerOptions{
		Rules:      rules,
		SourceRoot: root,
		TargetName: o.TargetName(),
		Include:    o.Include,
		Exclude:    o.Exclude,
		MinSamples: o.Trunc,
		Kits:       o.Kits,
		Materialize: operation.Options{
			Mode:    operation.ModeFromFlags(o.Copy, o.Soft),
			DryRun:  o.Dry,
			Tracker: tracker,
		},
	})
}
