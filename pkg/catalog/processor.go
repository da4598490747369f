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

package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/kitcat/pkg/ruleset"
	"github.com/walteh/kitcat/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// DefaultTargetName is the target root pattern used when none is given.
const DefaultTargetName = "*_remapped"

// ErrInconsistentMatch is returned when a matched path lacks a group the
// ruleset relies on. It aborts processing.
var ErrInconsistentMatch = errors.New("match is inconsistent with ruleset")

// 🔧 Options configures a Processor
type Options struct {
	SourceRoot string // Directory the listed paths are relative to
	TargetName string // Target root pattern, * is replaced by SourceRoot
}

// 🏭 Processor runs listed paths through a ruleset
type Processor struct {
	rules      *ruleset.Ruleset
	sourceRoot string
	targetRoot string
}

// 🏗️ NewProcessor creates a processor for rules
func NewProcessor(rules *ruleset.Ruleset, opts Options) (*Processor, error) {
	if rules == nil {
		return nil, errors.Errorf("ruleset is required")
	}

	root := trimTrailingSeparator(opts.SourceRoot)

	name := opts.TargetName
	if name == "" {
		name = DefaultTargetName
	}

	return &Processor{
		rules:      rules,
		sourceRoot: root,
		targetRoot: strings.ReplaceAll(name, "*", root),
	}, nil
}

// TargetRoot returns the directory rendered targets are placed under.
func (p *Processor) TargetRoot() string {
	return p.targetRoot
}

// 🔍 Extract matches path against the input expression. On a match it returns
// the trimmed value of every captured group and the full match text.
func (p *Processor) Extract(path string) (fields map[string]string, match string, ok bool) {
	captures := p.rules.InputRegexp().FindStringSubmatch(path)
	if captures == nil {
		return nil, "", false
	}

	fields = make(map[string]string, len(p.rules.InputOrder))
	for group, idx := range p.rules.InputOrder {
		fields[group] = strings.TrimSpace(captures[idx])
	}

	return fields, captures[0], true
}

// 🔄 Rearrange rewrites each rearrange group whose current value matches the
// recheck expression. Templates are rendered against the fields as they were
// before this pass, so rewrites never see each other's output.
func (p *Processor) Rearrange(ctx context.Context, fields map[string]string) (map[string]string, error) {
	logger := zerolog.Ctx(ctx)

	snapshot := make(map[string]string, len(fields))
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		snapshot[k] = v
		out[k] = v
	}

	groups := make([]string, 0, len(p.rules.Rearranges))
	for group := range p.rules.Rearranges {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	recheck := p.rules.RecheckRegexp()
	for _, group := range groups {
		current, ok := snapshot[group]
		if !ok {
			return nil, errors.Errorf("rearrange group %q missing from match (ruleset %s): %w", group, p.rules.Source, ErrInconsistentMatch)
		}

		if !recheck.MatchString(current) {
			continue
		}

		tmpl := p.rules.Rearranges[group]
		rendered, res := render(logger, tmpl, snapshot)
		out[group] = rendered

		logger.Debug().
			Str("group", group).
			Str("template", tmpl).
			Int("replacements", res.ReplacementCount).
			Str("from", current).
			Str("to", out[group]).
			Msg("recheck matched, rearranged field")
	}

	return out, nil
}

// 🎵 Sample builds the sample for path. It returns false when path does not
// match the input expression.
func (p *Processor) Sample(ctx context.Context, path string) (*Sample, bool, error) {
	fields, match, ok := p.Extract(path)
	if !ok {
		return nil, false, nil
	}

	fields, err := p.Rearrange(ctx, fields)
	if err != nil {
		return nil, false, errors.Errorf("rearranging %q: %w", path, err)
	}

	target, _ := render(zerolog.Ctx(ctx), p.targetRoot+"/"+p.rules.Output, fields)

	return &Sample{
		SourcePath: p.sourceRoot + "/" + match,
		TargetPath: target,
		Fields:     fields,
	}, true, nil
}

// render substitutes fields into tmpl and normalizes the result. Placeholders
// left over, e.g. braces inside a matched file name, are logged.
func render(logger *zerolog.Logger, tmpl string, fields map[string]string) (string, *text.Result) {
	rendered, res := text.Render(tmpl, fields)
	if len(res.Unresolved) > 0 {
		logger.Warn().
			Str("template", tmpl).
			Strs("unresolved", res.Unresolved).
			Msg("rendered value kept unresolved placeholders")
	}
	return rendered, res
}

// 📊 Result is the outcome of processing a batch of paths
type Result struct {
	Kits    Kits
	Matched int      // Paths that produced a sample
	Skipped []string // Paths that did not match, in input order
}

// 🏃 Process runs every path through the ruleset and groups the samples into
// kits. Paths that do not match are skipped; a match that is inconsistent
// with the ruleset aborts the whole batch.
func (p *Processor) Process(ctx context.Context, paths []string) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Object("ruleset", p.rules).
		Int("paths", len(paths)).
		Msg("processing paths")

	result := &Result{Kits: Kits{}}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("processing cancelled: %w", err)
		}

		sample, ok, err := p.Sample(ctx, path)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Warn().Str("path", path).Str("input", p.rules.Input).Msg("path does not match input expression")
			result.Skipped = append(result.Skipped, path)
			continue
		}

		name, ok := sample.Fields[p.rules.Index]
		if !ok {
			return nil, errors.Errorf("index group %q missing from match of %q (ruleset %s): %w", p.rules.Index, path, p.rules.Source, ErrInconsistentMatch)
		}

		if _, created := result.Kits.Add(name, *sample); created {
			logger.Debug().Str("kit", name).Msg("created kit")
		}
		result.Matched++

		logger.Debug().
			Str("source", sample.SourcePath).
			Str("target", sample.TargetPath).
			Str("kit", name).
			Msg("created sample")
	}

	logger.Info().
		Int("kits", len(result.Kits)).
		Int("matched", result.Matched).
		Int("skipped", len(result.Skipped)).
		Msg("processing complete")

	return result, nil
}

func trimTrailingSeparator(path string) string {
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, `\`) {
		return path[:len(path)-1]
	}
	return path
}
