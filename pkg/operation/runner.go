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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/kitcat/pkg/catalog"
	"github.com/walteh/kitcat/pkg/lister"
	"github.com/walteh/kitcat/pkg/ruleset"
	"github.com/walteh/kitcat/pkg/status"
)

// 🔧 RunnerOptions configures a full list, process, filter, write pass
type RunnerOptions struct {
	Rules       *ruleset.Ruleset
	SourceRoot  string
	TargetName  string   // "*" is replaced with the source root
	Include     []string // glob patterns relative to the source root
	Exclude     []string
	MinSamples  int      // kits with fewer samples are dropped
	Kits        []string // allow list of kit names
	Materialize Options
}

// 📋 Plan is everything known about a run before anything is written
type Plan struct {
	Kits       catalog.Kits
	TargetRoot string
	Listed     int
	Matched    int
	Skipped    []string
	Dropped    []string
}

// 📊 Report is the outcome of a complete run
type Report struct {
	*Plan
	Summary status.Summary
}

// 🏃 Runner drives a run from the source root to the written kits
type Runner struct {
	opts      RunnerOptions
	processor *catalog.Processor
	writer    *Materializer
}

var _ Operation = (*Runner)(nil)

// 🏗️ NewRunner creates a new runner
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.SourceRoot == "" {
		return nil, errors.Errorf("source root is required")
	}
	if opts.MinSamples < 0 {
		return nil, errors.Errorf("minimum samples must not be negative, got %d", opts.MinSamples)
	}

	processor, err := catalog.NewProcessor(opts.Rules, catalog.Options{
		SourceRoot: opts.SourceRoot,
		TargetName: opts.TargetName,
	})
	if err != nil {
		return nil, errors.Errorf("creating processor: %w", err)
	}

	return &Runner{
		opts:      opts,
		processor: processor,
		writer:    NewMaterializer(opts.Materialize),
	}, nil
}

// Plan lists the source root, builds the kits and applies the kit filters
func (r *Runner) Plan(ctx context.Context) (*Plan, error) {
	paths, err := lister.List(ctx, r.opts.SourceRoot, lister.Options{
		Include: r.opts.Include,
		Exclude: r.opts.Exclude,
	})
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", r.opts.SourceRoot, err)
	}

	result, err := r.processor.Process(ctx, paths)
	if err != nil {
		return nil, errors.Errorf("processing samples: %w", err)
	}

	plan := &Plan{
		Kits:       result.Kits,
		TargetRoot: r.processor.TargetRoot(),
		Listed:     len(paths),
		Matched:    result.Matched,
		Skipped:    result.Skipped,
	}
	plan.Dropped = append(plan.Dropped, catalog.FilterMinSamples(ctx, plan.Kits, r.opts.MinSamples)...)
	plan.Dropped = append(plan.Dropped, catalog.FilterNames(ctx, plan.Kits, r.opts.Kits)...)

	zerolog.Ctx(ctx).Info().
		Int("listed", plan.Listed).
		Int("matched", plan.Matched).
		Int("kits", len(plan.Kits)).
		Int("dropped", len(plan.Dropped)).
		Msg("plan ready")

	return plan, nil
}

// Run plans and then writes the kits
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	plan, err := r.Plan(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := r.writer.Materialize(ctx, plan.Kits)
	if err != nil {
		return nil, errors.Errorf("writing kits: %w", err)
	}

	zerolog.Ctx(ctx).Info().Object("summary", summary).Msg("run complete")

	return &Report{Plan: plan, Summary: summary}, nil
}

// Execute runs the pass and discards the report
func (r *Runner) Execute(ctx context.Context) error {
	_, err := r.Run(ctx)
	return err
}
