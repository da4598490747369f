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
	"github.com/walteh/kitcat/pkg/status"
)

// ErrDuplicateTarget is reported for a sample whose target path was already
// claimed by an earlier sample in the same run.
var ErrDuplicateTarget = errors.New("duplicate target")

// 🎯 Operation is a single step that can be executed
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔗 Mode selects how a sample reaches its target path
type Mode int

const (
	ModeHardLink Mode = iota // Hard link to the source (default)
	ModeSoftLink             // Symbolic link to the source
	ModeCopy                 // Full copy of the source content
)

// String returns the mode as shown on the console
func (m Mode) String() string {
	switch m {
	case ModeSoftLink:
		return "symlink"
	case ModeCopy:
		return "copy"
	default:
		return "hardlink"
	}
}

// ModeFromFlags resolves the mode from the copy and soft switches. Copy wins
// over soft.
func ModeFromFlags(copyFiles, soft bool) Mode {
	switch {
	case copyFiles:
		return ModeCopy
	case soft:
		return ModeSoftLink
	default:
		return ModeHardLink
	}
}

func (m Mode) written() status.SampleStatus {
	switch m {
	case ModeSoftLink:
		return status.StatusSymlinked
	case ModeCopy:
		return status.StatusCopied
	default:
		return status.StatusLinked
	}
}

// 🔧 Options contains configuration for the materializer
type Options struct {
	// Mode selects hard link, soft link or copy
	Mode Mode
	// DryRun reports every sample as planned and writes nothing
	DryRun bool
	// Tracker records outcomes; a console-less tracker is created when nil
	Tracker *status.Tracker
}

// 📦 Materializer writes kits to disk
type Materializer struct {
	mode    Mode
	dryRun  bool
	tracker *status.Tracker
}

// 🏭 NewMaterializer creates a new materializer with the given options
func NewMaterializer(opts Options) *Materializer {
	tracker := opts.Tracker
	if tracker == nil {
		tracker = status.New(nil)
	}
	return &Materializer{
		mode:    opts.Mode,
		dryRun:  opts.DryRun,
		tracker: tracker,
	}
}

// Tracker returns the tracker outcomes are recorded in
func (m *Materializer) Tracker() *status.Tracker {
	return m.tracker
}

// 🏃 Materialize writes every sample of every kit, in kit name order. A sample
// that cannot be written is counted as failed and does not stop the run; only
// cancellation aborts it.
func (m *Materializer) Materialize(ctx context.Context, kits catalog.Kits) (status.Summary, error) {
	logger := zerolog.Ctx(ctx)
	if m.dryRun {
		logger.Info().Int("kits", len(kits)).Msg("not writing kits")
	} else {
		logger.Info().Int("kits", len(kits)).Str("mode", m.mode.String()).Msg("writing kits")
	}

	m.tracker.StartOperation(ctx, kits.SampleCount())
	processed := 0

	for _, name := range kits.Names() {
		kit := kits[name]
		m.tracker.StartKit(ctx, name, len(kit.Samples), m.dryRun)

		for _, sample := range kit.Samples {
			if err := ctx.Err(); err != nil {
				m.tracker.EndKit(ctx)
				return m.tracker.Summary(), errors.Errorf("materializing cancelled: %w", err)
			}

			m.tracker.Record(ctx, m.materializeSample(ctx, name, sample))
			processed++
			m.tracker.UpdateProgress(ctx, processed)
		}

		m.tracker.EndKit(ctx)
	}

	m.tracker.FinishOperation(ctx)
	return m.tracker.Summary(), nil
}

// 📄 materializeSample writes a single sample and reports what happened
func (m *Materializer) materializeSample(ctx context.Context, kit string, sample catalog.Sample) status.Outcome {
	outcome := status.Outcome{
		Kit:    kit,
		Source: sample.SourcePath,
		Target: sample.TargetPath,
		Mode:   m.mode.String(),
	}

	if prev, err := m.tracker.Lookup(sample.TargetPath); err == nil {
		outcome.Status = status.StatusFailed
		outcome.Error = errors.Errorf("%s already claimed by %s: %w", sample.TargetPath, prev.Source, ErrDuplicateTarget)
		return outcome
	}

	if m.dryRun {
		outcome.Status = status.StatusPlanned
		return outcome
	}

	if err := ensureParent(ctx, sample.TargetPath); err != nil {
		outcome.Status = status.StatusFailed
		outcome.Error = err
		return outcome
	}

	var err error
	switch m.mode {
	case ModeCopy:
		err = copyFile(sample.SourcePath, sample.TargetPath)
	case ModeSoftLink:
		err = softLink(sample.SourcePath, sample.TargetPath)
	default:
		err = hardLink(sample.SourcePath, sample.TargetPath)
	}
	if err != nil {
		outcome.Status = status.StatusFailed
		outcome.Error = err
		return outcome
	}

	outcome.Status = m.mode.written()
	return outcome
}
