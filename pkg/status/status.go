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

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/kitcat/pkg/log"
)

// 📊 SampleStatus represents what happened to a sample
type SampleStatus int

const (
	StatusUnknown   SampleStatus = iota
	StatusLinked                 // Hard link created at the target
	StatusSymlinked              // Soft link created at the target
	StatusCopied                 // Content copied to the target
	StatusPlanned                // Dry run, nothing written
	StatusFailed                 // Writing the target failed
)

// String returns a string representation of SampleStatus
func (s SampleStatus) String() string {
	switch s {
	case StatusLinked:
		return "linked"
	case StatusSymlinked:
		return "symlinked"
	case StatusCopied:
		return "copied"
	case StatusPlanned:
		return "planned"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsWritten reports whether the target now exists
func (s SampleStatus) IsWritten() bool {
	return s == StatusLinked || s == StatusSymlinked || s == StatusCopied
}

// 📄 Outcome describes one materialized sample
type Outcome struct {
	Kit    string       // Kit the sample belongs to
	Source string       // Source path
	Target string       // Target path
	Mode   string       // hardlink / symlink / copy
	Status SampleStatus // What happened
	Error  error        // Cause when Status is StatusFailed
}

// 📈 Summary holds the counters reported at the end of a run
type Summary struct {
	Written int
	Failed  int
	Planned int
}

// Total returns the number of samples the summary covers
func (s Summary) Total() int {
	return s.Written + s.Failed + s.Planned
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler
func (s Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Int("written", s.Written).
		Int("failed", s.Failed).
		Int("planned", s.Planned).
		Int("total", s.Total())
}

// 📈 Reporter tracks sample outcomes and reports progress
type Reporter interface {
	Record(ctx context.Context, outcome Outcome)
	StartOperation(ctx context.Context, total int)
	UpdateProgress(ctx context.Context, processed int)
	FinishOperation(ctx context.Context)
}

var _ Reporter = (*Tracker)(nil)

// 🔧 Tracker records outcomes, mirrors them to zerolog and optionally the console
type Tracker struct {
	formatter FileFormatter
	console   *log.Logger

	mu       sync.Mutex
	outcomes []Outcome
	targets  map[string]int // First outcome recorded per target
	summary  Summary

	// Progress tracking
	total     int
	processed int
}

// 🏭 New creates a new tracker; console may be nil
func New(console *log.Logger) *Tracker {
	return &Tracker{
		formatter: NewDefaultFileFormatter(),
		console:   console,
		targets:   map[string]int{},
	}
}

// WithFormatter replaces the formatter used for zerolog messages
func (t *Tracker) WithFormatter(f FileFormatter) *Tracker {
	t.formatter = f
	return t
}

// Record stores an outcome and updates the summary counters
func (t *Tracker) Record(ctx context.Context, outcome Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.targets[outcome.Target]; !ok {
		t.targets[outcome.Target] = len(t.outcomes)
	}
	t.outcomes = append(t.outcomes, outcome)
	switch {
	case outcome.Status.IsWritten():
		t.summary.Written++
	case outcome.Status == StatusPlanned:
		t.summary.Planned++
	default:
		t.summary.Failed++
	}

	msg := t.formatter.FormatSampleOperation(outcome.Target, outcome.Status)
	event := zerolog.Ctx(ctx).Debug()
	if outcome.Status == StatusFailed {
		msg = t.formatter.FormatError(outcome.Error)
		event = zerolog.Ctx(ctx).Warn().Err(outcome.Error)
	}
	event.
		Str("kit", outcome.Kit).
		Str("source", outcome.Source).
		Str("target", outcome.Target).
		Str("status", outcome.Status.String()).
		Msg(msg)

	if t.console != nil {
		t.console.LogSampleOperation(ctx, log.SampleOperation{
			Source:    outcome.Source,
			Target:    outcome.Target,
			Mode:      outcome.Mode,
			Status:    statusLabel(outcome.Status),
			IsPlanned: outcome.Status == StatusPlanned,
			IsFailed:  outcome.Status == StatusFailed,
			Error:     outcome.Error,
		})
	}
}

// StartKit announces a kit on the console
func (t *Tracker) StartKit(ctx context.Context, name string, samples int, dryRun bool) {
	if t.console != nil {
		t.console.StartKitOperation(ctx, log.KitOperation{Name: name, Samples: samples, DryRun: dryRun})
	}
}

// EndKit closes the kit opened by StartKit
func (t *Tracker) EndKit(ctx context.Context) {
	if t.console != nil {
		t.console.EndKitOperation(ctx)
	}
}

// Outcomes returns every recorded outcome in record order
func (t *Tracker) Outcomes() []Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Outcome, len(t.outcomes))
	copy(out, t.outcomes)
	return out
}

// Lookup returns the first outcome recorded for a target path
func (t *Tracker) Lookup(target string) (Outcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx, ok := t.targets[target]
	if !ok {
		return Outcome{}, errors.Errorf("sample not tracked: %s", target)
	}
	return t.outcomes[idx], nil
}

// Failures returns the failed outcomes in record order
func (t *Tracker) Failures() []Outcome {
	var out []Outcome
	for _, o := range t.Outcomes() {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}

// Summary returns the counters accumulated so far
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}

func (t *Tracker) StartOperation(ctx context.Context, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = total
	t.processed = 0
	msg := t.formatter.FormatProgress(0, total)
	zerolog.Ctx(ctx).Debug().Int("total", total).Msg(msg)
}

func (t *Tracker) UpdateProgress(ctx context.Context, processed int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed = processed
	msg := t.formatter.FormatProgress(processed, t.total)
	zerolog.Ctx(ctx).Debug().
		Int("processed", processed).
		Int("total", t.total).
		Msg(msg)
}

func (t *Tracker) FinishOperation(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed = t.total
	msg := t.formatter.FormatProgress(t.total, t.total)
	zerolog.Ctx(ctx).Info().
		Object("summary", t.summary).
		Msg(msg)
}

func statusLabel(s SampleStatus) string {
	switch s {
	case StatusLinked:
		return "LINKED"
	case StatusSymlinked:
		return "SYMLINKED"
	case StatusCopied:
		return "COPIED"
	case StatusPlanned:
		return "PLANNED"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
