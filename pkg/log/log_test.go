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

package log

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_sample_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogSampleOperation(context.Background(), SampleOperation{
					Source: "/src/Drums/kick A1.wav",
					Target: "/out/A1/kick.wav",
					Mode:   "hardlink",
					Status: "LINKED",
				})
			},
			wantLogs: []string{
				"    ✓ kick.wav                            hardlink   LINKED         ",
			},
		},
		{
			name: "log_kit_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.StartKitOperation(context.Background(), KitOperation{
					Name:    "A1",
					Samples: 3,
				})
			},
			wantLogs: []string{
				"◆ A1 • 3 samples",
			},
		},
		{
			name: "log_dry_run_kit_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.StartKitOperation(context.Background(), KitOperation{
					Name:    "B2",
					Samples: 1,
					DryRun:  true,
				})
			},
			wantLogs: []string{
				"◆ B2 • 1 samples (dry run)",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("%d kits", 2)
				logger.Warningf("%s skipped", "loose.wav")
				logger.Errorf("failed: %v", errors.New("boom"))
				logger.Successf("wrote %d samples", 4)
			},
			wantLogs: []string{
				"ℹ️  2 kits",
				"⚠️  loose.wav skipped",
				"❌ failed: boom",
				"✅ wrote 4 samples",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("remapping samples")
			},
			wantLogs: []string{
				"",
				"kitcat • remapping samples",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, zerolog.New(zerolog.NewTestWriter(t)))

			tt.op(t, logger)

			got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			assert.Equal(t, tt.wantLogs, got, "log output should match")
		})
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.Nop())
	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	require.NotNil(t, got, "logger should be in context")
	assert.Same(t, logger, got, "should be the same logger")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "should panic when logger is missing")
}

func TestSampleOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   SampleOperation
		want string
	}{
		{
			name: "written",
			op: SampleOperation{
				Target: "/out/A1/kick.wav",
				Mode:   "copy",
				Status: "COPIED",
			},
			want: "    ✓ kick.wav                            copy       COPIED         ",
		},
		{
			name: "planned",
			op: SampleOperation{
				Target:    "/out/A1/snare.wav",
				Mode:      "symlink",
				Status:    "PLANNED",
				IsPlanned: true,
			},
			want: "    • snare.wav                           symlink    PLANNED        ",
		},
		{
			name: "failed",
			op: SampleOperation{
				Target:   "/out/A1/hat.wav",
				Mode:     "hardlink",
				Status:   "FAILED",
				IsFailed: true,
				Error:    errors.New("permission denied"),
			},
			want: "    ✗ hat.wav                             hardlink   FAILED         ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(&bytes.Buffer{}, zerolog.Nop())
			assert.Equal(t, tt.want, logger.formatSampleOperation(tt.op))
		})
	}
}

func TestEndKitOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.New(zerolog.NewTestWriter(t)))
	ctx := context.Background()

	// no kit started is a no-op
	logger.EndKitOperation(ctx)

	logger.StartKitOperation(ctx, KitOperation{Name: "A1", Samples: 1})
	logger.LogSampleOperation(ctx, SampleOperation{Target: "/out/A1/kick.wav", Mode: "copy", Status: "COPIED"})
	require.NotNil(t, logger.current)
	require.Len(t, logger.samples, 1)

	logger.EndKitOperation(ctx)
	assert.Nil(t, logger.current)
	assert.Empty(t, logger.samples)
}
