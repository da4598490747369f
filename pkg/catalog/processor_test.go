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

package catalog_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/kitcat/pkg/catalog"
	"github.com/walteh/kitcat/pkg/ruleset"
	"gitlab.com/tozd/go/errors"
)

// 🧪 createTestEnv creates a context with a test logger and a processor
func createTestEnv(t *testing.T, def ruleset.Definition) (context.Context, *catalog.Processor) {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	rules, err := ruleset.Compile(def)
	require.NoError(t, err)

	p, err := catalog.NewProcessor(rules, catalog.Options{SourceRoot: "/src/"})
	require.NoError(t, err)

	return ctx, p
}

func withRearranges(rearranges map[string]string) ruleset.Definition {
	def := ruleset.DefaultDefinition()
	def.Rearranges = rearranges
	return def
}

func TestNewProcessor(t *testing.T) {
	_, err := catalog.NewProcessor(nil, catalog.Options{})
	require.Error(t, err)

	tests := []struct {
		name       string
		opts       catalog.Options
		wantTarget string
	}{
		{name: "default_name", opts: catalog.Options{SourceRoot: "/src"}, wantTarget: "/src_remapped"},
		{name: "trailing_slash_trimmed", opts: catalog.Options{SourceRoot: "/src/"}, wantTarget: "/src_remapped"},
		{name: "trailing_backslash_trimmed", opts: catalog.Options{SourceRoot: `C:\src\`}, wantTarget: `C:\src_remapped`},
		{name: "custom_name", opts: catalog.Options{SourceRoot: "/src", TargetName: "sorted-*"}, wantTarget: "sorted-/src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := catalog.NewProcessor(ruleset.Default(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTarget, p.TargetRoot())
		})
	}
}

func TestProcessor_Extract(t *testing.T) {
	_, p := createTestEnv(t, ruleset.DefaultDefinition())

	tests := []struct {
		group, sample, kit, variation, extension string
	}{
		{group: "Drums", sample: "Snare", kit: "Kit01", variation: "soft", extension: "wav"},
		{group: "Drums", sample: "kick", kit: "A1", variation: "", extension: "wav"},
		{group: "My Drums", sample: "Hat", kit: "909", variation: "open long", extension: "WAV"},
		{group: "Bass", sample: "B2", kit: "Sub", variation: "", extension: "mp3"},
	}

	for _, tt := range tests {
		path := fmt.Sprintf("%s/%s %s", tt.group, tt.sample, tt.kit)
		if tt.variation != "" {
			path += " " + tt.variation
		}
		path += "." + tt.extension

		t.Run(path, func(t *testing.T) {
			fields, match, ok := p.Extract(path)
			require.True(t, ok)
			assert.Equal(t, path, match)
			assert.Equal(t, map[string]string{
				"group":     tt.group,
				"sample":    tt.sample,
				"kit":       tt.kit,
				"variation": tt.variation,
				"extension": tt.extension,
			}, fields)
		})
	}

	t.Run("no_match", func(t *testing.T) {
		for _, path := range []string{"loose.wav", "Drums/kick-01.wav", ""} {
			fields, _, ok := p.Extract(path)
			assert.False(t, ok, path)
			assert.Nil(t, fields, path)
		}
	})
}

func TestProcessor_Rearrange(t *testing.T) {
	tests := []struct {
		name       string
		rearranges map[string]string
		fields     map[string]string
		want       map[string]string
	}{
		{
			name:       "short_value_rewritten",
			rearranges: map[string]string{"sample": "{kit} Full"},
			fields:     map[string]string{"sample": "A1", "kit": "kick"},
			want:       map[string]string{"sample": "kick Full", "kit": "kick"},
		},
		{
			name:       "full_value_untouched",
			rearranges: map[string]string{"sample": "{kit} Full"},
			fields:     map[string]string{"sample": "Kick", "kit": "A1"},
			want:       map[string]string{"sample": "Kick", "kit": "A1"},
		},
		{
			name:       "rewrites_read_fields_before_the_pass",
			rearranges: map[string]string{"sample": "{kit}", "kit": "{sample}"},
			fields:     map[string]string{"sample": "A1", "kit": "B2"},
			want:       map[string]string{"sample": "B2", "kit": "A1"},
		},
		{
			name:       "rendered_value_normalized",
			rearranges: map[string]string{"sample": "{kit} / {variation}"},
			fields:     map[string]string{"sample": "x", "kit": "Kick", "variation": "hard"},
			want:       map[string]string{"sample": "Kick/hard", "kit": "Kick", "variation": "hard"},
		},
		{
			name:       "no_rearranges",
			rearranges: nil,
			fields:     map[string]string{"sample": "A1", "kit": "kick"},
			want:       map[string]string{"sample": "A1", "kit": "kick"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, p := createTestEnv(t, withRearranges(tt.rearranges))

			got, err := p.Rearrange(ctx, tt.fields)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Rearrange() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("input_not_modified", func(t *testing.T) {
		ctx, p := createTestEnv(t, withRearranges(map[string]string{"sample": "{kit}"}))
		fields := map[string]string{"sample": "A1", "kit": "kick"}

		_, err := p.Rearrange(ctx, fields)
		require.NoError(t, err)
		assert.Equal(t, "A1", fields["sample"])
	})

	t.Run("missing_group_is_fatal", func(t *testing.T) {
		ctx, p := createTestEnv(t, withRearranges(map[string]string{"sample": "{kit}"}))

		_, err := p.Rearrange(ctx, map[string]string{"kit": "kick"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, catalog.ErrInconsistentMatch))
		assert.Contains(t, err.Error(), `"sample"`)
		assert.Contains(t, err.Error(), ruleset.SourceDefaults)
	})
}

func TestProcessor_Sample(t *testing.T) {
	t.Run("full_value_keeps_fields", func(t *testing.T) {
		ctx, p := createTestEnv(t, withRearranges(map[string]string{"sample": "{kit} Full"}))

		sample, ok, err := p.Sample(ctx, "Drums/kick A1.wav")
		require.NoError(t, err)
		require.True(t, ok)

		assert.Equal(t, "/src/Drums/kick A1.wav", sample.SourcePath)
		assert.Equal(t, "/src_remapped/A1/kick.wav", sample.TargetPath)
		assert.Equal(t, map[string]string{
			"group":     "Drums",
			"sample":    "kick",
			"kit":       "A1",
			"variation": "",
			"extension": "wav",
		}, sample.Fields)
	})

	t.Run("short_code_rewritten_from_siblings", func(t *testing.T) {
		ctx, p := createTestEnv(t, withRearranges(map[string]string{"sample": "{kit} Full"}))

		sample, ok, err := p.Sample(ctx, "Drums/A1 kick.wav")
		require.NoError(t, err)
		require.True(t, ok)

		assert.Equal(t, "kick Full", sample.Fields["sample"])
		assert.Equal(t, "kick", sample.Fields["kit"])
		assert.Equal(t, "/src_remapped/kick/kick Full.wav", sample.TargetPath)
	})

	t.Run("default_rearrange_promotes_kit_name", func(t *testing.T) {
		ctx, p := createTestEnv(t, ruleset.DefaultDefinition())

		sample, ok, err := p.Sample(ctx, "Drums/A1 kick soft.wav")
		require.NoError(t, err)
		require.True(t, ok)

		assert.Equal(t, "kick", sample.Fields["sample"])
		assert.Equal(t, "/src_remapped/kick/kick soft.wav", sample.TargetPath)
	})

	t.Run("leftover_placeholder_logged", func(t *testing.T) {
		rules, err := ruleset.Compile(ruleset.Definition{
			Input:  `{kit}/{sample}\.wav`,
			Output: "{kit}/{sample}.wav",
			Index:  "kit",
			Groups: map[string]string{"kit": "([a-z]+)", "sample": "([^/]+)"},
			Source: "test",
		})
		require.NoError(t, err)
		p, err := catalog.NewProcessor(rules, catalog.Options{SourceRoot: "/src/"})
		require.NoError(t, err)

		var buf bytes.Buffer
		ctx := zerolog.New(&buf).WithContext(context.Background())

		sample, ok, err := p.Sample(ctx, "kick/{velocity}.wav")
		require.NoError(t, err)
		require.True(t, ok)

		assert.Equal(t, "/src_remapped/kick/{velocity}.wav", sample.TargetPath)
		assert.Contains(t, buf.String(), `"level":"warn"`)
		assert.Contains(t, buf.String(), `"unresolved":["velocity"]`)
	})

	t.Run("no_match", func(t *testing.T) {
		ctx, p := createTestEnv(t, ruleset.DefaultDefinition())

		sample, ok, err := p.Sample(ctx, "loose.wav")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, sample)
	})
}

func TestProcessor_Process(t *testing.T) {
	ctx, p := createTestEnv(t, withRearranges(map[string]string{"sample": "{kit} Full"}))

	paths := []string{
		"Drums/kick A1.wav",
		"loose.wav",
		"Perc/clap B2.wav",
		"Drums/snare A1 hard.wav",
	}

	result, err := p.Process(ctx, paths)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Matched)
	assert.Equal(t, []string{"loose.wav"}, result.Skipped)
	assert.Equal(t, []string{"A1", "B2"}, result.Kits.Names())
	assert.Equal(t, 3, result.Kits.SampleCount())

	a1 := result.Kits["A1"]
	require.Len(t, a1.Samples, 2)
	assert.Equal(t, "A1", a1.Name)
	assert.Equal(t, "/src/Drums/kick A1.wav", a1.Samples[0].SourcePath)
	assert.Equal(t, "/src/Drums/snare A1 hard.wav", a1.Samples[1].SourcePath)
	assert.Equal(t, "/src_remapped/A1/snare hard.wav", a1.Samples[1].TargetPath)

	b2 := result.Kits["B2"]
	require.Len(t, b2.Samples, 1)
	assert.Equal(t, "clap", b2.Samples[0].Fields["sample"])

	for _, kit := range result.Kits {
		for _, s := range kit.Samples {
			assert.NotContains(t, s.SourcePath, "loose.wav")
		}
	}
}

func TestProcessor_Process_MissingRearrangeEqualsEmpty(t *testing.T) {
	paths := []string{"Drums/A1 kick.wav", "Drums/B2 kick.wav", "Perc/clap C3.wav"}

	ctxNil, withNil := createTestEnv(t, withRearranges(nil))
	ctxEmpty, withEmpty := createTestEnv(t, withRearranges(map[string]string{}))

	a, err := withNil.Process(ctxNil, paths)
	require.NoError(t, err)
	b, err := withEmpty.Process(ctxEmpty, paths)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("results differ (-nil +empty):\n%s", diff)
	}
	assert.Equal(t, "A1", a.Kits["kick"].Samples[0].Fields["sample"])
}

func TestProcessor_Process_Cancelled(t *testing.T) {
	ctx, p := createTestEnv(t, ruleset.DefaultDefinition())
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	_, err := p.Process(ctx, []string{"Drums/kick A1.wav"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
