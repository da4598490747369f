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

// Package lister enumerates the sample files under a source root.
package lister

import (
	"context"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultInclude matches every file below the root.
const DefaultInclude = "**"

// 🔧 Options controls which files are listed
type Options struct {
	Include []string // Glob patterns a file must match, defaults to **
	Exclude []string // Glob patterns that drop a file
}

// 📂 List walks root and returns the relative, slash separated paths of every
// regular file matching an include pattern and no exclude pattern, sorted.
// Symlinks are neither listed nor followed.
func List(ctx context.Context, root string, opts Options) ([]string, error) {
	return ListFS(ctx, os.DirFS(root), opts)
}

// 📂 ListFS is List over an arbitrary file system
func ListFS(ctx context.Context, fsys fs.FS, opts Options) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	include := opts.Include
	if len(include) == 0 {
		include = []string{DefaultInclude}
	}

	for _, pattern := range append(append([]string{}, include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid glob pattern %q", pattern)
		}
	}

	seen := map[string]bool{}
	var paths []string

	for _, pattern := range include {
		err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.Type().IsRegular() || seen[path] {
				return nil
			}
			if excluded(logger, path, opts.Exclude) {
				return nil
			}
			seen[path] = true
			paths = append(paths, path)
			return nil
		}, doublestar.WithNoFollow())
		if err != nil {
			return nil, errors.Errorf("walking %q: %w", pattern, err)
		}
	}

	sort.Strings(paths)

	logger.Info().Int("files", len(paths)).Strs("include", include).Strs("exclude", opts.Exclude).Msg("listed sample files")

	return paths, nil
}

// 🔍 excluded checks if a path matches an exclude pattern
func excluded(logger *zerolog.Logger, path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", path).Str("pattern", pattern).Msg("file excluded by pattern")
			return true
		}
	}
	return false
}
