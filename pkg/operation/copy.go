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
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📁 ensureParent creates the directory holding path when it is missing
func ensureParent(ctx context.Context, path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Errorf("checking directory %s: %w", dir, err)
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("directory does not exist, creating")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// 🔗 hardLink links dst to the same inode as src
func hardLink(src, dst string) error {
	if err := os.Link(src, dst); err != nil {
		return errors.Errorf("creating hard link: %w", err)
	}
	return nil
}

// ↪️ softLink creates a symbolic link at dst pointing to src
func softLink(src, dst string) error {
	if err := os.Symlink(src, dst); err != nil {
		return errors.Errorf("creating soft link: %w", err)
	}
	return nil
}

// 📋 copyFile copies the content of src to dst, replacing dst if it exists
func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("reading source info: %w", err)
	}

	destination, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return errors.Errorf("copying file: %w", err)
	}

	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	return nil
}
