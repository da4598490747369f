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

	"github.com/rs/zerolog"
)

// ✂️ FilterMinSamples drops every kit with fewer than minSamples samples.
// Zero keeps everything. It returns the dropped kit names, sorted.
func FilterMinSamples(ctx context.Context, kits Kits, minSamples int) []string {
	if minSamples <= 0 {
		return nil
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Int("min_samples", minSamples).Msg("dropping kits with too few samples")

	var dropped []string
	for _, name := range kits.Names() {
		if len(kits[name].Samples) >= minSamples {
			continue
		}
		logger.Info().Str("kit", name).Int("samples", len(kits[name].Samples)).Msg("dropping kit")
		delete(kits, name)
		dropped = append(dropped, name)
	}
	return dropped
}

// ✂️ FilterNames keeps only the kits named in allow. An empty allow list
// keeps everything. It returns the dropped kit names, sorted.
func FilterNames(ctx context.Context, kits Kits, allow []string) []string {
	if len(allow) == 0 {
		return nil
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Strs("kits", allow).Msg("dropping kits not in allow list")

	allowed := make(map[string]bool, len(allow))
	for _, name := range allow {
		allowed[name] = true
	}

	var dropped []string
	for _, name := range kits.Names() {
		if allowed[name] {
			continue
		}
		logger.Info().Str("kit", name).Int("samples", len(kits[name].Samples)).Msg("dropping kit")
		delete(kits, name)
		dropped = append(dropped, name)
	}
	return dropped
}
