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
	"fmt"
	"sort"
)

// 🎵 Sample is one matched input file and where it should go
type Sample struct {
	SourcePath string            // Location of the listed file
	TargetPath string            // Rendered destination
	Fields     map[string]string // Group name to final value
}

// Clone returns a deep copy of s.
func (s Sample) Clone() Sample {
	fields := make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}
	return Sample{
		SourcePath: s.SourcePath,
		TargetPath: s.TargetPath,
		Fields:     fields,
	}
}

func (s Sample) String() string {
	return fmt.Sprintf("%s -> %s", s.SourcePath, s.TargetPath)
}

// 🥁 Kit is every sample sharing one index value, in discovery order
type Kit struct {
	Name    string
	Samples []Sample
}

// Kits maps kit names to kits.
type Kits map[string]*Kit

// 📥 Add appends a copy of s to the kit called name, creating the kit when
// the name is new. It reports whether a kit was created.
func (k Kits) Add(name string, s Sample) (kit *Kit, created bool) {
	if existing, ok := k[name]; ok {
		existing.Samples = append(existing.Samples, s.Clone())
		return existing, false
	}

	kit = &Kit{
		Name:    name,
		Samples: []Sample{s.Clone()},
	}
	k[name] = kit
	return kit, true
}

// Names returns the kit names in sorted order.
func (k Kits) Names() []string {
	names := make([]string, 0, len(k))
	for name := range k {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SampleCount returns the number of samples across all kits.
func (k Kits) SampleCount() int {
	total := 0
	for _, kit := range k {
		total += len(kit.Samples)
	}
	return total
}
