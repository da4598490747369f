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

package ruleset

import (
	"fmt"
	"strings"

	"github.com/walteh/kitcat/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidRuleset matches every *ValidationError.
var ErrInvalidRuleset = errors.New("invalid ruleset")

// ❌ ValidationError lists every problem found while compiling a definition
type ValidationError struct {
	Source   string   // Where the definition came from
	Problems []string // One entry per problem, in discovery order
}

func (e *ValidationError) Error() string {
	source := e.Source
	if source == "" {
		source = "unknown source"
	}
	if len(e.Problems) == 1 {
		return fmt.Sprintf("invalid ruleset in %s: %s", source, e.Problems[0])
	}
	return fmt.Sprintf("invalid ruleset in %s: %d problems: %s", source, len(e.Problems), strings.Join(e.Problems, "; "))
}

// Is reports whether target is ErrInvalidRuleset.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRuleset
}

type validator struct {
	source   string
	problems []string
}

func (v *validator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

// checkPlaceholders reports placeholders in tmpl that name no group, or a
// group the input template does not capture. A nil order skips the capture
// check.
func (v *validator) checkPlaceholders(what, tmpl string, groups map[string]string, order map[string]int) {
	seen := map[string]bool{}
	for _, ref := range text.Placeholders(tmpl) {
		if seen[ref.Name] {
			continue
		}
		seen[ref.Name] = true
		if _, ok := groups[ref.Name]; !ok {
			v.addf("%s references undefined group %s", what, text.Placeholder(ref.Name))
			continue
		}
		if _, ok := order[ref.Name]; order != nil && !ok {
			v.addf("%s references group %s which the input template does not capture", what, text.Placeholder(ref.Name))
		}
	}
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Source: v.source, Problems: v.problems}
}
