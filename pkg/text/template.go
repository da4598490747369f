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

package text

import (
	"regexp"
	"sort"
	"strings"
)

// ✂️ separatorPattern matches a path or name separator with at most one
// space on either side. Substituting an empty field leaves such artifacts.
var separatorPattern = regexp.MustCompile(`[ ]?([\|/|.])[ ]?`)

// 📄 Result describes one substitution pass over a template
type Result struct {
	Template         string   // Template before substitution
	Content          string   // Template after substitution, not yet normalized
	ReplacementCount int      // Number of placeholder occurrences replaced
	Unresolved       []string // Placeholders left in Content, in order of appearance
}

// 🔄 Substitute replaces every {name} in tmpl with the trimmed value of the
// field called name. Fields are applied in name order and a field whose
// placeholder does not occur has no effect.
func Substitute(tmpl string, fields map[string]string) *Result {
	result := &Result{Template: tmpl}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	current := strings.TrimSpace(tmpl)
	for _, name := range names {
		token := Placeholder(name)
		count := strings.Count(current, token)
		if count == 0 {
			continue
		}
		current = strings.ReplaceAll(current, token, strings.TrimSpace(fields[name]))
		result.ReplacementCount += count
	}

	result.Content = strings.TrimSpace(current)
	for _, ref := range Placeholders(result.Content) {
		result.Unresolved = append(result.Unresolved, ref.Name)
	}

	return result
}

// 🧹 Normalize collapses a separator (|, / or .) and the single spaces around
// it down to the separator alone. It is one global pass, not repeated.
func Normalize(s string) string {
	return separatorPattern.ReplaceAllString(s, "${1}")
}

// 🎨 Render substitutes fields into tmpl and normalizes the result. The
// substitution result is returned alongside for its counters.
func Render(tmpl string, fields map[string]string) (string, *Result) {
	res := Substitute(tmpl, fields)
	return Normalize(res.Content), res
}
