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
	"strings"
)

// 🔖 placeholderPattern matches a {name} token. Names must start with a letter
// or underscore so regex quantifiers like {1,2} are never taken for one.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_.-]*)\}`)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// 📍 Ref is one placeholder occurrence inside a template
type Ref struct {
	Name   string // Group name between the braces
	Offset int    // Byte offset of the opening brace
}

// 🔖 Placeholder returns the {name} token for a group name
func Placeholder(name string) string {
	return "{" + name + "}"
}

// ValidName reports whether name can be written as a placeholder.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// 🔍 Placeholders lists every placeholder occurrence in tmpl, in order of appearance
func Placeholders(tmpl string) []Ref {
	matches := placeholderPattern.FindAllStringSubmatchIndex(tmpl, -1)
	refs := make([]Ref, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, Ref{
			Name:   tmpl[m[2]:m[3]],
			Offset: m[0],
		})
	}
	return refs
}

// Offset returns the offset of the first occurrence of name's placeholder in
// tmpl and how many times it occurs. The offset is -1 when it does not occur.
func Offset(tmpl, name string) (offset int, count int) {
	token := Placeholder(name)
	return strings.Index(tmpl, token), strings.Count(tmpl, token)
}
