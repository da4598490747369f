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
	"regexp"
	"regexp/syntax"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/kitcat/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📝 Definition is an uncompiled ruleset as read from defaults or a file
type Definition struct {
	Input      string            // Input template with placeholders
	Output     string            // Output template with placeholders
	Index      string            // Group whose value names the kit
	Recheck    string            // Expression gating rearranges
	Groups     map[string]string // Group name to regex fragment
	Rearranges map[string]string // Group name to rewrite template
	Source     string            // Where the definition came from
}

// 📚 Ruleset is a compiled Definition. It is built once and must not be
// modified afterwards; every matching operation borrows it read-only.
type Ruleset struct {
	Groups     map[string]string
	Input      string         // Expanded input expression
	InputOrder map[string]int // Group name to 1-based capture index in Input
	Output     string
	Index      string
	Recheck    string
	Rearranges map[string]string
	Source     string

	rawInput string
	input    *regexp.Regexp
	recheck  *regexp.Regexp
}

// 🏗️ Compile validates def and builds a Ruleset from it. All problems are
// reported together in a *ValidationError.
func Compile(def Definition) (*Ruleset, error) {
	v := &validator{source: def.Source}

	if def.Input == "" {
		v.addf("missing input template")
	}
	if def.Output == "" {
		v.addf("missing output template")
	}
	if def.Index == "" {
		v.addf("missing index group")
	}
	if len(def.Groups) == 0 {
		v.addf("no groups defined")
	}

	forms := make(map[string]string, len(def.Groups))
	for _, name := range sortedKeys(def.Groups) {
		if !text.ValidName(name) {
			v.addf("group name %q cannot be used as a placeholder", name)
		}
		form, err := fragmentForm(def.Groups[name])
		if err != nil {
			v.addf("group %q: %v", name, err)
			continue
		}
		forms[name] = form
	}

	order := groupOrder(v, def.Input, def.Groups)
	if def.Input != "" && len(def.Groups) > 0 && len(order) == 0 {
		v.addf("input template %q does not reference any known group", def.Input)
	}

	v.checkPlaceholders("input template", def.Input, def.Groups, nil)
	v.checkPlaceholders("output template", def.Output, def.Groups, order)

	if def.Index != "" {
		if _, ok := def.Groups[def.Index]; !ok {
			v.addf("index group %q is not defined in groups", def.Index)
		} else if _, ok := order[def.Index]; !ok {
			v.addf("index group %q is not captured by the input template", def.Index)
		}
	}

	for _, name := range sortedKeys(def.Rearranges) {
		if _, ok := def.Groups[name]; !ok {
			v.addf("rearrange group %q is not defined in groups", name)
		} else if _, ok := order[name]; !ok {
			v.addf("rearrange group %q is not captured by the input template", name)
		}
		v.checkPlaceholders(fmt.Sprintf("rearrange template for %q", name), def.Rearranges[name], def.Groups, order)
	}

	recheck, err := regexp.Compile(def.Recheck)
	if err != nil {
		v.addf("invalid recheck expression %q: %v", def.Recheck, err)
	}

	expanded := expand(def.Input, forms)

	var input *regexp.Regexp
	if len(v.problems) == 0 {
		input, err = regexp.Compile(expanded)
		switch {
		case err != nil:
			v.addf("invalid input expression %q: %v", expanded, err)
		case input.NumSubexp() != len(order):
			v.addf("input expression %q has %d capture groups but the template resolves %d groups; use (?:...) for literal groups",
				expanded, input.NumSubexp(), len(order))
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}

	return &Ruleset{
		Groups:     copyMap(def.Groups),
		Input:      expanded,
		InputOrder: order,
		Output:     def.Output,
		Index:      def.Index,
		Recheck:    def.Recheck,
		Rearranges: copyMap(def.Rearranges),
		Source:     def.Source,
		rawInput:   def.Input,
		input:      input,
		recheck:    recheck,
	}, nil
}

// 🔢 groupOrder numbers the groups whose placeholder occurs in the raw input
// template by ascending offset of that occurrence.
func groupOrder(v *validator, raw string, groups map[string]string) map[string]int {
	type hit struct {
		name   string
		offset int
	}

	var hits []hit
	for name := range groups {
		offset, count := text.Offset(raw, name)
		if count == 0 {
			continue
		}
		if count > 1 {
			v.addf("placeholder %s appears %d times in the input template; each group can be captured once", text.Placeholder(name), count)
		}
		hits = append(hits, hit{name: name, offset: offset})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].offset < hits[j].offset })

	order := make(map[string]int, len(hits))
	for i, h := range hits {
		order[h.name] = i + 1
	}
	return order
}

// fragmentForm returns the text a placeholder expands to. A fragment that is
// one capture group around everything is used as is, anything else is
// wrapped. Fragments with other capture groups are rejected.
func fragmentForm(fragment string) (string, error) {
	re, err := regexp.Compile(fragment)
	if err != nil {
		return "", errors.Errorf("invalid fragment %q: %v", fragment, err)
	}

	tree, err := syntax.Parse(fragment, syntax.Perl)
	if err != nil {
		return "", errors.Errorf("invalid fragment %q: %v", fragment, err)
	}

	switch {
	case re.NumSubexp() == 0:
		return "(" + fragment + ")", nil
	case re.NumSubexp() == 1 && tree.Op == syntax.OpCapture:
		return fragment, nil
	default:
		return "", errors.Errorf("fragment %q contains capture groups; use (?:...) inside fragments", fragment)
	}
}

func expand(raw string, forms map[string]string) string {
	out := raw
	for _, name := range sortedKeys(forms) {
		out = strings.ReplaceAll(out, text.Placeholder(name), forms[name])
	}
	return out
}

// 🔍 InputRegexp returns the compiled input expression
func (r *Ruleset) InputRegexp() *regexp.Regexp {
	return r.input
}

// 🔍 RecheckRegexp returns the compiled recheck expression
func (r *Ruleset) RecheckRegexp() *regexp.Regexp {
	return r.recheck
}

// CaptureOrder returns the captured group names sorted by capture index.
func (r *Ruleset) CaptureOrder() []string {
	names := make([]string, len(r.InputOrder))
	for name, idx := range r.InputOrder {
		names[idx-1] = name
	}
	return names
}

// 📝 Definition returns the definition the ruleset was compiled from
func (r *Ruleset) Definition() Definition {
	return Definition{
		Input:      r.rawInput,
		Output:     r.Output,
		Index:      r.Index,
		Recheck:    r.Recheck,
		Groups:     copyMap(r.Groups),
		Rearranges: copyMap(r.Rearranges),
		Source:     r.Source,
	}
}

// MarshalZerologObject lets a ruleset be logged with Object().
func (r *Ruleset) MarshalZerologObject(e *zerolog.Event) {
	e.Str("source", r.Source).
		Str("input", r.Input).
		Str("output", r.Output).
		Str("index", r.Index).
		Str("recheck", r.Recheck).
		Strs("order", r.CaptureOrder()).
		Int("rearranges", len(r.Rearranges))
}

// 📝 String returns a short description of the ruleset
func (r *Ruleset) String() string {
	return fmt.Sprintf("%s: %s -> %s (index %s)", r.Source, r.rawInput, r.Output, r.Index)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
