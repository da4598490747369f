/*
Package ruleset compiles kitcat rule definitions into an immutable Ruleset.

A definition names groups (name → regex fragment) and references them from
templates with {name} placeholders:

	input   = {group}/{sample} ?{kit}{variation}?\.{extension}
	output  = {kit}/{sample} {variation}.{extension}
	index   = kit
	recheck = ^([0-9a-zA-Z]{1,2})$

	[groups]
	kit = ([a-zA-Z0-9]*)

	[rearrange]
	sample = {kit}

🎯 Compiling:
  - every placeholder in the input template becomes (fragment)
  - groups are numbered 1..k by the offset of their placeholder in the raw
    input template, which is how the regex engine numbers the expanded groups
  - one validation pass collects every problem before anything is returned

A placeholder may appear once in the input template. Fragments must not add
capture groups of their own, apart from a single group enclosing the whole
fragment.
*/
package ruleset
