/*
Package config loads kitcat rule files.

	            +-------------+
	            |  RuleFile   |
	            +------+------+
	                   |
	  +------+------+--+---+------+------+
	  |      |      |      |      |      |
	 INI    HCL   YAML   JSON   TOML  defaults

🎯 Purpose:
- Parses rule files in every supported format into one RuleFile shape
- Names every missing required key (input, output, index, groups)
- Warns when optional parts (rearrange, recheck) are absent
- Compiles the result into a ruleset.Ruleset tagged with its file path

🔄 Flow:
1. Resolve picks an explicit path, an XDG rule file, or the defaults
2. GetParser selects a parser by file extension
3. RuleFile.Validate checks required keys
4. ruleset.Compile reports every remaining problem at once

📄 INI layout (the native format):

	input  = {group}/{sample} ?{kit}{variation}?\.{extension}
	output = {kit}/{sample} {variation}.{extension}
	index  = kit
	recheck = ^([0-9a-zA-Z]{1,2})$

	[groups]
	kit = ([a-zA-Z0-9]*)

	[rearrange]
	sample = {kit}

Inline comments are not recognized so expressions may contain ";" and "#".
In HCL strings a literal backslash is written "\\".

🤝 Interfaces:
- Parser: format-specific parsing, registered by extension
- Encode: writes a definition back out (ini, hcl, yaml, json, toml)
*/
package config
