/*
Package catalog turns listed sample paths into kits.

	path ──▶ Extract ──▶ Rearrange ──▶ render target ──▶ Kits.Add
	           │
	           └─ no match: skipped, logged

🎯 Purpose:
  - match each path against the ruleset's input expression
  - rewrite fields whose value passes the recheck expression
  - render the target path from the output template
  - group samples into kits by the index group

Processing is sequential. The Ruleset is shared read-only; every Sample is
owned by exactly one Kit once added.
*/
package catalog
