/*
Package operation writes kits to disk and drives a complete kitcat run.

🎯 Purpose:
- Lists the source root, processes paths into kits, applies kit filters
- Materializes every sample as a hard link, soft link or copy
- Reports each outcome through the status package

🔄 Flow:
1. Runner.Plan lists files (pkg/lister) and builds kits (pkg/catalog)
2. Kits below the minimum size or outside the allow list are dropped
3. Materializer creates missing directories and writes every sample
4. The status.Tracker counts written, failed and planned samples

⚡ Key Responsibilities:
- Link and copy semantics (copy wins over soft, hard link is the default)
- Dry runs that touch nothing
- Per-sample failures that never abort the run

🔍 Example:

	runner, err := operation.NewRunner(operation.RunnerOptions{
		Rules:      ruleset.Default(),
		SourceRoot: "/samples",
	})
	report, err := runner.Run(ctx)
*/
package operation
