/*
Package status tracks what happened to every sample written by kitcat.

	          +-------------+
	          |   Tracker   |
	          +------+------+
	                 |
	     +-----------+-----------+
	     |                       |
	+----+------+          +-----+-----+
	|  Summary  |          |  Console  |
	| (counters)|          |  (pkg/log)|
	+-----------+          +-----------+

🎯 Purpose:
- Records one Outcome per sample (linked, symlinked, copied, planned, failed)
- Keeps the written / failed / planned counters for the final report
- Mirrors every outcome to zerolog and, when attached, to the console logger

🔄 Flow:
1. The materializer calls StartKit for each kit
2. Every sample ends in Record with its status
3. FinishOperation logs the Summary

🤝 Interfaces:
- Reporter: records outcomes and progress
- FileFormatter: formats zerolog messages
*/
package status
