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

package commands

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/kitcat/cmd/kitcat/opts"
	"github.com/walteh/kitcat/pkg/catalog"
	"github.com/walteh/kitcat/pkg/operation"
)

// NewListCmd creates the list command
func NewListCmd(o *opts.RootOpts) *cobra.Command {
	var samples bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the kits a run would write",
		Long: `List runs the rules against the source root and prints the resulting kits.
It will:
1. Walk the source root
2. Build kits from every matching file
3. Apply the kit filters
4. Print a table without writing anything`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rules, err := o.Rules(ctx)
			if err != nil {
				return err
			}

			runner, err := o.Runner(rules, nil)
			if err != nil {
				return errors.Errorf("creating runner: %w", err)
			}

			plan, err := runner.Plan(ctx)
			if err != nil {
				return errors.Errorf("planning: %w", err)
			}

			table, err := renderPlan(plan, samples)
			if err != nil {
				return err
			}

			if _, err := fmt.Fprint(o.Out, table); err != nil {
				return errors.Errorf("writing table: %w", err)
			}

			o.Console.Infof("%d kits, %d samples, %d paths skipped", len(plan.Kits), plan.Kits.SampleCount(), len(plan.Skipped))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&samples, "samples", "a", false, "list every sample instead of one row per kit")

	return cmd
}

// renderPlan formats the plan as a table
func renderPlan(plan *operation.Plan, samples bool) (string, error) {
	var data pterm.TableData
	if samples {
		data = pterm.TableData{{"Kit", "Source", "Target"}}
		for _, name := range plan.Kits.Names() {
			for _, s := range plan.Kits[name].Samples {
				data = append(data, []string{name, s.SourcePath, s.TargetPath})
			}
		}
	} else {
		data = pterm.TableData{{"Kit", "Samples", "Target"}}
		for _, name := range plan.Kits.Names() {
			data = append(data, []string{
				name,
				strconv.Itoa(len(plan.Kits[name].Samples)),
				strings.Join(targetDirs(plan.Kits[name]), ", "),
			})
		}
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering table: %w", err)
	}
	return out + "\n", nil
}

// targetDirs returns the distinct directories a kit's samples render into
func targetDirs(kit *catalog.Kit) []string {
	seen := map[string]bool{}
	var dirs []string
	for _, s := range kit.Samples {
		dir := filepath.Dir(s.TargetPath)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}
