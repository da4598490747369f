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

package main

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/kitcat/cmd/kitcat/commands"
	"github.com/walteh/kitcat/cmd/kitcat/opts"
	"github.com/walteh/kitcat/pkg/catalog"
	"github.com/walteh/kitcat/pkg/log"
	"github.com/walteh/kitcat/pkg/status"
)

// newRootCmd creates the root command; running it remaps the source root
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kitcat",
		Short: "Sort sample libraries into kits",
		Long: `kitcat matches every file below a source root against a set of rules,
groups the matches into kits and links (or copies) them into a new tree.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), cmd.ErrOrStderr(), o.Verbose)

			// console lines are mirrored into the log only when it is verbose
			mirror := zerolog.Nop()
			if o.Verbose {
				mirror = *zerolog.Ctx(ctx)
			}
			o.Console = log.New(o.Out, mirror)

			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemap(cmd, o)
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewListCmd(o),
		commands.NewRulesCmd(o),
		newVersionCmd(o),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.Path, "path", "p", ".", "source root to read samples from")
	flags.StringVarP(&o.RulesFile, "rules", "r", "", "rule file (ini, hcl, yaml, json or toml); built-in rules when empty")
	flags.StringVarP(&o.Name, "name", "n", catalog.DefaultTargetName, `target root name, "*" is replaced with the source root`)
	flags.StringSliceVarP(&o.Kits, "kits", "k", nil, "only keep these kits")
	flags.IntVarP(&o.Trunc, "trunc", "t", 0, "drop kits with fewer samples than this")
	flags.BoolVarP(&o.Dry, "dry", "d", false, "show what would be written without writing")
	flags.BoolVarP(&o.Soft, "soft", "s", false, "create soft links instead of hard links")
	flags.BoolVarP(&o.Copy, "copy", "c", false, "copy samples instead of linking them")
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "enable debug logging")
	flags.StringSliceVar(&o.Include, "include", nil, "glob patterns of files to consider (default **)")
	flags.StringSliceVar(&o.Exclude, "exclude", nil, "glob patterns of files to ignore")
}

// runRemap lists, processes, filters and writes the kits
func runRemap(cmd *cobra.Command, o *opts.RootOpts) error {
	ctx := cmd.Context()
	console := o.Console

	if o.Dry {
		console.Header("dry run, nothing will be written")
	} else {
		console.Header("remapping samples")
	}

	rules, err := o.Rules(ctx)
	if err != nil {
		return err
	}
	console.Infof("using rules from %s", rules.Source)

	tracker := status.New(console)
	runner, err := o.Runner(rules, tracker)
	if err != nil {
		return errors.Errorf("creating runner: %w", err)
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	console.LogNewline()
	if len(report.Skipped) > 0 {
		console.Warningf("%d of %d files did not match the input expression", len(report.Skipped), report.Listed)
	}
	if len(report.Dropped) > 0 {
		console.Infof("dropped %d kits", len(report.Dropped))
	}

	sum := report.Summary
	switch {
	case o.Dry:
		console.Successf("planned %d samples in %d kits under %s", sum.Planned, len(report.Kits), report.TargetRoot)
	case sum.Failed > 0:
		console.Warningf("wrote %d samples, %d failed, %d total", sum.Written, sum.Failed, sum.Total())
	default:
		console.Successf("wrote %d samples in %d kits to %s", sum.Written, len(report.Kits), report.TargetRoot)
	}

	for _, failure := range tracker.Failures() {
		console.Errorf("%s: %v", failure.Source, failure.Error)
	}

	return nil
}

// setupLogging configures zerolog and terminal styling based on flags
func setupLogging(ctx context.Context, w io.Writer, verbose bool) context.Context {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	if !isTerminal(os.Stdout) {
		color.NoColor = true
		pterm.DisableStyling()
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:     w,
		NoColor: !isTerminal(os.Stderr),
	}).Level(level).With().Timestamp().Logger()

	return logger.WithContext(ctx)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
