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
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/walteh/kitcat/cmd/kitcat/opts"
	"github.com/walteh/kitcat/pkg/config"
)

// buildVersion reads the module version and short revision stamped by go build
func buildVersion() (version, revision string) {
	version = "dev"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version, ""
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		version = v
	}

	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if dirty && revision != "" {
		revision += "-dirty"
	}
	return version, revision
}

// newVersionCmd creates the version command
func newVersionCmd(o *opts.RootOpts) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the kitcat version and supported rule formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version, revision := buildVersion()
			if short {
				_, err := fmt.Fprintln(o.Out, version)
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "🥁 kitcat %s", version)
			if revision != "" {
				fmt.Fprintf(&b, " (%s)", revision)
			}
			fmt.Fprintf(&b, "\n   %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(&b, "   rule formats: %s\n", strings.Join(config.Formats, ", "))

			_, err := fmt.Fprint(o.Out, b.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version")
	return cmd
}
