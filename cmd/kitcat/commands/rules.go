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
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/kitcat/cmd/kitcat/opts"
	"github.com/walteh/kitcat/pkg/config"
)

// NewRulesCmd creates the rules command
func NewRulesCmd(o *opts.RootOpts) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rules",
		Long: `Rules prints the rules a run would use: the file given with --rules,
a rules file from the kitcat config directory, or the built-in rules.
The output can be saved and edited as a starting point for custom rules.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(config.Formats, format) {
				return errors.Errorf("unknown format %q, expected one of %s", format, strings.Join(config.Formats, ", "))
			}

			rules, err := o.Rules(cmd.Context())
			if err != nil {
				return err
			}

			if err := config.Encode(rules.Definition(), format, o.Out); err != nil {
				return errors.Errorf("writing rules from %s: %w", rules.Source, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "ini", "output format ("+strings.Join(config.Formats, ", ")+")")

	return cmd
}
