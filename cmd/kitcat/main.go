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
	"fmt"
	"os"

	"github.com/walteh/kitcat/cmd/kitcat/opts"
)

func main() {
	ctx := context.Background()

	o := &opts.RootOpts{Out: os.Stdout}
	rootCmd := newRootCmd(o)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if o.Console != nil {
			o.Console.Error(err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		}
		os.Exit(1)
	}
}
