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

package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL rule files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasExt(filename, ".hcl")
}

// 📝 Parse parses the rule file from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*RuleFile, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "rules.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Every attribute is optional here so Validate can name all missing keys
	type hclRuleFile struct {
		Input     string            `hcl:"input,optional"`
		Output    string            `hcl:"output,optional"`
		Index     string            `hcl:"index,optional"`
		Recheck   string            `hcl:"recheck,optional"`
		Groups    map[string]string `hcl:"groups,optional"`
		Rearrange map[string]string `hcl:"rearrange,optional"`
	}

	// Decode HCL
	var hclCfg hclRuleFile
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &RuleFile{
		Input:     hclCfg.Input,
		Output:    hclCfg.Output,
		Index:     hclCfg.Index,
		Recheck:   hclCfg.Recheck,
		Groups:    hclCfg.Groups,
		Rearrange: hclCfg.Rearrange,
	}, nil
}
