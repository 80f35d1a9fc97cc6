package buildenv

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Overrides is the optional HCL override file. It exists because the
// built-in SSH injection heuristic tracks an external tool's detection
// quirks, which shift over time; the file lets a build pin the behavior
// and supply dependency hints without touching the environment.
//
//	generator  = "Ninja"
//	ssh_inject = "never"
//
//	dependency "ssh2" {
//	  root    = "/opt/ssh2"
//	  include = "/opt/ssh2/include"
//	}
type Overrides struct {
	Generator    string           `hcl:"generator,optional"`
	SSHInject    string           `hcl:"ssh_inject,optional"`
	Dependencies []DependencyHint `hcl:"dependency,block"`
}

// DependencyHint overrides the discovery hints for one dependency.
type DependencyHint struct {
	Name    string `hcl:"name,label"`
	Root    string `hcl:"root,optional"`
	Include string `hcl:"include,optional"`
}

// LoadOverrides parses and decodes an HCL override file.
func LoadOverrides(path string) (*Overrides, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", path, diags.Error())
	}
	var o Overrides
	if diags := gohcl.DecodeBody(file.Body, nil, &o); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", path, diags.Error())
	}
	return &o, nil
}

// Apply merges the override file into the configuration and dependency
// list. File values win over environment values.
func Apply(o *Overrides, cfg *Config, deps []Dependency) error {
	if o == nil {
		return nil
	}
	if o.Generator != "" {
		cfg.Generator = o.Generator
	}
	if o.SSHInject != "" {
		inject, err := ParseInjection(o.SSHInject)
		if err != nil {
			return fmt.Errorf("ssh_inject: %w", err)
		}
		cfg.SSHInject = inject
	}
	for _, hint := range o.Dependencies {
		for i := range deps {
			if deps[i].Name != hint.Name {
				continue
			}
			if hint.Root != "" {
				deps[i].Root = hint.Root
			}
			if hint.Include != "" {
				deps[i].Include = hint.Include
			}
		}
	}
	return nil
}
