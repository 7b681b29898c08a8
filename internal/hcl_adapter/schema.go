// This file contains the HCL schema structs decoded with gohcl. They mirror
// the file format one to one and are translated into config.Model by the
// loader.

package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Model  *ModelBlock    `hcl:"model,block"`
	Locals []*LocalsBlock `hcl:"locals,block"`
	Edges  []*EdgeBlock   `hcl:"edge,block"`
}

// ModelBlock carries descriptive metadata:
//
//	model {
//	  name        = "confounder"
//	  description = "5 confounds 3 and 4"
//	}
type ModelBlock struct {
	Name        string `hcl:"name,optional"`
	Description string `hcl:"description,optional"`
}

// LocalsBlock holds named values usable as local.<name> in edge weights.
type LocalsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// EdgeBlock is one weighted edge:
//
//	edge {
//	  from   = 0
//	  to     = 3
//	  weight = uniform(0.2, 0.8)
//	}
type EdgeBlock struct {
	From   int            `hcl:"from"`
	To     int            `hcl:"to"`
	Weight hcl.Expression `hcl:"weight"`
}
