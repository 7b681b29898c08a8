package hcl_adapter

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// newEvalContext returns the root evaluation context shared by every file of
// one Load call. The random functions draw from rng in evaluation order, so a
// fixed seed reproduces the same weights.
func newEvalContext(rng *rand.Rand) *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"random":  randomFunc(rng),
			"uniform": uniformFunc(rng),
			"normal":  normalFunc(rng),
			"abs":     stdlib.AbsoluteFunc,
			"min":     stdlib.MinFunc,
			"max":     stdlib.MaxFunc,
		},
	}
}

// randomFunc is random(): uniform in [0, 1).
func randomFunc(rng *rand.Rand) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{},
		Type:   function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.NumberFloatVal(rng.Float64()), nil
		},
	})
}

// uniformFunc is uniform(lo, hi): uniform in [lo, hi).
func uniformFunc(rng *rand.Rand) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "lo", Type: cty.Number},
			{Name: "hi", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			lo, _ := args[0].AsBigFloat().Float64()
			hi, _ := args[1].AsBigFloat().Float64()
			if hi < lo {
				return cty.NilVal, function.NewArgErrorf(1, "upper bound %v is below lower bound %v", hi, lo)
			}
			return cty.NumberFloatVal(lo + rng.Float64()*(hi-lo)), nil
		},
	})
}

// normalFunc is normal(mean, sd).
func normalFunc(rng *rand.Rand) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "mean", Type: cty.Number},
			{Name: "sd", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			mean, _ := args[0].AsBigFloat().Float64()
			sd, _ := args[1].AsBigFloat().Float64()
			if sd < 0 {
				return cty.NilVal, function.NewArgErrorf(1, "standard deviation must not be negative, got %v", sd)
			}
			return cty.NumberFloatVal(mean + sd*rng.NormFloat64()), nil
		},
	})
}

// evalLocals evaluates every attribute of the locals blocks of one file
// against the root context. Locals cannot refer to each other.
func evalLocals(blocks []*LocalsBlock, evalCtx *hcl.EvalContext) (map[string]cty.Value, error) {
	locals := make(map[string]cty.Value)
	for _, block := range blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid locals block: %w", diags)
		}
		// Attributes come back as a map; sort them so random() draws happen
		// in a fixed order.
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			attr := attrs[name]
			if _, dup := locals[name]; dup {
				return nil, fmt.Errorf("local %q is defined more than once (%s)", name, attr.Range.String())
			}
			val, diags := attr.Expr.Value(evalCtx)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid value for local %q: %w", name, diags)
			}
			locals[name] = val
		}
	}
	return locals, nil
}
