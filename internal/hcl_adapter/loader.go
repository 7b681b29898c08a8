package hcl_adapter

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/causalfaker/internal/config"
	"github.com/vk/causalfaker/internal/ctxlog"
	"github.com/vk/causalfaker/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	rng *rand.Rand
}

// NewLoader creates a new HCL model loader. The seed drives the random
// functions available in weight expressions.
func NewLoader(seed uint64) *Loader {
	return &Loader{rng: rand.New(rand.NewPCG(seed, 0x6863_6c))}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string { return []string{".hcl"} }

// Load parses every .hcl file under paths and merges them into one model, in
// sorted path order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.ResolvePaths(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := newEvalContext(l.rng)
	model := &config.Model{}

	for _, file := range files {
		fileModel, err := l.loadFile(ctx, parser, evalCtx, file)
		if err != nil {
			return nil, err
		}
		model.Merge(fileModel)
	}

	logger.Debug("HCL loading complete.", "name", model.Name, "files", len(files), "edges", len(model.Edges))
	return model, nil
}

func (l *Loader) loadFile(ctx context.Context, parser *hclparse.Parser, evalCtx *hcl.EvalContext, file string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("file", file)

	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	locals, err := evalLocals(root.Locals, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("in %s: %w", file, err)
	}
	fileCtx := evalCtx.NewChild()
	fileCtx.Variables = map[string]cty.Value{
		"local": cty.ObjectVal(locals),
	}
	logger.Debug("Evaluated locals.", "count", len(locals))

	model := &config.Model{Sources: []string{file}}
	if root.Model != nil {
		model.Name = root.Model.Name
		model.Description = root.Model.Description
	}

	for _, block := range root.Edges {
		edge, err := translateEdge(block, fileCtx)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", file, err)
		}
		logger.Debug("Translated edge.", "from", edge.From, "to", edge.To, "weight", edge.Weight)
		model.Edges = append(model.Edges, edge)
	}
	return model, nil
}

// translateEdge evaluates the weight expression of an edge block.
func translateEdge(block *EdgeBlock, evalCtx *hcl.EvalContext) (*config.Edge, error) {
	val, diags := block.Weight.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("edge %d -> %d: invalid weight: %w", block.From, block.To, diags)
	}
	// gohcl fills an absent expression attribute with a static null.
	if val.IsNull() {
		return nil, fmt.Errorf("edge %d -> %d: missing required attribute \"weight\"", block.From, block.To)
	}
	if !val.IsKnown() {
		return nil, fmt.Errorf("edge %d -> %d: weight must be a known number", block.From, block.To)
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return nil, fmt.Errorf("edge %d -> %d: weight must be a number, got %s", block.From, block.To, val.Type().FriendlyName())
	}

	var weight float64
	if err := gocty.FromCtyValue(num, &weight); err != nil {
		return nil, fmt.Errorf("edge %d -> %d: %w", block.From, block.To, err)
	}

	return &config.Edge{From: block.From, To: block.To, Weight: weight}, nil
}
