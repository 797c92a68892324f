// Package agenteval provides a top-level convenience entry point for turning
// raw agent traces into evaluation-ready datasets with minimal boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/agenteval"
//
//	p, err := agenteval.New(agenteval.WithToolFile("tools.yaml"))
//	p, err := agenteval.New(agenteval.WithToolDefinitions(defs...), agenteval.WithConcurrency(8))
//
// This is a thin wrapper around [tools.Registry] and [dataset.Builder]; use
// those packages directly when you need finer control.
package agenteval

import (
	"context"

	"go.uber.org/zap"

	"github.com/BaSui01/agenteval/dataset"
	"github.com/BaSui01/agenteval/evaluators"
	"github.com/BaSui01/agenteval/tools"
	"github.com/BaSui01/agenteval/types"
)

// Option configures the pipeline created by [New].
type Option func(*options)

type options struct {
	logger      *zap.Logger
	defs        []types.ToolDefinition
	toolFile    string
	concurrency int
}

// WithLogger sets a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithToolDefinitions declares custom tools available to the traced agent.
func WithToolDefinitions(defs ...types.ToolDefinition) Option {
	return func(o *options) { o.defs = append(o.defs, defs...) }
}

// WithToolFile loads tool definitions from a YAML file.
func WithToolFile(path string) Option {
	return func(o *options) { o.toolFile = path }
}

// WithConcurrency bounds parallel trace normalization in [Pipeline.Build].
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// Pipeline bundles a tool registry and a dataset builder behind one handle.
type Pipeline struct {
	registry *tools.Registry
	builder  *dataset.Builder
	logger   *zap.Logger
}

// New creates a [Pipeline]. Tool definitions are optional; traces that call
// undeclared tools are still normalized, with warnings.
func New(opts ...Option) (*Pipeline, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	registry := tools.NewRegistry(o.logger)
	if o.toolFile != "" {
		if err := tools.LoadFile(o.toolFile, registry); err != nil {
			return nil, err
		}
	}
	if err := registry.RegisterAll(o.defs...); err != nil {
		return nil, err
	}

	var buildOpts []dataset.BuilderOption
	if o.concurrency > 0 {
		buildOpts = append(buildOpts, dataset.WithConcurrency(o.concurrency))
	}

	return &Pipeline{
		registry: registry,
		builder:  dataset.NewBuilder(registry, o.logger, buildOpts...),
		logger:   o.logger,
	}, nil
}

// Registry exposes the pipeline's tool registry.
func (p *Pipeline) Registry() *tools.Registry {
	return p.registry
}

// Build normalizes traces into evaluation records, preserving input order.
func (p *Pipeline) Build(ctx context.Context, traces []dataset.RawTrace) ([]types.EvaluationRecord, error) {
	return p.builder.Build(ctx, traces)
}

// BuildOne normalizes a single trace into an evaluation record.
func (p *Pipeline) BuildOne(trace dataset.RawTrace) types.EvaluationRecord {
	return p.builder.BuildOne(trace)
}

// BuildFile reads raw traces from inputPath, builds records, and writes them
// to outputPath as JSONL. It returns the number of records written.
func (p *Pipeline) BuildFile(ctx context.Context, inputPath, outputPath string) (int, error) {
	traces, err := dataset.ReadTraceFile(inputPath)
	if err != nil {
		return 0, err
	}
	records, err := p.builder.Build(ctx, traces)
	if err != nil {
		return 0, err
	}
	if err := dataset.WriteFile(outputPath, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Eligibility reports, per evaluator, whether the record carries every field
// that evaluator requires.
func (p *Pipeline) Eligibility(record *types.EvaluationRecord) []evaluators.EligibilityResult {
	return evaluators.CheckAll(record)
}

// Criteria builds testing-criteria payloads for the named evaluators against
// the given judge deployment. Empty names selects all evaluators.
func (p *Pipeline) Criteria(deployment string, names ...string) []evaluators.Criterion {
	return evaluators.BuildCriteria(p.logger, deployment, names...)
}
