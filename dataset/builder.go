package dataset

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/agenteval/internal/metrics"
	"github.com/BaSui01/agenteval/tools"
	"github.com/BaSui01/agenteval/trace"
	"github.com/BaSui01/agenteval/types"
)

// RawTrace is one agent run as captured by the runtime: the user query,
// the ordered event sequence and an optional reference answer.
type RawTrace struct {
	Query       json.RawMessage    `json:"query,omitempty"`
	Events      []types.TraceEvent `json:"events"`
	GroundTruth string             `json:"ground_truth,omitempty"`
}

// Builder turns raw traces into evaluation records. Distinct traces have
// no ordering dependency, so the builder normalizes them in parallel while
// keeping output order aligned with input order.
type Builder struct {
	registry    *tools.Registry
	normalizer  *trace.Normalizer
	logger      *zap.Logger
	collector   *metrics.Collector
	concurrency int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithConcurrency bounds the number of traces normalized in parallel.
func WithConcurrency(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithCollector attaches a metrics collector.
func WithCollector(c *metrics.Collector) BuilderOption {
	return func(b *Builder) { b.collector = c }
}

// NewBuilder creates a builder over the given tool registry.
func NewBuilder(registry *tools.Registry, logger *zap.Logger, opts ...BuilderOption) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Builder{
		registry:    registry,
		normalizer:  trace.NewNormalizer(logger),
		logger:      logger,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build normalizes every trace and assembles one evaluation record per
// trace, preserving input order. It returns early only when ctx is
// cancelled; per-trace anomalies surface as warnings inside BuildOne and
// never fail the batch.
func (b *Builder) Build(ctx context.Context, traces []RawTrace) ([]types.EvaluationRecord, error) {
	start := time.Now()
	records := make([]types.EvaluationRecord, len(traces))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i := range traces {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			records[i] = b.BuildOne(traces[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if b.collector != nil {
		b.collector.BuildObserved(time.Since(start))
	}
	b.logger.Info("dataset built",
		zap.Int("traces", len(traces)),
		zap.Duration("elapsed", time.Since(start)))
	return records, nil
}

// BuildOne assembles a single evaluation record from one raw trace.
func (b *Builder) BuildOne(tr RawTrace) types.EvaluationRecord {
	res := b.normalizer.Normalize(tr.Events, b.registry)

	runID := "run_" + uuid.NewString()
	for i := range res.Messages {
		res.Messages[i].RunID = runID
	}

	if b.collector != nil {
		b.collector.TraceNormalized()
		for _, w := range res.Warnings {
			b.collector.TraceWarning(string(w.Code))
		}
	}
	if open := res.Unanswered(); len(open) > 0 {
		b.logger.Warn("trace truncated, calls left unanswered",
			zap.String("run_id", runID),
			zap.Strings("call_ids", open))
	}

	record := types.EvaluationRecord{
		Query:       tr.Query,
		Context:     res.Context,
		ToolCalls:   res.ToolCalls,
		GroundTruth: tr.GroundTruth,
	}
	if len(res.Messages) > 0 {
		record.Response = types.MessageResponse(res.Messages)
	}
	if b.registry != nil {
		record.ToolDefinitions = b.registry.Definitions()
	}
	return record
}
