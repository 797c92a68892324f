package tools

import (
	"go.uber.org/zap"

	"github.com/BaSui01/agenteval/types"
)

// Registry holds the custom tool definitions available during a run.
// Definitions are linted on registration and immutable afterwards; the
// registry preserves registration order for deterministic serialization.
type Registry struct {
	defs   map[string]types.ToolDefinition
	order  []string
	logger *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		defs:   make(map[string]types.ToolDefinition),
		logger: logger,
	}
}

// Register lints and adds a tool definition. Names must be unique; a
// second registration under the same name fails with DUPLICATE_TOOL.
func (r *Registry) Register(def types.ToolDefinition) error {
	if err := Lint(def); err != nil {
		return err
	}
	if _, ok := r.defs[def.Name]; ok {
		return types.NewErrorf(types.ErrDuplicateTool, "tool %q already registered", def.Name)
	}
	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)
	r.logger.Debug("tool registered",
		zap.String("tool", def.Name),
		zap.Int("parameters", len(def.Parameters)),
		zap.Bool("strict", def.Strict))
	return nil
}

// RegisterAll registers definitions in order, stopping at the first
// configuration error.
func (r *Registry) RegisterAll(defs ...types.ToolDefinition) error {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (types.ToolDefinition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.order)
}

// Definitions returns all registered definitions in registration order.
func (r *Registry) Definitions() []types.ToolDefinition {
	defs := make([]types.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.defs[name])
	}
	return defs
}

// EvalFormats returns all definitions in evaluator wire form, in
// registration order.
func (r *Registry) EvalFormats() []map[string]any {
	out := make([]map[string]any, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name].EvalFormat())
	}
	return out
}
