package evaluators

import (
	"fmt"

	"go.uber.org/zap"
)

// Criterion is one testing-criteria entry submitted to the evaluation
// service: it names a built-in evaluator and maps each record field into
// the evaluator's input via {{item.<field>}} templates.
type Criterion struct {
	Type          string            `json:"type"`
	Name          string            `json:"name"`
	EvaluatorName string            `json:"evaluator_name"`
	DataMapping   map[string]string `json:"data_mapping"`

	InitializationParameters map[string]any `json:"initialization_parameters,omitempty"`
}

// criterionType is the only criterion type the service accepts for
// built-in agentic evaluators.
const criterionType = "azure_ai_evaluator"

// BuildCriteria builds testing criteria for the named evaluators, in the
// given order. Unknown evaluator names are skipped with a logged warning
// rather than failing the whole submission. An empty name list selects
// every evaluator in table order.
func BuildCriteria(logger *zap.Logger, deployment string, names ...string) []Criterion {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(names) == 0 {
		names = Names()
	}

	criteria := make([]Criterion, 0, len(names))
	for _, name := range names {
		req, ok := RequirementFor(name)
		if !ok {
			logger.Warn("unknown evaluator, skipping", zap.String("evaluator", name))
			continue
		}
		criteria = append(criteria, Criterion{
			Type:          criterionType,
			Name:          req.Name,
			EvaluatorName: "builtin." + req.Name,
			DataMapping:   dataMapping(req),
			InitializationParameters: map[string]any{
				"deployment_name": deployment,
			},
		})
	}
	return criteria
}

// dataMapping maps every declared field, required and optional, to its
// dataset item template.
func dataMapping(req Requirement) map[string]string {
	mapping := make(map[string]string, len(req.Required)+len(req.Optional))
	for _, field := range req.Required {
		mapping[field] = fmt.Sprintf("{{item.%s}}", field)
	}
	for _, field := range req.Optional {
		mapping[field] = fmt.Sprintf("{{item.%s}}", field)
	}
	return mapping
}
