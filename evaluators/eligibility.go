package evaluators

import (
	"strings"

	"github.com/BaSui01/agenteval/types"
)

// EligibilityResult is the outcome of checking one record against one
// evaluator's requirement.
type EligibilityResult struct {
	Evaluator string `json:"evaluator"`
	Eligible  bool   `json:"eligible"`

	// Missing lists the absent required fields in requirement declaration
	// order, so the caller can report precisely what to supply.
	Missing []string `json:"missing,omitempty"`
}

// Err returns nil when eligible, otherwise a MISSING_REQUIRED_FIELD error
// naming the missing fields.
func (r EligibilityResult) Err() error {
	if r.Eligible {
		return nil
	}
	return types.NewErrorf(types.ErrMissingRequiredField,
		"evaluator %s requires missing fields: %s",
		r.Evaluator, strings.Join(r.Missing, ", "))
}

// CheckEligibility decides whether a record supplies every field the
// requirement declares as required. The record is never mutated and the
// check is all-or-nothing; a field present only as an empty string or
// empty sequence counts as absent, since evaluators reject blank inputs
// rather than treating them as unspecified.
func CheckEligibility(record *types.EvaluationRecord, req Requirement) EligibilityResult {
	res := EligibilityResult{Evaluator: req.Name, Eligible: true}
	for _, field := range req.Required {
		if !FieldPresent(record, field) {
			res.Eligible = false
			res.Missing = append(res.Missing, field)
		}
	}
	return res
}

// CheckAll checks a record against every evaluator in table order. An
// ineligible evaluator never blocks the others from being attempted.
func CheckAll(record *types.EvaluationRecord) []EligibilityResult {
	results := make([]EligibilityResult, 0, len(requirementTable))
	for _, req := range requirementTable {
		results = append(results, CheckEligibility(record, req))
	}
	return results
}

// EligibleEvaluators returns the names of all evaluators the record may
// run under, in table order.
func EligibleEvaluators(record *types.EvaluationRecord) []string {
	var names []string
	for _, res := range CheckAll(record) {
		if res.Eligible {
			names = append(names, res.Evaluator)
		}
	}
	return names
}

// FieldPresent implements the presence check for one record field: a
// non-empty string or structured value for query, context and
// ground_truth; a non-empty message sequence or string for response; a
// non-empty sequence for tool definitions and tool calls.
func FieldPresent(record *types.EvaluationRecord, field string) bool {
	switch field {
	case FieldQuery:
		return record.HasQuery()
	case FieldResponse:
		return !record.Response.IsEmpty()
	case FieldContext:
		return record.Context != ""
	case FieldToolDefinitions:
		return len(record.ToolDefinitions) > 0
	case FieldToolCalls:
		return len(record.ToolCalls) > 0
	case FieldGroundTruth:
		return record.GroundTruth != ""
	default:
		return false
	}
}
