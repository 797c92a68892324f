package evaluators

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agenteval/types"
)

func shippedOrderRecord() *types.EvaluationRecord {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &types.EvaluationRecord{
		Query: types.StringQuery("Where is order 12345?"),
		Response: types.MessageResponse([]types.CanonicalMessage{
			types.NewAssistantMessage(now, types.TextItem("Let me check")),
			types.NewAssistantMessage(now, types.ToolCallItem("c1", "check_order_status", map[string]any{"order_number": "12345"})),
			types.NewToolMessage(now, "c1", types.ToolResultItem(json.RawMessage(`{"status":"shipped"}`))),
			types.NewAssistantMessage(now, types.TextItem("Your order has shipped")),
		}),
		ToolDefinitions: []types.ToolDefinition{{
			Name:       "check_order_status",
			Parameters: []types.Parameter{{Name: "order_number", Type: "string"}},
			Required:   []string{"order_number"},
			Strict:     true,
		}},
		ToolCalls: []types.ObservedToolCall{
			{Type: "function_call", ToolCallID: "c1", Name: "check_order_status"},
		},
	}
}

func TestCheckEligibility_ToolCallAccuracy(t *testing.T) {
	req, _ := RequirementFor(ToolCallAccuracy)
	res := CheckEligibility(shippedOrderRecord(), req)
	assert.True(t, res.Eligible)
	assert.NoError(t, res.Err())
}

func TestCheckEligibility_FluencyWithoutQuery(t *testing.T) {
	rec := &types.EvaluationRecord{Response: types.TextResponse("The refund has been processed.")}

	req, _ := RequirementFor(Fluency)
	assert.True(t, CheckEligibility(rec, req).Eligible, "fluency only requires response")

	req, _ = RequirementFor(Coherence)
	res := CheckEligibility(rec, req)
	assert.False(t, res.Eligible)
	assert.Equal(t, []string{FieldQuery}, res.Missing)
}

func TestCheckEligibility_MissingInDeclarationOrder(t *testing.T) {
	rec := &types.EvaluationRecord{} // everything absent

	req, _ := RequirementFor(ToolSelection)
	res := CheckEligibility(rec, req)
	require.False(t, res.Eligible)
	assert.Equal(t, []string{FieldQuery, FieldResponse, FieldToolDefinitions}, res.Missing)

	err := res.Err()
	require.Error(t, err)
	assert.Equal(t, types.ErrMissingRequiredField, types.GetErrorCode(err))
}

func TestCheckEligibility_EmptyValuesCountAbsent(t *testing.T) {
	rec := &types.EvaluationRecord{
		Query:           json.RawMessage(`""`),
		Response:        types.TextResponse(""),
		ToolDefinitions: []types.ToolDefinition{},
		ToolCalls:       []types.ObservedToolCall{},
	}
	req, _ := RequirementFor(ToolCallAccuracy)
	res := CheckEligibility(rec, req)
	assert.False(t, res.Eligible)
	assert.Equal(t, []string{FieldQuery, FieldToolDefinitions}, res.Missing)
}

func TestCheckEligibility_DanglingResultDoesNotAffectToolCallSuccess(t *testing.T) {
	// A response containing a flagged dangling tool result is still a
	// non-empty response.
	rec := &types.EvaluationRecord{
		Response: types.MessageResponse([]types.CanonicalMessage{
			types.NewToolMessage(time.Now(), "c9", types.ToolResultItem(json.RawMessage(`{}`))),
		}),
	}
	req, _ := RequirementFor(ToolCallSuccess)
	assert.True(t, CheckEligibility(rec, req).Eligible)
}

func TestCheckAll_IneligibleNeverBlocksOthers(t *testing.T) {
	rec := &types.EvaluationRecord{Response: types.TextResponse("done")}

	results := CheckAll(rec)
	require.Len(t, results, 12)

	eligible := EligibleEvaluators(rec)
	assert.Equal(t, []string{ToolCallSuccess, Fluency, Groundedness}, eligible)
}

func TestCheckAll_FullRecordEligibleEverywhere(t *testing.T) {
	rec := shippedOrderRecord()
	assert.Equal(t, Names(), EligibleEvaluators(rec))
}

// Exhaustive combination over every presence mask and every requirement
// row: eligibility holds iff every required field passes the presence
// check.
func TestCheckEligibility_Exhaustive(t *testing.T) {
	fields := []string{FieldQuery, FieldResponse, FieldContext, FieldToolDefinitions, FieldToolCalls, FieldGroundTruth}

	for mask := 0; mask < 1<<len(fields); mask++ {
		present := make(map[string]bool, len(fields))
		rec := &types.EvaluationRecord{}
		for i, field := range fields {
			if mask&(1<<i) == 0 {
				continue
			}
			present[field] = true
			switch field {
			case FieldQuery:
				rec.Query = types.StringQuery("q")
			case FieldResponse:
				rec.Response = types.TextResponse("r")
			case FieldContext:
				rec.Context = "ctx"
			case FieldToolDefinitions:
				rec.ToolDefinitions = []types.ToolDefinition{{Name: "t"}}
			case FieldToolCalls:
				rec.ToolCalls = []types.ObservedToolCall{{Type: "function_call", Name: "t"}}
			case FieldGroundTruth:
				rec.GroundTruth = "gt"
			}
		}

		for _, req := range Requirements() {
			wantEligible := true
			var wantMissing []string
			for _, field := range req.Required {
				if !present[field] {
					wantEligible = false
					wantMissing = append(wantMissing, field)
				}
			}
			res := CheckEligibility(rec, req)
			require.Equal(t, wantEligible, res.Eligible,
				"mask %06b evaluator %s", mask, req.Name)
			require.Equal(t, wantMissing, res.Missing,
				"mask %06b evaluator %s", mask, req.Name)
		}
	}
}
