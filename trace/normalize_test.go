package trace

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agenteval/types"
)

// stubRegistry implements Registry over a fixed name set.
type stubRegistry map[string]struct{}

func (s stubRegistry) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func registryWith(names ...string) stubRegistry {
	s := make(stubRegistry, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func TestNormalize_OrderStatusTrace(t *testing.T) {
	events := []types.TraceEvent{
		types.NewTextEvent("Let me check"),
		types.NewFunctionCallEvent("check_order_status", map[string]any{"order_number": "12345"}, "c1"),
		types.NewFunctionResultEvent("c1", json.RawMessage(`{"status":"shipped"}`)),
		types.NewTextEvent("Your order has shipped"),
	}

	res := NewNormalizer(nil).Normalize(events, registryWith("check_order_status"))

	require.Len(t, res.Messages, 4)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, types.RoleAssistant, res.Messages[0].Role)
	assert.Equal(t, types.ContentText, res.Messages[0].Content[0].Type)

	call := res.Messages[1]
	assert.Equal(t, types.RoleAssistant, call.Role)
	require.Len(t, call.Content, 1)
	assert.Equal(t, types.ContentToolCall, call.Content[0].Type)
	assert.Equal(t, "c1", call.Content[0].ToolCallID)
	assert.Equal(t, "check_order_status", call.Content[0].Name)

	result := res.Messages[2]
	assert.Equal(t, types.RoleTool, result.Role)
	assert.Equal(t, "c1", result.ToolCallID)
	assert.Equal(t, types.ContentToolResult, result.Content[0].Type)

	assert.Equal(t, types.ContentText, res.Messages[3].Content[0].Type)

	require.Len(t, res.ToolCalls, 1)
	assert.Equal(t, "function_call", res.ToolCalls[0].Type)
	assert.False(t, res.ToolCalls[0].Builtin)
	assert.Empty(t, res.Unanswered())
}

func TestNormalize_BuiltinCallsNeverEnterMessages(t *testing.T) {
	events := []types.TraceEvent{
		types.NewBuiltinCallEvent("file_search", nil),
		types.NewTextEvent("Per the return policy, you have 30 days."),
	}
	events[0].Queries = []string{"return policy", "warranty"}

	res := NewNormalizer(nil).Normalize(events, nil)

	require.Len(t, res.Messages, 1)
	assert.Equal(t, types.ContentText, res.Messages[0].Content[0].Type)

	require.Len(t, res.ToolCalls, 1)
	assert.True(t, res.ToolCalls[0].Builtin)
	assert.Equal(t, "file_search", res.ToolCalls[0].Type)
	assert.Contains(t, res.Context, "file_search queries: return policy, warranty")
}

func TestNormalize_ContextFromBuiltinQueryArgument(t *testing.T) {
	events := []types.TraceEvent{
		types.NewBuiltinCallEvent("azure_ai_search", map[string]any{"query": "store hours"}),
	}
	res := NewNormalizer(nil).Normalize(events, nil)
	assert.Equal(t, "azure_ai_search query: store hours", res.Context)
}

func TestNormalize_DuplicateCallID(t *testing.T) {
	events := []types.TraceEvent{
		types.NewFunctionCallEvent("check_order_status", nil, "c1"),
		types.NewFunctionCallEvent("cancel_order", nil, "c1"),
		types.NewFunctionResultEvent("c1", json.RawMessage(`{}`)),
	}

	res := NewNormalizer(nil).Normalize(events, nil)

	// The second call is dropped; normalization continues.
	require.Len(t, res.Messages, 2)
	assert.Equal(t, "check_order_status", res.Messages[0].Content[0].Name)
	assert.Equal(t, types.RoleTool, res.Messages[1].Role)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, types.ErrDuplicateCallID, res.Warnings[0].Code)
	assert.Equal(t, 1, res.Warnings[0].EventIndex)
	assert.Len(t, res.ToolCalls, 1)
}

func TestNormalize_DanglingToolResultStillEmitted(t *testing.T) {
	events := []types.TraceEvent{
		types.NewFunctionResultEvent("c9", json.RawMessage(`{"status":"unknown"}`)),
	}

	res := NewNormalizer(nil).Normalize(events, nil)

	require.Len(t, res.Messages, 1)
	assert.Equal(t, types.RoleTool, res.Messages[0].Role)
	assert.Equal(t, "c9", res.Messages[0].ToolCallID)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, types.ErrDanglingToolResult, res.Warnings[0].Code)
	assert.Equal(t, "c9", res.Warnings[0].CallID)
}

func TestNormalize_SecondResultForCallDropped(t *testing.T) {
	events := []types.TraceEvent{
		types.NewFunctionCallEvent("check_order_status", nil, "c1"),
		types.NewFunctionResultEvent("c1", json.RawMessage(`{"try":1}`)),
		types.NewFunctionResultEvent("c1", json.RawMessage(`{"try":2}`)),
	}

	res := NewNormalizer(nil).Normalize(events, nil)

	require.Len(t, res.Messages, 2)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, types.ErrDuplicateResult, res.Warnings[0].Code)
}

func TestNormalize_UnansweredCalls(t *testing.T) {
	events := []types.TraceEvent{
		types.NewFunctionCallEvent("check_order_status", nil, "c1"),
		types.NewFunctionCallEvent("send_email", nil, "c2"),
		types.NewFunctionResultEvent("c1", json.RawMessage(`{}`)),
	}

	res := NewNormalizer(nil).Normalize(events, nil)

	assert.Empty(t, res.Warnings, "a truncated run is not an error")
	assert.Equal(t, []string{"c2"}, res.Unanswered())
}

func TestNormalize_UndeclaredToolFlagged(t *testing.T) {
	events := []types.TraceEvent{
		types.NewFunctionCallEvent("mystery_tool", nil, "c1"),
	}

	res := NewNormalizer(nil).Normalize(events, registryWith("check_order_status"))

	// Flagged but still emitted, best effort.
	require.Len(t, res.Messages, 1)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, types.ErrUndefinedTool, res.Warnings[0].Code)
}

func TestNormalize_UnknownKindSkipped(t *testing.T) {
	events := []types.TraceEvent{
		{Kind: "telepathy"},
		types.NewTextEvent("hello"),
	}

	res := NewNormalizer(nil).Normalize(events, nil)

	require.Len(t, res.Messages, 1)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, types.ErrUnknownEventKind, res.Warnings[0].Code)
}

func TestNormalize_TimestampsMonotonic(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []types.TraceEvent{
		{Kind: types.EventText, Content: "a", CreatedAt: base.Add(2 * time.Second)},
		{Kind: types.EventText, Content: "b", CreatedAt: base}, // clock went backwards
		{Kind: types.EventText, Content: "c", CreatedAt: base.Add(5 * time.Second)},
	}

	res := NewNormalizer(nil).Normalize(events, nil)

	require.Len(t, res.Messages, 3)
	for i := 1; i < len(res.Messages); i++ {
		assert.False(t, res.Messages[i].CreatedAt.Before(res.Messages[i-1].CreatedAt),
			"timestamps must be non-decreasing")
	}
}

func TestNormalize_PureAndDeterministic(t *testing.T) {
	events := []types.TraceEvent{
		types.NewTextEvent("Let me check"),
		types.NewFunctionCallEvent("check_order_status", map[string]any{"order_number": "12345"}, "c1"),
		types.NewFunctionResultEvent("c1", json.RawMessage(`{"status":"shipped"}`)),
	}

	n := NewNormalizer(nil)
	first := n.Normalize(events, nil)
	second := n.Normalize(events, nil)
	assert.Equal(t, first, second)
}

func TestEventsFromMessages_RoundTrip(t *testing.T) {
	events := []types.TraceEvent{
		types.NewTextEvent("Let me check"),
		types.NewFunctionCallEvent("check_order_status", map[string]any{"order_number": "12345"}, "c1"),
		types.NewFunctionResultEvent("c1", json.RawMessage(`{"status":"shipped"}`)),
		types.NewTextEvent("Your order has shipped"),
	}

	n := NewNormalizer(nil)
	first := n.Normalize(events, nil)
	second := n.Normalize(EventsFromMessages(first.Messages), nil)

	assert.Equal(t, first.Messages, second.Messages)
}
