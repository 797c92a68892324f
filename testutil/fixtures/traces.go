package fixtures

import (
	"encoding/json"
	"time"

	"github.com/BaSui01/agenteval/types"
)

// traceStart anchors fixture timestamps so trace output is stable
// across runs.
var traceStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// stamp spaces events one second apart starting at traceStart.
func stamp(events []types.TraceEvent) []types.TraceEvent {
	for i := range events {
		events[i].CreatedAt = traceStart.Add(time.Duration(i) * time.Second)
	}
	return events
}

// OrderStatusQuery is the user query paired with OrderStatusEvents.
const OrderStatusQuery = "Where is my order ORD-2024-5678?"

// OrderStatusEvents is a complete single-tool trace: the agent looks up
// an order and reports that it shipped.
func OrderStatusEvents() []types.TraceEvent {
	return stamp([]types.TraceEvent{
		types.NewTextEvent("Let me look that up for you."),
		types.NewFunctionCallEvent("check_order_status", map[string]any{"order_number": "ORD-2024-5678"}, "call_1"),
		types.NewFunctionResultEvent("call_1", json.RawMessage(`{"status":"shipped","carrier":"FedEx","eta":"2026-03-03"}`)),
		types.NewTextEvent("Your order ORD-2024-5678 shipped via FedEx and should arrive by March 3."),
	})
}

// RefundQuery is the user query paired with RefundEvents.
const RefundQuery = "I want a refund for ORD-2024-5678, it arrived damaged. Email me confirmation at sam@example.com."

// RefundEvents is a multi-tool trace: a refund followed by a
// confirmation email.
func RefundEvents() []types.TraceEvent {
	return stamp([]types.TraceEvent{
		types.NewFunctionCallEvent("process_refund", map[string]any{
			"order_number": "ORD-2024-5678",
			"reason":       "arrived damaged",
		}, "call_1"),
		types.NewFunctionResultEvent("call_1", json.RawMessage(`{"refund_id":"RF-991","amount":129.99}`)),
		types.NewFunctionCallEvent("send_email", map[string]any{
			"to":      "sam@example.com",
			"subject": "Refund confirmation",
			"body":    "Your refund RF-991 for order ORD-2024-5678 has been processed.",
			"cc":      "",
		}, "call_2"),
		types.NewFunctionResultEvent("call_2", json.RawMessage(`{"sent":true}`)),
		types.NewTextEvent("Done. Your refund is processed and a confirmation email is on its way."),
	})
}

// ReturnPolicyQuery is the user query paired with ReturnPolicyEvents.
const ReturnPolicyQuery = "What is your return policy for opened items?"

// ReturnPolicyEvents is a retrieval trace: the agent answers from a
// built-in document search rather than a declared tool.
func ReturnPolicyEvents() []types.TraceEvent {
	search := types.NewBuiltinCallEvent("file_search", nil)
	search.Queries = []string{"return policy opened items", "restocking fee"}
	return stamp([]types.TraceEvent{
		search,
		types.NewTextEvent("Opened items can be returned within 30 days with a 15% restocking fee."),
	})
}
