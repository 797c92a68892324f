package trace

import (
	"encoding/json"
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/BaSui01/agenteval/types"
)

// genCleanTrace draws a structurally clean trace: unique call ids, results
// only for earlier calls and at most once per call, builtins mixed in.
// Returns the events plus the expected call and result counts.
func genCleanTrace(rt *rapid.T) (events []types.TraceEvent, calls, results int) {
	numCalls := rapid.IntRange(0, 8).Draw(rt, "numCalls")

	var pending []string
	answered := 0
	steps := rapid.IntRange(numCalls, numCalls*2+4).Draw(rt, "steps")

	for i := 0; i < steps; i++ {
		switch {
		case calls < numCalls && rapid.Bool().Draw(rt, fmt.Sprintf("emitCall%d", i)):
			id := fmt.Sprintf("c%d", calls)
			events = append(events, types.NewFunctionCallEvent(
				"check_order_status",
				map[string]any{"order_number": fmt.Sprintf("%d", calls)},
				id,
			))
			pending = append(pending, id)
			calls++
		case len(pending) > 0 && rapid.Bool().Draw(rt, fmt.Sprintf("emitResult%d", i)):
			id := pending[0]
			pending = pending[1:]
			events = append(events, types.NewFunctionResultEvent(id, json.RawMessage(`{"ok":true}`)))
			answered++
		case rapid.Bool().Draw(rt, fmt.Sprintf("emitBuiltin%d", i)):
			ev := types.NewBuiltinCallEvent("file_search", nil)
			ev.Queries = []string{"return policy"}
			events = append(events, ev)
		default:
			events = append(events, types.NewTextEvent(
				rapid.StringMatching(`[a-zA-Z0-9 ]{1,40}`).Draw(rt, fmt.Sprintf("text%d", i))))
		}
	}
	return events, calls, answered
}

// For any clean trace with N call events and M matching result events,
// normalization produces exactly N tool_call messages and M tool_result
// messages, order preserved.
func TestProperty_Normalize_CallAndResultCounts(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		events, wantCalls, wantResults := genCleanTrace(rt)

		res := NewNormalizer(nil).Normalize(events, nil)

		if len(res.Warnings) != 0 {
			rt.Fatalf("clean trace produced warnings: %v", res.Warnings)
		}

		gotCalls, gotResults := 0, 0
		for _, msg := range res.Messages {
			for _, item := range msg.Content {
				switch item.Type {
				case types.ContentToolCall:
					gotCalls++
				case types.ContentToolResult:
					gotResults++
				}
			}
		}
		if gotCalls != wantCalls {
			rt.Fatalf("expected %d tool_call messages, got %d", wantCalls, gotCalls)
		}
		if gotResults != wantResults {
			rt.Fatalf("expected %d tool_result messages, got %d", wantResults, gotResults)
		}
		if len(res.Unanswered()) != wantCalls-wantResults {
			rt.Fatalf("expected %d unanswered calls, got %d",
				wantCalls-wantResults, len(res.Unanswered()))
		}
	})
}

// Message order mirrors event order: the i-th non-builtin event maps to
// the i-th canonical message.
func TestProperty_Normalize_OrderPreserved(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		events, _, _ := genCleanTrace(rt)

		res := NewNormalizer(nil).Normalize(events, nil)

		j := 0
		for _, e := range events {
			if e.Kind == types.EventBuiltinCall {
				continue
			}
			msg := res.Messages[j]
			switch e.Kind {
			case types.EventText:
				if msg.Content[0].Type != types.ContentText || msg.Content[0].Text != e.Content {
					rt.Fatalf("message %d out of order: %+v", j, msg)
				}
			case types.EventFunctionCall:
				if msg.Content[0].Type != types.ContentToolCall || msg.Content[0].ToolCallID != e.CallID {
					rt.Fatalf("message %d out of order: %+v", j, msg)
				}
			case types.EventFunctionResult:
				if msg.Content[0].Type != types.ContentToolResult || msg.ToolCallID != e.CallID {
					rt.Fatalf("message %d out of order: %+v", j, msg)
				}
			}
			j++
		}
		if j != len(res.Messages) {
			rt.Fatalf("expected %d messages, got %d", j, len(res.Messages))
		}
	})
}

// Built-in events never appear in the message sequence and always appear
// in the tool-call tracking sequence.
func TestProperty_Normalize_BuiltinsSegregated(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		events, wantCalls, _ := genCleanTrace(rt)

		res := NewNormalizer(nil).Normalize(events, nil)

		builtins := 0
		for _, e := range events {
			if e.Kind == types.EventBuiltinCall {
				builtins++
			}
		}
		gotBuiltins := 0
		for _, call := range res.ToolCalls {
			if call.Builtin {
				gotBuiltins++
			}
		}
		if gotBuiltins != builtins {
			rt.Fatalf("expected %d builtin tool calls, got %d", builtins, gotBuiltins)
		}
		if len(res.ToolCalls) != builtins+wantCalls {
			rt.Fatalf("tool call tracking incomplete: %d vs %d", len(res.ToolCalls), builtins+wantCalls)
		}
	})
}

// Re-normalizing an already-normalized sequence yields an identical
// sequence.
func TestProperty_Normalize_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		events, _, _ := genCleanTrace(rt)

		n := NewNormalizer(nil)
		first := n.Normalize(events, nil)
		second := n.Normalize(EventsFromMessages(first.Messages), nil)

		if len(first.Messages) != len(second.Messages) {
			rt.Fatalf("message count changed: %d vs %d", len(first.Messages), len(second.Messages))
		}
		for i := range first.Messages {
			a, b := first.Messages[i], second.Messages[i]
			if a.Role != b.Role || a.ToolCallID != b.ToolCallID || len(a.Content) != len(b.Content) {
				rt.Fatalf("message %d changed: %+v vs %+v", i, a, b)
			}
			for k := range a.Content {
				if a.Content[k].Type != b.Content[k].Type ||
					a.Content[k].Text != b.Content[k].Text ||
					a.Content[k].ToolCallID != b.Content[k].ToolCallID {
					rt.Fatalf("content %d/%d changed", i, k)
				}
			}
		}
	})
}
