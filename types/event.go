package types

import (
	"encoding/json"
	"time"
)

// EventKind identifies the kind of a raw trace event. The set of kinds is
// closed; decoding any other kind fails with UNKNOWN_EVENT_KIND.
type EventKind string

const (
	// EventText is a free-text segment produced by the assistant.
	EventText EventKind = "text"
	// EventFunctionCall is an invocation of a declared custom tool.
	EventFunctionCall EventKind = "function_call"
	// EventFunctionResult is the result returned for an earlier function call.
	EventFunctionResult EventKind = "function_result"
	// EventBuiltinCall is usage of a built-in capability (e.g. document
	// retrieval) that has no custom tool definition. Whether an event is
	// built-in is decided by the agent runtime that produced the trace,
	// never inferred downstream.
	EventBuiltinCall EventKind = "builtin_call"
)

// TraceEvent is one raw event as emitted by an agent runtime. Which fields
// are meaningful depends on Kind:
//
//	text            Content
//	function_call   Name, Arguments, CallID
//	function_result CallID, Result
//	builtin_call    Builtin, Arguments, CallID (optional), Queries (optional)
type TraceEvent struct {
	Kind      EventKind `json:"kind"`
	CreatedAt time.Time `json:"created_at,omitempty"`

	// Text events.
	Content string `json:"content,omitempty"`

	// Function calls and built-in calls.
	Name      string         `json:"name,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
	CallID    string         `json:"call_id,omitempty"`

	// Function results. Result carries an arbitrary structured value.
	Result json.RawMessage `json:"result,omitempty"`

	// Built-in calls.
	Builtin string   `json:"builtin,omitempty"`
	Queries []string `json:"queries,omitempty"`
}

// NewTextEvent creates a text trace event.
func NewTextEvent(content string) TraceEvent {
	return TraceEvent{Kind: EventText, Content: content}
}

// NewFunctionCallEvent creates a function-call trace event.
func NewFunctionCallEvent(name string, arguments map[string]any, callID string) TraceEvent {
	return TraceEvent{Kind: EventFunctionCall, Name: name, Arguments: arguments, CallID: callID}
}

// NewFunctionResultEvent creates a function-result trace event.
func NewFunctionResultEvent(callID string, result json.RawMessage) TraceEvent {
	return TraceEvent{Kind: EventFunctionResult, CallID: callID, Result: result}
}

// NewBuiltinCallEvent creates a built-in capability trace event.
func NewBuiltinCallEvent(builtin string, arguments map[string]any) TraceEvent {
	return TraceEvent{Kind: EventBuiltinCall, Builtin: builtin, Arguments: arguments}
}

// Validate checks that the event kind is one of the four declared kinds.
func (e TraceEvent) Validate() error {
	switch e.Kind {
	case EventText, EventFunctionCall, EventFunctionResult, EventBuiltinCall:
		return nil
	default:
		return NewErrorf(ErrUnknownEventKind, "unknown trace event kind %q", string(e.Kind))
	}
}

// traceEvent mirrors TraceEvent for decoding without recursing into
// UnmarshalJSON.
type traceEvent TraceEvent

// UnmarshalJSON decodes a trace event, rejecting unrecognized kinds.
func (e *TraceEvent) UnmarshalJSON(data []byte) error {
	var raw traceEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ev := TraceEvent(raw)
	if err := ev.Validate(); err != nil {
		return err
	}
	*e = ev
	return nil
}
