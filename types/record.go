package types

import (
	"bytes"
	"encoding/json"
)

// Response is the response field of an evaluation record: either a bare
// string for simple cases or an ordered sequence of canonical messages. It
// marshals as whichever form it holds.
type Response struct {
	Text     string
	Messages []CanonicalMessage
}

// TextResponse creates a bare-string response.
func TextResponse(text string) Response {
	return Response{Text: text}
}

// MessageResponse creates a message-sequence response.
func MessageResponse(messages []CanonicalMessage) Response {
	return Response{Messages: messages}
}

// IsEmpty reports whether the response carries neither text nor messages.
func (r Response) IsEmpty() bool {
	return r.Text == "" && len(r.Messages) == 0
}

// MarshalJSON encodes the message sequence when present, the bare string
// otherwise.
func (r Response) MarshalJSON() ([]byte, error) {
	if len(r.Messages) > 0 {
		return json.Marshal(r.Messages)
	}
	return json.Marshal(r.Text)
}

// UnmarshalJSON accepts either a JSON string or an array of canonical
// messages.
func (r *Response) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &r.Messages)
	}
	return json.Unmarshal(trimmed, &r.Text)
}

// EvaluationRecord is the unit submitted for evaluation. Records are
// serialized once for submission and never mutated afterwards.
type EvaluationRecord struct {
	// Query is the user input, either a JSON string or a structured value.
	Query json.RawMessage `json:"query,omitempty"`

	// Response is the agent's answer: canonical messages or a bare string.
	Response Response `json:"response,omitempty"`

	// Context is optional free text assembled from retrieval activity.
	Context string `json:"context,omitempty"`

	// ToolDefinitions are the custom tools available during the run,
	// keyed by unique name.
	ToolDefinitions []ToolDefinition `json:"tool_definitions,omitempty"`

	// ToolCalls are the invocations actually observed, including built-in
	// tools that never appear in Response content.
	ToolCalls []ObservedToolCall `json:"tool_calls,omitempty"`

	// GroundTruth is an optional reference answer.
	GroundTruth string `json:"ground_truth,omitempty"`
}

// StringQuery encodes a plain-text query for a record.
func StringQuery(query string) json.RawMessage {
	data, _ := json.Marshal(query)
	return data
}

// HasQuery reports whether the query holds a non-empty value. An empty
// string, empty object/array or JSON null counts as absent.
func (r *EvaluationRecord) HasQuery() bool {
	return rawPresent(r.Query)
}

// Validate enforces the record's referential invariant: every tool name
// referenced by response content or by observed custom tool calls must
// correspond to a tool definition, and definition names must be unique.
// Built-in calls are exempt; they carry no definition by design of the
// producing runtime.
func (r *EvaluationRecord) Validate() error {
	defined := make(map[string]struct{}, len(r.ToolDefinitions))
	for _, def := range r.ToolDefinitions {
		if _, ok := defined[def.Name]; ok {
			return NewErrorf(ErrDuplicateTool, "duplicate tool definition %q", def.Name)
		}
		defined[def.Name] = struct{}{}
	}
	for _, msg := range r.Response.Messages {
		for _, item := range msg.Content {
			if item.Type != ContentToolCall {
				continue
			}
			if _, ok := defined[item.Name]; !ok {
				return NewErrorf(ErrUndefinedTool,
					"response references tool %q with no definition", item.Name)
			}
		}
	}
	for _, call := range r.ToolCalls {
		if call.Builtin {
			continue
		}
		if _, ok := defined[call.Name]; !ok {
			return NewErrorf(ErrUndefinedTool,
				"observed call references tool %q with no definition", call.Name)
		}
	}
	return nil
}

// rawPresent reports whether a raw JSON value is meaningfully non-empty.
func rawPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return false
	case bytes.Equal(trimmed, []byte("null")):
		return false
	case bytes.Equal(trimmed, []byte(`""`)):
		return false
	case bytes.Equal(trimmed, []byte("{}")):
		return false
	case bytes.Equal(trimmed, []byte("[]")):
		return false
	}
	return true
}
