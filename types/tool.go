package types

// Parameter declares one parameter of a tool definition. Parameters are
// kept as an ordered list so that declaration order is stable in the wire
// form and duplicate names are detectable at lint time.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// ToolDefinition declares a callable capability: its name, description,
// parameter schema and strictness flag. Under strict mode every declared
// parameter must appear in Required; that invariant is enforced by the
// tools package at registration time, never at evaluation time.
type ToolDefinition struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty"`
	Required    []string    `json:"required,omitempty"`
	Strict      bool        `json:"strict,omitempty"`
}

// ParameterNames returns the declared parameter names in declaration order.
func (d ToolDefinition) ParameterNames() []string {
	names := make([]string, len(d.Parameters))
	for i, p := range d.Parameters {
		names[i] = p.Name
	}
	return names
}

// EvalFormat returns the definition in the wire form consumed by the
// evaluation service: a function declaration with a JSON-schema parameters
// object.
func (d ToolDefinition) EvalFormat() map[string]any {
	properties := make(map[string]any, len(d.Parameters))
	for _, p := range d.Parameters {
		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		properties[p.Name] = prop
	}
	required := d.Required
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":        "function",
		"name":        d.Name,
		"description": d.Description,
		"parameters": map[string]any{
			"type":                 "object",
			"properties":           properties,
			"required":             required,
			"additionalProperties": false,
		},
	}
}

// ObservedToolCall is one tool invocation actually observed during a run,
// independent of whether it appears in response content. Built-in tools
// (file search, retrieval) are tracked here only and are never embedded in
// response messages, since they have no definition for evaluators to check
// against.
type ObservedToolCall struct {
	// Type is "function_call" for custom tools, or the built-in kind
	// (e.g. "file_search") for built-in capabilities.
	Type       string         `json:"type"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	Name       string         `json:"name,omitempty"`
	Arguments  map[string]any `json:"arguments,omitempty"`
	Queries    []string       `json:"queries,omitempty"`

	// Builtin marks calls that have no custom tool definition. The flag is
	// set from the raw event kind, as decided by the agent runtime.
	Builtin bool `json:"builtin,omitempty"`
}
