package evaluators

// Record field names referenced by evaluator requirements.
const (
	FieldQuery           = "query"
	FieldResponse        = "response"
	FieldContext         = "context"
	FieldToolDefinitions = "tool_definitions"
	FieldToolCalls       = "tool_calls"
	FieldGroundTruth     = "ground_truth"
)

// Evaluator names. The set spans tool-correctness, task-correctness and
// quality axes and is fixed; unknown names are rejected wherever they are
// accepted as input.
const (
	ToolCallAccuracy      = "tool_call_accuracy"
	ToolSelection         = "tool_selection"
	ToolInputAccuracy     = "tool_input_accuracy"
	ToolOutputUtilization = "tool_output_utilization"
	ToolCallSuccess       = "tool_call_success"
	TaskCompletion        = "task_completion"
	TaskAdherence         = "task_adherence"
	Coherence             = "coherence"
	Fluency               = "fluency"
	Relevance             = "relevance"
	Groundedness          = "groundedness"
	IntentResolution      = "intent_resolution"
)

// Requirement declares which record fields an evaluator needs. Required
// fields gate eligibility; optional fields are forwarded when present.
// Field order within each set is the declaration order and is preserved in
// diagnostics.
type Requirement struct {
	Name     string   `json:"name"`
	Required []string `json:"required"`
	Optional []string `json:"optional,omitempty"`
}

// requirementTable is the authoritative requirement declaration, one row
// per evaluator kind.
var requirementTable = []Requirement{
	{
		Name:     ToolCallAccuracy,
		Required: []string{FieldQuery, FieldToolDefinitions},
		Optional: []string{FieldToolCalls, FieldResponse},
	},
	{
		Name:     ToolSelection,
		Required: []string{FieldQuery, FieldResponse, FieldToolDefinitions},
		Optional: []string{FieldToolCalls},
	},
	{
		Name:     ToolInputAccuracy,
		Required: []string{FieldQuery, FieldResponse, FieldToolDefinitions},
	},
	{
		Name:     ToolOutputUtilization,
		Required: []string{FieldQuery, FieldResponse},
		Optional: []string{FieldToolDefinitions},
	},
	{
		Name:     ToolCallSuccess,
		Required: []string{FieldResponse},
		Optional: []string{FieldToolDefinitions},
	},
	{
		Name:     TaskCompletion,
		Required: []string{FieldQuery, FieldResponse},
		Optional: []string{FieldToolDefinitions},
	},
	{
		Name:     TaskAdherence,
		Required: []string{FieldQuery, FieldResponse},
		Optional: []string{FieldToolDefinitions},
	},
	{
		Name:     Coherence,
		Required: []string{FieldQuery, FieldResponse},
	},
	{
		Name:     Fluency,
		Required: []string{FieldResponse},
		Optional: []string{FieldQuery},
	},
	{
		Name:     Relevance,
		Required: []string{FieldQuery, FieldResponse},
	},
	{
		Name:     Groundedness,
		Required: []string{FieldResponse},
		Optional: []string{FieldContext, FieldQuery, FieldToolDefinitions},
	},
	{
		Name:     IntentResolution,
		Required: []string{FieldQuery, FieldResponse},
		Optional: []string{FieldToolDefinitions},
	},
}

var requirementIndex = func() map[string]Requirement {
	index := make(map[string]Requirement, len(requirementTable))
	for _, req := range requirementTable {
		index[req.Name] = req
	}
	return index
}()

// Requirements returns the full requirement table in declaration order.
// The returned slice is a copy; callers cannot mutate the table.
func Requirements() []Requirement {
	out := make([]Requirement, len(requirementTable))
	copy(out, requirementTable)
	return out
}

// RequirementFor returns the requirement row for a single evaluator.
func RequirementFor(name string) (Requirement, bool) {
	req, ok := requirementIndex[name]
	return req, ok
}

// Names returns all evaluator names in table order.
func Names() []string {
	names := make([]string, len(requirementTable))
	for i, req := range requirementTable {
		names[i] = req.Name
	}
	return names
}
