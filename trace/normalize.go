package trace

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/agenteval/types"
)

// Registry is the set of declared custom tool names. *tools.Registry
// satisfies it.
type Registry interface {
	Has(name string) bool
}

// Warning records one recoverable anomaly found while normalizing a trace.
type Warning struct {
	Code       types.ErrorCode `json:"code"`
	Message    string          `json:"message"`
	EventIndex int             `json:"event_index"`
	CallID     string          `json:"call_id,omitempty"`
}

// Result is the outcome of normalizing one trace.
type Result struct {
	// Messages is the canonical message sequence, in original temporal
	// order. Built-in capability events never appear here.
	Messages []types.CanonicalMessage

	// ToolCalls tracks every invocation observed in the trace, custom and
	// built-in alike, independent of response content.
	ToolCalls []types.ObservedToolCall

	// Context is free text assembled from retrieval activity: search
	// queries issued by built-in tools plus the assistant's text output.
	Context string

	// Warnings lists the anomalies encountered. An empty list means the
	// trace was structurally clean.
	Warnings []Warning
}

// Unanswered returns the ids of tool calls that have no matching result
// message, in call order. A truncated run legitimately leaves calls
// unanswered; this is a completeness flag, not an error.
func (r Result) Unanswered() []string {
	answered := make(map[string]struct{})
	for _, msg := range r.Messages {
		if msg.Role == types.RoleTool && msg.ToolCallID != "" {
			answered[msg.ToolCallID] = struct{}{}
		}
	}
	var open []string
	for _, msg := range r.Messages {
		for _, id := range msg.ToolCallIDs() {
			if _, ok := answered[id]; !ok {
				open = append(open, id)
			}
		}
	}
	return open
}

// Normalizer converts raw traces into canonical message sequences. It is
// stateless and safe for concurrent use.
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a normalizer. A nil logger disables logging.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

// Normalize converts a raw event sequence into canonical messages.
// registry, when non-nil, is consulted to flag function calls that name an
// undeclared tool; built-in events are identified by their event kind and
// never checked against it.
//
// Anomaly handling: a reused call id drops the offending call (fatal for
// that message only); a result referencing an unknown call id is flagged
// but still emitted, preserving trace fidelity; a second result for an
// already answered call is dropped so that every call keeps at most one
// result; unknown event kinds are skipped. All of these surface as
// warnings on the result.
func (n *Normalizer) Normalize(events []types.TraceEvent, registry Registry) Result {
	var (
		res      Result
		seen     = make(map[string]struct{})
		answered = make(map[string]struct{})
		context  []string
		last     time.Time
	)

	warn := func(code types.ErrorCode, index int, callID, format string, args ...any) {
		w := Warning{
			Code:       code,
			Message:    fmt.Sprintf(format, args...),
			EventIndex: index,
			CallID:     callID,
		}
		res.Warnings = append(res.Warnings, w)
		n.logger.Warn("trace anomaly",
			zap.String("code", string(code)),
			zap.Int("event_index", index),
			zap.String("call_id", callID),
			zap.String("detail", w.Message))
	}

	// Timestamps must be monotonically non-decreasing within the trace;
	// an event timestamp earlier than its predecessor is clamped.
	stamp := func(e types.TraceEvent) time.Time {
		ts := e.CreatedAt
		if ts.Before(last) {
			ts = last
		}
		last = ts
		return ts
	}

	for i, e := range events {
		switch e.Kind {
		case types.EventText:
			res.Messages = append(res.Messages,
				types.NewAssistantMessage(stamp(e), types.TextItem(e.Content)))
			if e.Content != "" {
				context = append(context, e.Content)
			}

		case types.EventFunctionCall:
			if _, dup := seen[e.CallID]; dup {
				warn(types.ErrDuplicateCallID, i, e.CallID,
					"call id %q reused by %s", e.CallID, e.Name)
				continue
			}
			seen[e.CallID] = struct{}{}
			if registry != nil && !registry.Has(e.Name) {
				warn(types.ErrUndefinedTool, i, e.CallID,
					"function call names undeclared tool %q", e.Name)
			}
			res.Messages = append(res.Messages,
				types.NewAssistantMessage(stamp(e), types.ToolCallItem(e.CallID, e.Name, e.Arguments)))
			res.ToolCalls = append(res.ToolCalls, types.ObservedToolCall{
				Type:       "function_call",
				ToolCallID: e.CallID,
				Name:       e.Name,
				Arguments:  e.Arguments,
			})

		case types.EventFunctionResult:
			if _, ok := seen[e.CallID]; !ok {
				warn(types.ErrDanglingToolResult, i, e.CallID,
					"result references unknown call id %q", e.CallID)
			} else if _, done := answered[e.CallID]; done {
				warn(types.ErrDuplicateResult, i, e.CallID,
					"call id %q already has a result", e.CallID)
				continue
			}
			answered[e.CallID] = struct{}{}
			res.Messages = append(res.Messages,
				types.NewToolMessage(stamp(e), e.CallID, types.ToolResultItem(e.Result)))

		case types.EventBuiltinCall:
			// Built-in tools have no definition for evaluators to check
			// response content against, so they are tracked only.
			res.ToolCalls = append(res.ToolCalls, types.ObservedToolCall{
				Type:       e.Builtin,
				ToolCallID: e.CallID,
				Arguments:  e.Arguments,
				Queries:    e.Queries,
				Builtin:    true,
			})
			if part := builtinContext(e); part != "" {
				context = append(context, part)
			}

		default:
			warn(types.ErrUnknownEventKind, i, e.CallID,
				"unknown event kind %q", string(e.Kind))
		}
	}

	res.Context = strings.Join(context, " ")
	return res
}

// builtinContext renders the retrieval activity of a built-in call as a
// context fragment.
func builtinContext(e types.TraceEvent) string {
	if len(e.Queries) > 0 {
		return fmt.Sprintf("%s queries: %s", e.Builtin, strings.Join(e.Queries, ", "))
	}
	if q, ok := e.Arguments["query"].(string); ok && q != "" {
		return fmt.Sprintf("%s query: %s", e.Builtin, q)
	}
	return ""
}

// EventsFromMessages converts a canonical message sequence back into raw
// trace events. Normalizing the produced events yields the identical
// message sequence, which makes round-trip debugging of datasets possible.
func EventsFromMessages(messages []types.CanonicalMessage) []types.TraceEvent {
	var events []types.TraceEvent
	for _, msg := range messages {
		for _, item := range msg.Content {
			switch item.Type {
			case types.ContentText:
				events = append(events, types.TraceEvent{
					Kind:      types.EventText,
					CreatedAt: msg.CreatedAt,
					Content:   item.Text,
				})
			case types.ContentToolCall:
				events = append(events, types.TraceEvent{
					Kind:      types.EventFunctionCall,
					CreatedAt: msg.CreatedAt,
					Name:      item.Name,
					Arguments: item.Arguments,
					CallID:    item.ToolCallID,
				})
			case types.ContentToolResult:
				events = append(events, types.TraceEvent{
					Kind:      types.EventFunctionResult,
					CreatedAt: msg.CreatedAt,
					CallID:    msg.ToolCallID,
					Result:    item.ToolResult,
				})
			}
		}
	}
	return events
}
