package types

import (
	"encoding/json"
	"time"
)

// Role represents the role of a message participant.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ContentType identifies the variant of a ContentItem.
type ContentType string

const (
	ContentText       ContentType = "text"
	ContentToolCall   ContentType = "tool_call"
	ContentToolResult ContentType = "tool_result"
)

// ContentItem is one element of a canonical message's content. It is a
// closed tagged variant: exactly one of the text, tool_call or tool_result
// field sets is populated, selected by Type.
type ContentItem struct {
	Type ContentType `json:"type"`

	// Text items.
	Text string `json:"text,omitempty"`

	// Tool-call items.
	ToolCallID string         `json:"tool_call_id,omitempty"`
	Name       string         `json:"name,omitempty"`
	Arguments  map[string]any `json:"arguments,omitempty"`

	// Tool-result items. The result is an arbitrary structured value.
	ToolResult json.RawMessage `json:"tool_result,omitempty"`
}

// TextItem creates a text content item.
func TextItem(text string) ContentItem {
	return ContentItem{Type: ContentText, Text: text}
}

// ToolCallItem creates a tool-call content item.
func ToolCallItem(callID, name string, arguments map[string]any) ContentItem {
	return ContentItem{Type: ContentToolCall, ToolCallID: callID, Name: name, Arguments: arguments}
}

// ToolResultItem creates a tool-result content item.
func ToolResultItem(result json.RawMessage) ContentItem {
	return ContentItem{Type: ContentToolResult, ToolResult: result}
}

type contentItem ContentItem

// UnmarshalJSON decodes a content item, rejecting unrecognized types.
func (c *ContentItem) UnmarshalJSON(data []byte) error {
	var raw contentItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case ContentText, ContentToolCall, ContentToolResult:
	default:
		return NewErrorf(ErrUnknownEventKind, "unknown content item type %q", string(raw.Type))
	}
	*c = ContentItem(raw)
	return nil
}

// CanonicalMessage is the normalized, evaluator-ready representation of one
// trace step. Messages are created once during trace normalization and are
// immutable thereafter. Within a trace, CreatedAt is monotonically
// non-decreasing and content order is significant.
type CanonicalMessage struct {
	CreatedAt time.Time     `json:"createdAt"`
	RunID     string        `json:"run_id,omitempty"`
	Role      Role          `json:"role"`
	Content   []ContentItem `json:"content"`

	// ToolCallID is present only on tool-result messages and references a
	// tool call emitted earlier in the same trace.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// NewAssistantMessage creates an assistant message with the given content.
func NewAssistantMessage(createdAt time.Time, content ...ContentItem) CanonicalMessage {
	return CanonicalMessage{CreatedAt: createdAt, Role: RoleAssistant, Content: content}
}

// NewToolMessage creates a tool-result message referencing an earlier call.
func NewToolMessage(createdAt time.Time, toolCallID string, content ...ContentItem) CanonicalMessage {
	return CanonicalMessage{CreatedAt: createdAt, Role: RoleTool, Content: content, ToolCallID: toolCallID}
}

// ToolCallIDs returns the ids of all tool-call items in the message, in
// content order.
func (m CanonicalMessage) ToolCallIDs() []string {
	var ids []string
	for _, item := range m.Content {
		if item.Type == ContentToolCall {
			ids = append(ids, item.ToolCallID)
		}
	}
	return ids
}
