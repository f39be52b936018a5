package entity

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Valid reports whether r is one of the four conversation roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	}
	return false
}

// Message is a single turn of a conversation. A conversation is owned by one
// in-flight request and is never persisted.
type Message struct {
	// Role is the sender role (system/user/assistant/tool).
	Role Role `json:"role"`

	// Content is the text content. Assistant turns that only carry tool calls
	// leave it empty, which is sent to the provider as null content.
	Content string `json:"content"`

	// Name is the tool name on tool-role messages.
	Name string `json:"name,omitempty"`

	// ToolCalls are tool invocations requested by the assistant.
	// Only present when Role == RoleAssistant and the model wants to call tools.
	ToolCalls []*ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID references the ToolCall this message answers.
	// Only present when Role == RoleTool.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// Conversation is an ordered message list.
type Conversation []*Message

// HasSystem reports whether any message has the system role.
func (c Conversation) HasSystem() bool {
	for _, m := range c {
		if m != nil && m.Role == RoleSystem {
			return true
		}
	}
	return false
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) *Message {
	return &Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message, optionally carrying tool calls.
func NewAssistantMessage(content string, calls ...*ToolCall) *Message {
	return &Message{Role: RoleAssistant, Content: content, ToolCalls: calls}
}

// NewToolMessage creates a tool result message.
func NewToolMessage(toolCallID, name, content string) *Message {
	return &Message{
		Role:       RoleTool,
		Content:    content,
		Name:       name,
		ToolCallID: toolCallID,
	}
}
