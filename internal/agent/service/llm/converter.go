package llm

import (
	"github.com/cloudwego/eino/schema"
	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
)

// ToSchemaMessages converts domain messages to Eino schema messages.
func ToSchemaMessages(msgs entity.Conversation) []*schema.Message {
	result := make([]*schema.Message, 0, len(msgs))
	for _, msg := range msgs {
		if msg == nil {
			continue
		}
		result = append(result, ToSchemaMessage(msg))
	}
	return result
}

// ToSchemaMessage converts one domain message.
func ToSchemaMessage(msg *entity.Message) *schema.Message {
	sm := &schema.Message{
		Role:       toSchemaRole(msg.Role),
		Content:    msg.Content,
		Name:       msg.Name,
		ToolCallID: msg.ToolCallID,
	}

	if len(msg.ToolCalls) > 0 {
		sm.ToolCalls = make([]schema.ToolCall, 0, len(msg.ToolCalls))
		for _, tc := range msg.ToolCalls {
			sm.ToolCalls = append(sm.ToolCalls, schema.ToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: schema.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
	}
	return sm
}

// toFragment converts one streamed chunk. Chunks without text or tool-call
// deltas are dropped. A delta without an explicit index takes its position
// within the chunk.
func toFragment(chunk *schema.Message) (*entity.Fragment, error) {
	if chunk == nil {
		return nil, schema.ErrNoValue
	}

	f := &entity.Fragment{TextDelta: chunk.Content}
	for i, tc := range chunk.ToolCalls {
		idx := i
		if tc.Index != nil {
			idx = *tc.Index
		}
		f.ToolCalls = append(f.ToolCalls, entity.ToolCallDelta{
			Index:     idx,
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	if f.Empty() {
		return nil, schema.ErrNoValue
	}
	return f, nil
}

func toText(chunk *schema.Message) (string, error) {
	if chunk == nil || chunk.Content == "" {
		return "", schema.ErrNoValue
	}
	return chunk.Content, nil
}

func toSchemaRole(role entity.Role) schema.RoleType {
	switch role {
	case entity.RoleUser:
		return schema.User
	case entity.RoleAssistant:
		return schema.Assistant
	case entity.RoleSystem:
		return schema.System
	case entity.RoleTool:
		return schema.Tool
	default:
		return schema.User
	}
}
