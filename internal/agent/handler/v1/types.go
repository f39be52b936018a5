package v1

import (
	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
)

// ChatMessage is one message of a chat request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat and POST /api/chat/stream.
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

// ChatResponse is the body of a successful POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	LLMReady bool   `json:"llm_ready"`
}

// ToolsResponse is the body of GET /api/tools.
type ToolsResponse struct {
	Tools []*entity.ToolSpec `json:"tools"`
}

func (r *ChatRequest) conversation() (entity.Conversation, bool) {
	conv := make(entity.Conversation, 0, len(r.Messages))
	for _, m := range r.Messages {
		role := entity.Role(m.Role)
		if !role.Valid() {
			return nil, false
		}
		conv = append(conv, &entity.Message{Role: role, Content: m.Content})
	}
	return conv, true
}
