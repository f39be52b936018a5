package v1

import (
	"context"
	"errors"
	"io"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/internal/agent/handler/middleware"
	"github.com/kanosa0101/TODO-List/internal/agent/service/chat"
	"github.com/kanosa0101/TODO-List/internal/pkg/core"
	"github.com/kanosa0101/TODO-List/pkg/errorx"
	"github.com/kanosa0101/TODO-List/pkg/logger"
)

// ChatService is the conversation service as seen by the HTTP layer.
type ChatService interface {
	Model() string
	Complete(ctx context.Context, req *chat.Request) (string, error)
	Stream(ctx context.Context, req *chat.Request) *schema.StreamReader[*entity.StreamEvent]
}

// ChatHandler serves POST /api/chat and POST /api/chat/stream. A nil
// service means the LLM could not be initialized.
type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Complete answers in one JSON response, without tools.
func (h *ChatHandler) Complete(c *gin.Context) {
	req, err := h.bind(c)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	text, err := h.svc.Complete(c.Request.Context(), req)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrLLMCall, "chat completion"), nil)
		return
	}
	core.WriteResponse(c, nil, ChatResponse{Response: text, Model: h.svc.Model()})
}

// Stream answers as server-sent events, each carrying exactly one of
// content, error or done.
func (h *ChatHandler) Stream(c *gin.Context) {
	req, err := h.bind(c)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}
	req.Credential = middleware.GetCredential(c)

	ctx := c.Request.Context()
	sr := h.svc.Stream(ctx, req)
	defer sr.Close()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	for {
		ev, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			logger.Warn("[Chat] stream recv error: %v", err)
			c.Render(-1, sse.Event{Data: entity.ErrorEvent(err.Error())})
			c.Writer.Flush()
			return
		}

		c.Render(-1, sse.Event{Data: ev})
		c.Writer.Flush()

		if ctx.Err() != nil {
			logger.Info("[Chat] client went away, stopping stream")
			return
		}
	}
}

func (h *ChatHandler) bind(c *gin.Context) (*chat.Request, error) {
	var body ChatRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, errorx.WrapC(err, ErrBind, "bind chat request")
	}
	if len(body.Messages) == 0 {
		return nil, errorx.WithCode(ErrMessagesEmpty, "messages array is required and must not be empty")
	}
	conv, ok := body.conversation()
	if !ok {
		return nil, errorx.WithCode(ErrInvalidRole, "message role must be system, user, assistant or tool")
	}
	if h.svc == nil {
		return nil, errorx.WithCode(ErrLLMNotReady, "LLM service is not initialized")
	}
	return &chat.Request{Messages: conv, Temperature: body.Temperature}, nil
}
