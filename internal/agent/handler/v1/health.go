package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/kanosa0101/TODO-List/internal/pkg/core"
)

// HealthHandler reports liveness and whether chat is usable.
type HealthHandler struct {
	llmReady bool
}

func NewHealthHandler(llmReady bool) *HealthHandler {
	return &HealthHandler{llmReady: llmReady}
}

func (h *HealthHandler) Get(c *gin.Context) {
	core.WriteResponse(c, nil, HealthResponse{Status: "ok", LLMReady: h.llmReady})
}
