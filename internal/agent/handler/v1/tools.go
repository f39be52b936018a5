package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/internal/pkg/core"
)

// ToolLister lists the tool catalog.
type ToolLister interface {
	ListTools() []*entity.ToolSpec
}

// ToolsHandler serves GET /api/tools.
type ToolsHandler struct {
	tools ToolLister
}

func NewToolsHandler(tools ToolLister) *ToolsHandler {
	return &ToolsHandler{tools: tools}
}

func (h *ToolsHandler) List(c *gin.Context) {
	core.WriteResponse(c, nil, ToolsResponse{Tools: h.tools.ListTools()})
}
