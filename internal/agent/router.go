package agent

import (
	"github.com/gin-gonic/gin"
	"github.com/kanosa0101/TODO-List/internal/agent/handler/middleware"
	v1 "github.com/kanosa0101/TODO-List/internal/agent/handler/v1"
	"github.com/kanosa0101/TODO-List/internal/agent/service/mcp"
)

// routerDeps holds the dependencies needed for route registration. chat is
// nil while the LLM is not ready.
type routerDeps struct {
	chat           v1.ChatService
	tools          v1.ToolLister
	allowedOrigins []string
	mcp            *mcp.Module
}

func initRouter(g *gin.Engine, deps *routerDeps) {
	installMiddleware(g, deps)
	installController(g, deps)
}

func installMiddleware(g *gin.Engine, _ *routerDeps) {
	g.Use(middleware.Credential())
}

func installController(g *gin.Engine, deps *routerDeps) {
	chatHandler := v1.NewChatHandler(deps.chat)
	toolsHandler := v1.NewToolsHandler(deps.tools)
	healthHandler := v1.NewHealthHandler(deps.chat != nil)

	g.GET("/health", healthHandler.Get)

	api := g.Group("/api", middleware.CORS(deps.allowedOrigins))
	{
		api.POST("/chat", chatHandler.Complete)
		api.POST("/chat/stream", chatHandler.Stream)
		api.GET("/tools", toolsHandler.List)
		api.OPTIONS("/*path", func(c *gin.Context) {})
	}

	if deps.mcp != nil {
		h := gin.WrapH(deps.mcp.Handler)
		g.GET(deps.mcp.Path, h)
		g.POST(deps.mcp.Path, h)
		g.DELETE(deps.mcp.Path, h)
	}
}
