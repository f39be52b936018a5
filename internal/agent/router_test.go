package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kanosa0101/TODO-List/internal/agent/config"
	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/internal/agent/options"
	"github.com/kanosa0101/TODO-List/internal/agent/service/mcp"
	"github.com/kanosa0101/TODO-List/internal/agent/service/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	reg, err := tools.NewRegistry(&tools.Tool{
		Name:        "list_notes",
		Description: "List notes",
		Handler: func(context.Context, string, tools.Args) *entity.ToolResult {
			return entity.SucceedList(nil)
		},
	})
	require.NoError(t, err)
	return reg
}

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	reg := testRegistry(t)
	mcpModule, err := (&mcp.Config{Tools: reg}).Complete().New()
	require.NoError(t, err)

	g := gin.New()
	initRouter(g, &routerDeps{
		tools:          reg,
		allowedOrigins: []string{"http://localhost:3000"},
		mcp:            mcpModule,
	})
	return g
}

func TestHealthReportsLLMNotReady(t *testing.T) {
	w := httptest.NewRecorder()
	testEngine(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","llm_ready":false}`, w.Body.String())
}

func TestChatWithoutLLMAnswers503(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/chat/stream", strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	testEngine(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/chat/stream", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	testEngine(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestToolsEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	testEngine(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tools", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"list_notes"`)
}

func TestBuildModulesWithoutAPIKey(t *testing.T) {
	opts := options.NewOptions()
	opts.ModelOptions.Provider = "openai"
	opts.ModelOptions.APIKey = ""
	opts.BackendOptions.Timeout = time.Second
	cfg, err := config.CreateConfigFromOptions(opts)
	require.NoError(t, err)

	m, err := buildModules(context.Background(), cfg)
	require.NoError(t, err)

	assert.Nil(t, m.chatSvc)
	assert.Len(t, m.registry.ListTools(), 10)
	require.NotNil(t, m.mcpModule)
	assert.Equal(t, "/mcp", m.mcpModule.Path)
}

func TestBuildModulesWithLLM(t *testing.T) {
	opts := options.NewOptions()
	opts.ModelOptions.APIKey = "sk-test"
	opts.MCPOptions.Enabled = false
	cfg, err := config.CreateConfigFromOptions(opts)
	require.NoError(t, err)

	m, err := buildModules(context.Background(), cfg)
	require.NoError(t, err)

	require.NotNil(t, m.chatSvc)
	assert.Equal(t, "gpt-4o-mini", m.chatSvc.Model())
	assert.Nil(t, m.mcpModule)
}
