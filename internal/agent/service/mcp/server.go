package mcp

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolSource is the tool registry as seen by the MCP server.
type ToolSource interface {
	ListTools() []*entity.ToolSpec
	RawSchema(name string) ([]byte, bool)
	Execute(ctx context.Context, credential, name string, args map[string]interface{}) *entity.ToolResult
}

type credentialKey struct{}

// WithCredential attaches the end user's bearer token to ctx.
func WithCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, credentialKey{}, credential)
}

// CredentialFrom returns the bearer token attached by WithCredential.
func CredentialFrom(ctx context.Context) string {
	cred, _ := ctx.Value(credentialKey{}).(string)
	return cred
}

func credentialFromRequest(ctx context.Context, r *http.Request) context.Context {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ctx
	}
	return WithCredential(ctx, strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
}

// NewServer creates an MCP server with one MCP tool per registry tool.
func NewServer(src ToolSource, version string) (*server.MCPServer, error) {
	srv := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, spec := range src.ListTools() {
		raw, ok := src.RawSchema(spec.Name)
		if !ok {
			return nil, fmt.Errorf("[MCP] tool %s has no schema", spec.Name)
		}
		srv.AddTool(mcp.NewToolWithRawSchema(spec.Name, spec.Description, raw), callTool(src, spec.Name))
	}
	return srv, nil
}

func callTool(src ToolSource, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cred := CredentialFrom(ctx)
		if cred == "" {
			return mcp.NewToolResultError("this tool needs an Authorization bearer token"), nil
		}

		args := req.GetArguments()
		if args == nil {
			args = map[string]interface{}{}
		}
		logger.InfoX(moduleName, "[MCP] calling tool %s", name)

		result := src.Execute(ctx, cred, name, args)
		if !result.Success {
			return mcp.NewToolResultError(result.String()), nil
		}
		return mcp.NewToolResultText(result.String()), nil
	}
}
