package mcp

import (
	"fmt"
	"net/http"

	"github.com/kanosa0101/TODO-List/pkg/logger"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName  = "todo-agent"
	DefaultPath = "/mcp"
	moduleName  = "mcp"
)

// Config holds the configuration of the MCP server.
type Config struct {
	Path    string
	Version string
	Tools   ToolSource
}

// CompletedConfig is the completed configuration for MCP.
type CompletedConfig struct {
	*Config
}

// Complete fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.Version == "" {
		c.Version = "dev"
	}
	return CompletedConfig{c}
}

// Module serves the tool registry over MCP streamable HTTP.
type Module struct {
	Path    string
	Server  *server.MCPServer
	Handler http.Handler
}

// New registers every tool of the source and builds the HTTP handler.
func (c CompletedConfig) New() (*Module, error) {
	if c.Tools == nil {
		return nil, fmt.Errorf("[MCP] no tool source configured")
	}
	srv, err := NewServer(c.Tools, c.Version)
	if err != nil {
		return nil, err
	}
	handler := server.NewStreamableHTTPServer(srv,
		server.WithEndpointPath(c.Path),
		server.WithStateLess(true),
		server.WithHTTPContextFunc(credentialFromRequest),
	)
	logger.InfoX(moduleName, "[MCP] serving %d tools at %s", len(c.Tools.ListTools()), c.Path)
	return &Module{Path: c.Path, Server: srv, Handler: handler}, nil
}
