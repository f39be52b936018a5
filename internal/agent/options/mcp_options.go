package options

import (
	"errors"
	"strings"

	"github.com/kanosa0101/TODO-List/internal/agent/service/mcp"
	"github.com/spf13/pflag"
)

// MCPOptions controls the MCP endpoint exposing the todo tools.
type MCPOptions struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path"    mapstructure:"path"`
}

func NewMCPOptions() *MCPOptions {
	return &MCPOptions{
		Enabled: true,
		Path:    mcp.DefaultPath,
	}
}

func (o *MCPOptions) Validate() []error {
	if o.Enabled && !strings.HasPrefix(o.Path, "/") {
		return []error{errors.New("mcp.path must start with /")}
	}
	return nil
}

func (o *MCPOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "mcp.enabled", o.Enabled, "Serve the todo tools over MCP streamable HTTP.")
	fs.StringVar(&o.Path, "mcp.path", o.Path, "Route of the MCP endpoint.")
}
