package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/kanosa0101/TODO-List/internal/todoctl/client"
	"github.com/kanosa0101/TODO-List/internal/todoctl/cmd/util"
	"github.com/spf13/cobra"
)

func NewCmdTools(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools the agent can call",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			c := client.NewAgentClient(f.ServerAddr(), f.Token(), f.HTTPClient())
			specs, err := c.ListTools(ctx)
			util.CheckErr(err)
			fmt.Fprintln(ioStreams.Out, Table(specs))
		},
	}
}

// Table renders the catalog with one row per tool. Required parameters are
// marked with '*'.
func Table(specs []client.ToolSpec) string {
	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow("NAME", "PARAMETERS", "DESCRIPTION")
	for _, s := range specs {
		table.AddRow(s.Name, params(s.Parameters), s.Description)
	}
	return table.String()
}

func params(schema map[string]interface{}) string {
	props, _ := schema["properties"].(map[string]interface{})
	if len(props) == 0 {
		return "-"
	}

	required := map[string]bool{}
	if req, ok := schema["required"].([]interface{}); ok {
		for _, r := range req {
			if name, ok := r.(string); ok {
				required[name] = true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		if required[name] {
			name += "*"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
