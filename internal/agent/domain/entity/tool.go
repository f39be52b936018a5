package entity

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/kanosa0101/TODO-List/pkg/utils/json"
)

// ToolCall represents an LLM's request to execute a tool.
type ToolCall struct {
	// ID is the opaque token assigned by the model.
	ID string `json:"id"`
	// Name is the tool name to invoke.
	Name string `json:"name"`
	// Arguments is the raw JSON text of the arguments. It may be malformed.
	Arguments string `json:"arguments"`
}

// ToolResult is the envelope returned by every tool invocation. It is
// serialized verbatim into the content of a tool-role message.
type ToolResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Succeed builds a successful result.
func Succeed(data interface{}, message string) *ToolResult {
	return &ToolResult{Success: true, Data: data, Message: message}
}

// SucceedList builds a successful result for a list operation.
func SucceedList(items []interface{}) *ToolResult {
	n := len(items)
	return &ToolResult{Success: true, Data: items, Count: &n}
}

// Fail builds a failed result.
func Fail(format string, args ...interface{}) *ToolResult {
	return &ToolResult{Success: false, Error: fmt.Sprintf(format, args...)}
}

// String serializes the result for a tool-role message.
func (r *ToolResult) String() string {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":%q}`, "encode tool result: "+err.Error())
	}
	return string(data)
}

// ToolSpec describes one callable tool as advertised to models and clients.
type ToolSpec struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}
