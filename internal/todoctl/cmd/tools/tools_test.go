package tools

import (
	"testing"

	"github.com/kanosa0101/TODO-List/internal/todoctl/client"
	"github.com/stretchr/testify/assert"
)

func TestParams(t *testing.T) {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"todo_id":  map[string]interface{}{"type": "integer"},
			"priority": map[string]interface{}{"type": "string"},
		},
		"required": []interface{}{"todo_id"},
	}
	assert.Equal(t, "priority, todo_id*", params(schema))
	assert.Equal(t, "-", params(map[string]interface{}{"type": "object"}))
	assert.Equal(t, "-", params(nil))
}

func TestTable(t *testing.T) {
	out := Table([]client.ToolSpec{{Name: "list_notes", Description: "List notes"}})
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "list_notes")
	assert.Contains(t, out, "List notes")
}
