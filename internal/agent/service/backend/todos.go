package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
)

// Todo filters accepted by ListTodos.
const (
	FilterAll       = "all"
	FilterActive    = "active"
	FilterCompleted = "completed"
)

// Priorities and duration units accepted by the backend.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"

	UnitMinutes = "MINUTES"
	UnitHours   = "HOURS"
	UnitDays    = "DAYS"
)

// NewTodo is the input of CreateTodo. Priority, Completed and IsDaily always
// reach the wire (with defaults); the rest only when supplied.
type NewTodo struct {
	Text              string
	Priority          Optional[string]
	Completed         Optional[bool]
	Deadline          Optional[string]
	IsDaily           Optional[bool]
	TotalSteps        Optional[int]
	EstimatedDuration Optional[int]
	DurationUnit      Optional[string]
}

func (t NewTodo) payload() map[string]interface{} {
	p := map[string]interface{}{
		"text":      t.Text,
		"priority":  t.Priority.OrElse(PriorityMedium),
		"completed": t.Completed.OrElse(false),
		"isDaily":   t.IsDaily.OrElse(false),
	}
	if v, ok := t.Deadline.Get(); ok && v != "" {
		p["deadline"] = v
	}
	put(p, "totalSteps", t.TotalSteps)
	put(p, "estimatedDuration", t.EstimatedDuration)
	if v, ok := t.DurationUnit.Get(); ok && v != "" {
		p["durationUnit"] = v
	}
	return p
}

// TodoPatch is the input of UpdateTodo. Only supplied fields are sent.
type TodoPatch struct {
	Text              Optional[string]
	Priority          Optional[string]
	Completed         Optional[bool]
	Deadline          Optional[string]
	IsDaily           Optional[bool]
	TotalSteps        Optional[int]
	CompletedSteps    Optional[int]
	EstimatedDuration Optional[int]
	DurationUnit      Optional[string]
}

func (t TodoPatch) payload() map[string]interface{} {
	p := map[string]interface{}{}
	put(p, "text", t.Text)
	put(p, "priority", t.Priority)
	put(p, "completed", t.Completed)
	put(p, "deadline", t.Deadline)
	put(p, "isDaily", t.IsDaily)
	put(p, "totalSteps", t.TotalSteps)
	put(p, "completedSteps", t.CompletedSteps)
	put(p, "estimatedDuration", t.EstimatedDuration)
	put(p, "durationUnit", t.DurationUnit)
	return p
}

// ListTodos lists the caller's todos. The filter query parameter is only sent
// when it narrows the result.
func (c *Client) ListTodos(ctx context.Context, credential, filter string) *entity.ToolResult {
	const op = "list todos"

	var query url.Values
	if filter != "" && filter != FilterAll {
		query = url.Values{"filter": []string{filter}}
	}

	data, err := c.call(ctx, op, credential, http.MethodGet, "/todos", query, nil)
	if err != nil {
		return fail(err)
	}
	return listResult(op, data)
}

// GetTodo fetches one todo.
func (c *Client) GetTodo(ctx context.Context, credential string, id int64) *entity.ToolResult {
	data, err := c.call(ctx, "get todo", credential, http.MethodGet, todoPath(id), nil, nil)
	if err != nil {
		return fail(err)
	}
	return entity.Succeed(data, "")
}

// CreateTodo creates a todo.
func (c *Client) CreateTodo(ctx context.Context, credential string, in NewTodo) *entity.ToolResult {
	data, err := c.call(ctx, "create todo", credential, http.MethodPost, "/todos", nil, in.payload())
	if err != nil {
		return fail(err)
	}
	return entity.Succeed(data, "todo created")
}

// UpdateTodo patches a todo with the supplied fields only.
func (c *Client) UpdateTodo(ctx context.Context, credential string, id int64, patch TodoPatch) *entity.ToolResult {
	data, err := c.call(ctx, "update todo", credential, http.MethodPatch, todoPath(id), nil, patch.payload())
	if err != nil {
		return fail(err)
	}
	return entity.Succeed(data, "todo updated")
}

// DeleteTodo deletes a todo. The response body is ignored.
func (c *Client) DeleteTodo(ctx context.Context, credential string, id int64) *entity.ToolResult {
	if _, err := c.do(ctx, "delete todo", credential, http.MethodDelete, todoPath(id), nil, nil); err != nil {
		return fail(err)
	}
	return &entity.ToolResult{Success: true, Message: "todo deleted"}
}
