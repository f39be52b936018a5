package tools

import (
	"context"

	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/internal/agent/service/backend"
)

// Gateway is the CRUD backend as seen by the catalog. *backend.Client
// implements it.
type Gateway interface {
	ListTodos(ctx context.Context, credential, filter string) *entity.ToolResult
	GetTodo(ctx context.Context, credential string, id int64) *entity.ToolResult
	CreateTodo(ctx context.Context, credential string, in backend.NewTodo) *entity.ToolResult
	UpdateTodo(ctx context.Context, credential string, id int64, patch backend.TodoPatch) *entity.ToolResult
	DeleteTodo(ctx context.Context, credential string, id int64) *entity.ToolResult
	ListNotes(ctx context.Context, credential string) *entity.ToolResult
	GetNote(ctx context.Context, credential string, id int64) *entity.ToolResult
	CreateNote(ctx context.Context, credential, title, content string) *entity.ToolResult
	UpdateNote(ctx context.Context, credential string, id int64, patch backend.NotePatch) *entity.ToolResult
	DeleteNote(ctx context.Context, credential string, id int64) *entity.ToolResult
}

var _ Gateway = (*backend.Client)(nil)

// Tool names.
const (
	ListTodos  = "list_todos"
	GetTodo    = "get_todo_by_id"
	CreateTodo = "create_todo"
	UpdateTodo = "update_todo"
	DeleteTodo = "delete_todo"
	ListNotes  = "list_notes"
	GetNote    = "get_note_by_id"
	CreateNote = "create_note"
	UpdateNote = "update_note"
	DeleteNote = "delete_note"
)

var (
	priorityEnum = []string{backend.PriorityLow, backend.PriorityMedium, backend.PriorityHigh}
	unitEnum     = []string{backend.UnitMinutes, backend.UnitHours, backend.UnitDays}
)

func todoID(desc string) Param {
	return Param{Name: "todo_id", Type: Integer, Desc: desc, Required: true}
}

func noteID(desc string) Param {
	return Param{Name: "note_id", Type: Integer, Desc: desc, Required: true}
}

// todoFields are the optional todo attributes shared by create and update.
// Update must not carry defaults, so defaults are added by the caller.
func todoFields() []Param {
	return []Param{
		{Name: "priority", Type: String, Desc: "Priority of the todo.", Enum: priorityEnum},
		{Name: "completed", Type: Boolean, Desc: "Whether the todo is done."},
		{Name: "deadline", Type: String, Desc: "Deadline in YYYY-MM-DDTHH:mm:ss local time."},
		{Name: "is_daily", Type: Boolean, Desc: "Whether the todo repeats every day."},
		{Name: "total_steps", Type: Integer, Desc: "Number of steps the todo is split into."},
		{Name: "estimated_duration", Type: Integer, Desc: "Estimated effort, measured in duration_unit."},
		{Name: "duration_unit", Type: String, Desc: "Unit of estimated_duration.", Enum: unitEnum},
	}
}

func withDefaults(params []Param, defaults map[string]interface{}) []Param {
	for i := range params {
		if v, ok := defaults[params[i].Name]; ok {
			params[i].Default = v
		}
	}
	return params
}

// Catalog returns the fixed tool set bound to gw.
func Catalog(gw Gateway) []*Tool {
	createParams := append([]Param{
		{Name: "text", Type: String, Desc: "What needs to be done.", Required: true},
	}, withDefaults(todoFields(), map[string]interface{}{
		"priority":  backend.PriorityMedium,
		"completed": false,
		"is_daily":  false,
	})...)

	fields := todoFields()
	updateParams := append([]Param{
		todoID("ID of the todo to update."),
		{Name: "text", Type: String, Desc: "New text of the todo."},
	}, fields[:5]...)
	updateParams = append(updateParams, Param{Name: "completed_steps", Type: Integer, Desc: "Number of steps already finished."})
	updateParams = append(updateParams, fields[5:]...)

	return []*Tool{
		{
			Name:        ListTodos,
			Description: "List the user's todos, optionally only the active or completed ones.",
			Params: []Param{
				{Name: "filter", Type: String, Desc: "Which todos to return.", Enum: []string{backend.FilterAll, backend.FilterActive, backend.FilterCompleted}, Default: backend.FilterAll},
			},
			Handler: func(ctx context.Context, credential string, args Args) *entity.ToolResult {
				return gw.ListTodos(ctx, credential, args.Str("filter"))
			},
		},
		{
			Name:        GetTodo,
			Description: "Get a single todo by its ID.",
			Params:      []Param{todoID("ID of the todo.")},
			Handler: func(ctx context.Context, credential string, args Args) *entity.ToolResult {
				return gw.GetTodo(ctx, credential, args.ID("todo_id"))
			},
		},
		{
			Name:        CreateTodo,
			Description: "Create a new todo. Only text is required.",
			Params:      createParams,
			Handler: func(ctx context.Context, credential string, args Args) *entity.ToolResult {
				return gw.CreateTodo(ctx, credential, backend.NewTodo{
					Text:              args.Str("text"),
					Priority:          args.optString("priority"),
					Completed:         args.optBool("completed"),
					Deadline:          args.optString("deadline"),
					IsDaily:           args.optBool("is_daily"),
					TotalSteps:        args.optInt("total_steps"),
					EstimatedDuration: args.optInt("estimated_duration"),
					DurationUnit:      args.optString("duration_unit"),
				})
			},
		},
		{
			Name:        UpdateTodo,
			Description: "Update a todo. Only the supplied fields change.",
			Params:      updateParams,
			Handler: func(ctx context.Context, credential string, args Args) *entity.ToolResult {
				return gw.UpdateTodo(ctx, credential, args.ID("todo_id"), backend.TodoPatch{
					Text:              args.optString("text"),
					Priority:          args.optString("priority"),
					Completed:         args.optBool("completed"),
					Deadline:          args.optString("deadline"),
					IsDaily:           args.optBool("is_daily"),
					TotalSteps:        args.optInt("total_steps"),
					CompletedSteps:    args.optInt("completed_steps"),
					EstimatedDuration: args.optInt("estimated_duration"),
					DurationUnit:      args.optString("duration_unit"),
				})
			},
		},
		{
			Name:        DeleteTodo,
			Description: "Delete a todo by its ID.",
			Params:      []Param{todoID("ID of the todo to delete.")},
			Handler: func(ctx context.Context, credential string, args Args) *entity.ToolResult {
				return gw.DeleteTodo(ctx, credential, args.ID("todo_id"))
			},
		},
		{
			Name:        ListNotes,
			Description: "List the user's notes.",
			Handler: func(ctx context.Context, credential string, _ Args) *entity.ToolResult {
				return gw.ListNotes(ctx, credential)
			},
		},
		{
			Name:        GetNote,
			Description: "Get a single note by its ID.",
			Params:      []Param{noteID("ID of the note.")},
			Handler: func(ctx context.Context, credential string, args Args) *entity.ToolResult {
				return gw.GetNote(ctx, credential, args.ID("note_id"))
			},
		},
		{
			Name:        CreateNote,
			Description: "Create a new note.",
			Params: []Param{
				{Name: "title", Type: String, Desc: "Title of the note.", Required: true},
				{Name: "content", Type: String, Desc: "Body of the note.", Default: ""},
			},
			Handler: func(ctx context.Context, credential string, args Args) *entity.ToolResult {
				return gw.CreateNote(ctx, credential, args.Str("title"), args.Str("content"))
			},
		},
		{
			Name:        UpdateNote,
			Description: "Update a note. Fields that are not supplied keep their current value.",
			Params: []Param{
				noteID("ID of the note to update."),
				{Name: "title", Type: String, Desc: "New title."},
				{Name: "content", Type: String, Desc: "New body."},
			},
			Handler: func(ctx context.Context, credential string, args Args) *entity.ToolResult {
				return gw.UpdateNote(ctx, credential, args.ID("note_id"), backend.NotePatch{
					Title:   args.optString("title"),
					Content: args.optString("content"),
				})
			},
		},
		{
			Name:        DeleteNote,
			Description: "Delete a note by its ID.",
			Params:      []Param{noteID("ID of the note to delete.")},
			Handler: func(ctx context.Context, credential string, args Args) *entity.ToolResult {
				return gw.DeleteNote(ctx, credential, args.ID("note_id"))
			},
		},
	}
}

// NewCatalogRegistry builds the registry of the fixed catalog.
func NewCatalogRegistry(gw Gateway) (*Registry, error) {
	return NewRegistry(Catalog(gw)...)
}
