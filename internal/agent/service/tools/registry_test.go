package tools

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/internal/agent/service/backend"
	"github.com/kanosa0101/TODO-List/pkg/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	Method string
	Args   []interface{}
}

// fakeGateway records every call and answers with a canned success.
type fakeGateway struct {
	mu    sync.Mutex
	calls []call
}

func (f *fakeGateway) record(method string, args ...interface{}) *entity.ToolResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Method: method, Args: args})
	return entity.Succeed(map[string]interface{}{"method": method}, "")
}

func (f *fakeGateway) ListTodos(_ context.Context, cred, filter string) *entity.ToolResult {
	return f.record("ListTodos", cred, filter)
}
func (f *fakeGateway) GetTodo(_ context.Context, cred string, id int64) *entity.ToolResult {
	return f.record("GetTodo", cred, id)
}
func (f *fakeGateway) CreateTodo(_ context.Context, cred string, in backend.NewTodo) *entity.ToolResult {
	return f.record("CreateTodo", cred, in)
}
func (f *fakeGateway) UpdateTodo(_ context.Context, cred string, id int64, p backend.TodoPatch) *entity.ToolResult {
	return f.record("UpdateTodo", cred, id, p)
}
func (f *fakeGateway) DeleteTodo(_ context.Context, cred string, id int64) *entity.ToolResult {
	return f.record("DeleteTodo", cred, id)
}
func (f *fakeGateway) ListNotes(_ context.Context, cred string) *entity.ToolResult {
	return f.record("ListNotes", cred)
}
func (f *fakeGateway) GetNote(_ context.Context, cred string, id int64) *entity.ToolResult {
	return f.record("GetNote", cred, id)
}
func (f *fakeGateway) CreateNote(_ context.Context, cred, title, content string) *entity.ToolResult {
	return f.record("CreateNote", cred, title, content)
}
func (f *fakeGateway) UpdateNote(_ context.Context, cred string, id int64, p backend.NotePatch) *entity.ToolResult {
	return f.record("UpdateNote", cred, id, p)
}
func (f *fakeGateway) DeleteNote(_ context.Context, cred string, id int64) *entity.ToolResult {
	return f.record("DeleteNote", cred, id)
}

func newTestRegistry(t *testing.T) (*Registry, *fakeGateway) {
	t.Helper()
	gw := &fakeGateway{}
	r, err := NewCatalogRegistry(gw)
	require.NoError(t, err)
	return r, gw
}

func TestListTools(t *testing.T) {
	r, _ := newTestRegistry(t)

	var names []string
	for _, spec := range r.ListTools() {
		names = append(names, spec.Name)
		assert.NotEmpty(t, spec.Description)
		assert.Equal(t, "object", spec.Parameters.Type)
	}
	assert.Equal(t, []string{
		"list_todos", "get_todo_by_id", "create_todo", "update_todo", "delete_todo",
		"list_notes", "get_note_by_id", "create_note", "update_note", "delete_note",
	}, names)

	raw, ok := r.RawSchema(CreateTodo)
	require.True(t, ok)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []interface{}{"text"}, decoded["required"])

	infos := r.ToolInfos()
	require.Len(t, infos, 10)
	assert.Equal(t, UpdateTodo, infos[3].Name)
}

func TestExecuteUnknownTool(t *testing.T) {
	r, gw := newTestRegistry(t)

	res := r.Execute(context.Background(), "tok", "unknown_tool", map[string]interface{}{})
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.Equal(t, "unknown tool: unknown_tool", res.Error)
	assert.Empty(t, gw.calls)
}

func TestExecuteMissingRequired(t *testing.T) {
	r, gw := newTestRegistry(t)

	res := r.Execute(context.Background(), "tok", DeleteTodo, nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "todo_id")

	res = r.Execute(context.Background(), "tok", CreateNote, map[string]interface{}{"title": nil})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "title")
	assert.Empty(t, gw.calls)
}

func TestExecuteDefaultsAndCoercion(t *testing.T) {
	r, gw := newTestRegistry(t)

	res := r.Execute(context.Background(), "tok", ListTodos, map[string]interface{}{})
	require.True(t, res.Success, res.Error)
	res = r.Execute(context.Background(), "tok", GetTodo, map[string]interface{}{"todo_id": "42"})
	require.True(t, res.Success, res.Error)
	res = r.Execute(context.Background(), "tok", GetNote, map[string]interface{}{"note_id": float64(7)})
	require.True(t, res.Success, res.Error)
	res = r.Execute(context.Background(), "tok", CreateNote, map[string]interface{}{"title": "t"})
	require.True(t, res.Success, res.Error)

	require.Len(t, gw.calls, 4)
	assert.Equal(t, []interface{}{"tok", "all"}, gw.calls[0].Args)
	assert.Equal(t, []interface{}{"tok", int64(42)}, gw.calls[1].Args)
	assert.Equal(t, []interface{}{"tok", int64(7)}, gw.calls[2].Args)
	assert.Equal(t, []interface{}{"tok", "t", ""}, gw.calls[3].Args)
}

func TestExecuteRejectsInvalidShape(t *testing.T) {
	r, gw := newTestRegistry(t)

	res := r.Execute(context.Background(), "tok", ListTodos, map[string]interface{}{"filter": "someday"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "invalid arguments for list_todos")

	res = r.Execute(context.Background(), "tok", GetTodo, map[string]interface{}{"todo_id": 1.5})
	assert.False(t, res.Success)

	res = r.Execute(context.Background(), "tok", UpdateTodo, map[string]interface{}{"todo_id": 1, "completed": "maybe"})
	assert.False(t, res.Success)
	assert.Empty(t, gw.calls)
}

func TestExecuteUpdateTodoPartial(t *testing.T) {
	r, gw := newTestRegistry(t)

	res := r.Execute(context.Background(), "tok", UpdateTodo, map[string]interface{}{
		"todo_id":         3,
		"completed":       "true",
		"completed_steps": 2,
	})
	require.True(t, res.Success, res.Error)

	require.Len(t, gw.calls, 1)
	patch := gw.calls[0].Args[2].(backend.TodoPatch)
	completed, ok := patch.Completed.Get()
	assert.True(t, ok)
	assert.True(t, completed)
	steps, _ := patch.CompletedSteps.Get()
	assert.Equal(t, 2, steps)
	assert.False(t, patch.Priority.IsSet())
	assert.False(t, patch.Text.IsSet())
}

func TestExecuteRecoversHandlerPanic(t *testing.T) {
	r, err := NewRegistry(&Tool{
		Name: "boom",
		Handler: func(context.Context, string, Args) *entity.ToolResult {
			panic("kaboom")
		},
	})
	require.NoError(t, err)

	res := r.Execute(context.Background(), "", "boom", nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "kaboom")
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	h := func(context.Context, string, Args) *entity.ToolResult { return entity.Succeed(nil, "") }
	_, err := NewRegistry(&Tool{Name: "a", Handler: h}, &Tool{Name: "a", Handler: h})
	assert.Error(t, err)
}

func TestCreateTodoWithOnlyTextReachesBackendWithDefaults(t *testing.T) {
	var (
		mu   sync.Mutex
		body map[string]interface{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		_ = json.Unmarshal(data, &body)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":1}`)
	}))
	defer srv.Close()

	client := (&backend.Config{BaseURL: srv.URL, Timeout: time.Second}).Complete().New()
	r, err := NewCatalogRegistry(client)
	require.NoError(t, err)

	res := r.Execute(context.Background(), "tok", CreateTodo, map[string]interface{}{"text": "water plants"})
	require.True(t, res.Success, res.Error)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "MEDIUM", body["priority"])
	assert.Equal(t, false, body["completed"])
	assert.Equal(t, false, body["isDaily"])
	for _, key := range []string{"deadline", "totalSteps", "estimatedDuration", "durationUnit"} {
		assert.NotContains(t, body, key)
	}
}

func TestParseArguments(t *testing.T) {
	args, ok := ParseArguments(`{"filter":"all"}`)
	assert.True(t, ok)
	assert.Equal(t, "all", args["filter"])

	args, ok = ParseArguments(`{"filter":`)
	assert.False(t, ok)
	assert.Empty(t, args)

	args, ok = ParseArguments("")
	assert.True(t, ok)
	assert.Empty(t, args)

	_, ok = ParseArguments(`[1,2]`)
	assert.False(t, ok)
}
