package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/internal/agent/service/tools"
	"github.com/kanosa0101/TODO-List/pkg/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcResponse struct {
	ID     int `json:"id"`
	Result struct {
		Tools []struct {
			Name        string                 `json:"name"`
			Description string                 `json:"description"`
			InputSchema map[string]interface{} `json:"inputSchema"`
		} `json:"tools"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	} `json:"result"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type call struct {
	credential string
	name       string
	args       map[string]interface{}
}

func newTestRegistry(t *testing.T, calls *[]call) *tools.Registry {
	t.Helper()
	echo := func(name string) tools.Handler {
		return func(_ context.Context, credential string, args tools.Args) *entity.ToolResult {
			*calls = append(*calls, call{credential: credential, name: name, args: args})
			return entity.Succeed(map[string]interface{}{"id": args.ID("todo_id")}, "todo deleted")
		}
	}
	reg, err := tools.NewRegistry(
		&tools.Tool{
			Name:        "delete_todo",
			Description: "Delete a todo",
			Params:      []tools.Param{{Name: "todo_id", Type: tools.Integer, Desc: "todo id", Required: true}},
			Handler:     echo("delete_todo"),
		},
		&tools.Tool{
			Name:        "list_notes",
			Description: "List notes",
			Handler:     echo("list_notes"),
		},
	)
	require.NoError(t, err)
	return reg
}

func handle(t *testing.T, m *Module, ctx context.Context, body string) rpcResponse {
	t.Helper()
	msg := m.Server.HandleMessage(ctx, []byte(body))
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp
}

func newModule(t *testing.T, calls *[]call) *Module {
	t.Helper()
	m, err := (&Config{Tools: newTestRegistry(t, calls)}).Complete().New()
	require.NoError(t, err)
	return m
}

func TestListToolsMirrorsRegistry(t *testing.T) {
	var calls []call
	m := newModule(t, &calls)
	assert.Equal(t, DefaultPath, m.Path)

	resp := handle(t, m, context.Background(), `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	require.Nil(t, resp.Error)
	require.Len(t, resp.Result.Tools, 2)

	byName := map[string]int{}
	for i, tl := range resp.Result.Tools {
		byName[tl.Name] = i
	}
	del := resp.Result.Tools[byName["delete_todo"]]
	assert.Equal(t, "Delete a todo", del.Description)
	assert.Equal(t, "object", del.InputSchema["type"])
	assert.Equal(t, []interface{}{"todo_id"}, del.InputSchema["required"])
}

func TestCallToolUsesCredentialFromContext(t *testing.T) {
	var calls []call
	m := newModule(t, &calls)

	ctx := WithCredential(context.Background(), "tok")
	resp := handle(t, m, ctx,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"delete_todo","arguments":{"todo_id":"7"}}}`)

	require.Nil(t, resp.Error)
	assert.False(t, resp.Result.IsError)
	require.Len(t, resp.Result.Content, 1)
	assert.JSONEq(t, `{"success":true,"data":{"id":7},"message":"todo deleted"}`, resp.Result.Content[0].Text)

	require.Len(t, calls, 1)
	assert.Equal(t, "tok", calls[0].credential)
	assert.Equal(t, int64(7), calls[0].args["todo_id"])
}

func TestCallToolWithoutCredential(t *testing.T) {
	var calls []call
	m := newModule(t, &calls)

	resp := handle(t, m, context.Background(),
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"list_notes"}}`)

	assert.True(t, resp.Result.IsError)
	assert.Empty(t, calls)
}

func TestCallToolReportsValidationFailure(t *testing.T) {
	var calls []call
	m := newModule(t, &calls)

	resp := handle(t, m, WithCredential(context.Background(), "tok"),
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"delete_todo","arguments":{}}}`)

	assert.True(t, resp.Result.IsError)
	require.Len(t, resp.Result.Content, 1)
	assert.Contains(t, resp.Result.Content[0].Text, "missing required argument: todo_id")
	assert.Empty(t, calls)
}

func TestHTTPBearerReachesTool(t *testing.T) {
	var calls []call
	m := newModule(t, &calls)
	srv := httptest.NewServer(m.Handler)
	defer srv.Close()

	body := `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"list_notes","arguments":{}}}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+DefaultPath, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	req.Header.Set("Authorization", "Bearer tok-http")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	require.Len(t, calls, 1)
	assert.Equal(t, "tok-http", calls[0].credential)
}

func TestCredentialFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	assert.Empty(t, CredentialFrom(credentialFromRequest(context.Background(), r)))

	r.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, CredentialFrom(credentialFromRequest(context.Background(), r)))

	r.Header.Set("Authorization", "Bearer  abc ")
	assert.Equal(t, "abc", CredentialFrom(credentialFromRequest(context.Background(), r)))
}

func TestNewRequiresTools(t *testing.T) {
	_, err := (&Config{}).Complete().New()
	assert.Error(t, err)
}
