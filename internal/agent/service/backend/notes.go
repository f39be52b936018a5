package backend

import (
	"context"
	"net/http"

	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
)

// NotePatch is the input of UpdateNote.
type NotePatch struct {
	Title   Optional[string]
	Content Optional[string]
}

// ListNotes lists the caller's notes.
func (c *Client) ListNotes(ctx context.Context, credential string) *entity.ToolResult {
	const op = "list notes"

	data, err := c.call(ctx, op, credential, http.MethodGet, "/notes", nil, nil)
	if err != nil {
		return fail(err)
	}
	return listResult(op, data)
}

// GetNote fetches one note.
func (c *Client) GetNote(ctx context.Context, credential string, id int64) *entity.ToolResult {
	data, err := c.call(ctx, "get note", credential, http.MethodGet, notePath(id), nil, nil)
	if err != nil {
		return fail(err)
	}
	return entity.Succeed(data, "")
}

// CreateNote creates a note.
func (c *Client) CreateNote(ctx context.Context, credential, title, content string) *entity.ToolResult {
	body := map[string]interface{}{"title": title, "content": content}

	data, err := c.call(ctx, "create note", credential, http.MethodPost, "/notes", nil, body)
	if err != nil {
		return fail(err)
	}
	return entity.Succeed(data, "note created")
}

// UpdateNote is a read-modify-write: the backend's PUT needs the full note,
// so unsupplied fields are taken from the stored note.
func (c *Client) UpdateNote(ctx context.Context, credential string, id int64, patch NotePatch) *entity.ToolResult {
	const op = "update note"

	current, err := c.call(ctx, op, credential, http.MethodGet, notePath(id), nil, nil)
	if err != nil {
		return fail(err)
	}
	existing, _ := current.(map[string]interface{})

	body := map[string]interface{}{
		"title":   patch.Title.OrElse(stringField(existing, "title")),
		"content": patch.Content.OrElse(stringField(existing, "content")),
	}

	data, err := c.call(ctx, op, credential, http.MethodPut, notePath(id), nil, body)
	if err != nil {
		return fail(err)
	}
	return entity.Succeed(data, "note updated")
}

// DeleteNote deletes a note. The response body is ignored.
func (c *Client) DeleteNote(ctx context.Context, credential string, id int64) *entity.ToolResult {
	if _, err := c.do(ctx, "delete note", credential, http.MethodDelete, notePath(id), nil, nil); err != nil {
		return fail(err)
	}
	return &entity.ToolResult{Success: true, Message: "note deleted"}
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
