package chat

import (
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
)

// deadlineLayout is the wire format of todo deadlines (YYYY-MM-DDTHH:mm:ss).
const deadlineLayout = "2006-01-02T15:04:05"

var systemDirective = heredoc.Doc(`
	You are a personal assistant for a todo list and a notebook.

	You can read and change the user's todos and notes through tools:
	list_todos, get_todo_by_id, create_todo, update_todo, delete_todo,
	list_notes, get_note_by_id, create_note, update_note and delete_note.

	Call a tool proactively whenever the request implies one, without asking
	for confirmation first. After the tools have run, tell the user in plain
	words what happened. If a tool fails, explain the error instead of
	pretending it succeeded.

	The current local time is %s (%s).
	Deadlines use the format YYYY-MM-DDTHH:mm:ss, for example %s.
	Resolve relative dates such as "tomorrow" or "next Friday" against the
	current time before calling a tool.
`)

// SystemPrompt renders the directive prepended to tool-enabled conversations.
func SystemPrompt(now time.Time) string {
	example := time.Date(now.Year(), now.Month(), now.Day()+1, 18, 0, 0, 0, now.Location())
	return fmt.Sprintf(systemDirective,
		now.Format(deadlineLayout), now.Weekday(), example.Format(deadlineLayout))
}
