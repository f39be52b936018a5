package entity

import (
	"testing"

	"github.com/kanosa0101/TODO-List/pkg/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamEventWireShape(t *testing.T) {
	cases := []struct {
		ev   *StreamEvent
		want string
	}{
		{ContentEvent("hi"), `{"content":"hi"}`},
		{ErrorEvent("boom"), `{"error":"boom"}`},
		{DoneEvent(), `{"done":true}`},
	}
	for _, c := range cases {
		data, err := json.Marshal(c.ev)
		require.NoError(t, err)
		assert.JSONEq(t, c.want, string(data))
	}

	assert.False(t, ContentEvent("x").Terminal())
	assert.True(t, ErrorEvent("x").Terminal())
	assert.True(t, DoneEvent().Terminal())
}

func TestToolResultString(t *testing.T) {
	res := SucceedList([]interface{}{map[string]interface{}{"id": "1"}, map[string]interface{}{"id": "2"}})
	assert.JSONEq(t, `{"success":true,"data":[{"id":"1"},{"id":"2"}],"count":2}`, res.String())

	res = Fail("unknown tool: %s", "nope")
	assert.JSONEq(t, `{"success":false,"error":"unknown tool: nope"}`, res.String())
}

func TestConversationHasSystem(t *testing.T) {
	conv := Conversation{NewUserMessage("hi")}
	assert.False(t, conv.HasSystem())

	conv = append(Conversation{NewSystemMessage("sys")}, conv...)
	assert.True(t, conv.HasSystem())
	assert.True(t, RoleTool.Valid())
	assert.False(t, Role("robot").Valid())
}
