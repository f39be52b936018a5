package chat

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/internal/agent/service/chat/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scriptedTransport replays one fragment list per model call. When the
// script runs out, repeat is replayed forever.
type scriptedTransport struct {
	mu      sync.Mutex
	turns   [][]*entity.Fragment
	repeat  []*entity.Fragment
	openErr error
	midErr  error
	text    []string

	calls   int
	offered [][]*schema.ToolInfo
	convs   []entity.Conversation
}

func (s *scriptedTransport) Model() string { return "scripted" }

func (s *scriptedTransport) Complete(_ context.Context, _ entity.Conversation, _ float32) (string, error) {
	if s.openErr != nil {
		return "", s.openErr
	}
	return "complete answer", nil
}

func (s *scriptedTransport) CompleteStream(_ context.Context, _ entity.Conversation, _ float32) *schema.StreamReader[string] {
	return schema.StreamReaderFromArray(s.text)
}

func (s *scriptedTransport) StreamFragments(_ context.Context, conv entity.Conversation, tools []*schema.ToolInfo, _ float32) (*schema.StreamReader[*entity.Fragment], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	s.offered = append(s.offered, tools)
	snapshot := make(entity.Conversation, len(conv))
	copy(snapshot, conv)
	s.convs = append(s.convs, snapshot)

	if s.openErr != nil {
		return nil, s.openErr
	}

	turn := s.repeat
	if len(s.turns) > 0 {
		turn, s.turns = s.turns[0], s.turns[1:]
	}
	if s.midErr != nil {
		sr, sw := schema.Pipe[*entity.Fragment](len(turn) + 1)
		for _, f := range turn {
			sw.Send(f, nil)
		}
		sw.Send(nil, s.midErr)
		sw.Close()
		return sr, nil
	}
	return schema.StreamReaderFromArray(turn), nil
}

type executed struct {
	Credential string
	Name       string
	Args       map[string]interface{}
}

type fakeTools struct {
	mu       sync.Mutex
	executed []executed
	onExec   func(ctx context.Context)
}

func (f *fakeTools) ToolInfos() []*schema.ToolInfo {
	return []*schema.ToolInfo{{Name: "list_todos", Desc: "list todos"}}
}

func (f *fakeTools) Execute(ctx context.Context, credential, name string, args map[string]interface{}) *entity.ToolResult {
	if f.onExec != nil {
		f.onExec(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.executed = append(f.executed, executed{Credential: credential, Name: name, Args: args})
	return entity.SucceedList([]interface{}{map[string]interface{}{"id": 1}, map[string]interface{}{"id": 2}})
}

func newTestService(tr *scriptedTransport, tl *fakeTools, mutate ...func(*Config)) *Service {
	cfg := &Config{
		Passthrough: true,
		Transport:   tr,
		Tools:       tl,
		Now:         func() time.Time { return time.Date(2024, 5, 6, 9, 30, 0, 0, time.Local) },
	}
	for _, m := range mutate {
		m(cfg)
	}
	return cfg.Complete().New()
}

func collect(t *testing.T, sr *schema.StreamReader[*entity.StreamEvent]) []*entity.StreamEvent {
	t.Helper()
	defer sr.Close()
	var events []*entity.StreamEvent
	for {
		ev, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func userConv(text string) entity.Conversation {
	return entity.Conversation{entity.NewUserMessage(text)}
}

func toolCallTurn(id, name, args string) []*entity.Fragment {
	return []*entity.Fragment{
		{ToolCalls: []entity.ToolCallDelta{{Index: 0, ID: id, Name: name}}},
		{ToolCalls: []entity.ToolCallDelta{{Index: 0, Arguments: args}}},
	}
}

func TestListTodosScenario(t *testing.T) {
	tr := &scriptedTransport{turns: [][]*entity.Fragment{
		toolCallTurn("call_1", "list_todos", `{"filter":"all"}`),
		{{TextDelta: "You have "}, {TextDelta: "2 todos."}},
	}}
	tl := &fakeTools{}
	svc := newTestService(tr, tl)

	req := &Request{Messages: userConv("list my todos"), Credential: "tok"}
	events := collect(t, svc.Stream(context.Background(), req))

	assert.Equal(t, []*entity.StreamEvent{
		{Content: "You have "},
		{Content: "2 todos."},
		{Done: true},
	}, events)

	require.Len(t, tl.executed, 1)
	assert.Equal(t, executed{Credential: "tok", Name: "list_todos", Args: map[string]interface{}{"filter": "all"}}, tl.executed[0])

	require.Equal(t, 2, tr.calls)
	assert.NotEmpty(t, tr.offered[0])
	assert.NotEmpty(t, tr.offered[1])

	second := tr.convs[1]
	require.Len(t, second, 4)
	assert.Equal(t, entity.RoleSystem, second[0].Role)
	assert.Contains(t, second[0].Content, "2024-05-06T09:30:00")
	assert.Equal(t, entity.RoleUser, second[1].Role)
	assert.Equal(t, entity.RoleAssistant, second[2].Role)
	require.Len(t, second[2].ToolCalls, 1)
	assert.Equal(t, "call_1", second[2].ToolCalls[0].ID)
	assert.Equal(t, entity.RoleTool, second[3].Role)
	assert.Equal(t, "call_1", second[3].ToolCallID)
	assert.Equal(t, "list_todos", second[3].Name)
	assert.JSONEq(t, `{"success":true,"data":[{"id":1},{"id":2}],"count":2}`, second[3].Content)

	require.Len(t, req.Messages, 1)
	assert.Equal(t, "list my todos", req.Messages[0].Content)
}

func TestIterationLimit(t *testing.T) {
	tr := &scriptedTransport{repeat: toolCallTurn("call_x", "list_todos", `{}`)}
	tl := &fakeTools{}
	svc := newTestService(tr, tl)

	events := collect(t, svc.Stream(context.Background(), &Request{Messages: userConv("loop"), Credential: "tok"}))

	require.Len(t, events, 1)
	assert.Contains(t, events[0].Error, errno.ErrIterationLimit.Error())
	assert.Equal(t, 10, tr.calls)
	assert.Len(t, tl.executed, 10)
}

func TestIterationLimitIsConfigurable(t *testing.T) {
	tr := &scriptedTransport{repeat: toolCallTurn("call_x", "list_todos", `{}`)}
	svc := newTestService(tr, &fakeTools{}, func(c *Config) { c.MaxIterations = 3 })

	_, err := svc.Run(context.Background(), &Request{Messages: userConv("loop"), Credential: "tok"}, func(*entity.StreamEvent) bool { return true })
	assert.ErrorIs(t, err, errno.ErrIterationLimit)
	assert.Equal(t, 3, tr.calls)
}

func TestEmptyTurnRetriesWithoutTools(t *testing.T) {
	tr := &scriptedTransport{turns: [][]*entity.Fragment{
		toolCallTurn("call_1", "list_todos", `{}`),
		{},
		{{TextDelta: "Done."}},
	}}
	svc := newTestService(tr, &fakeTools{})

	events := collect(t, svc.Stream(context.Background(), &Request{Messages: userConv("hi"), Credential: "tok"}))

	assert.Equal(t, []*entity.StreamEvent{{Content: "Done."}, {Done: true}}, events)
	require.Equal(t, 3, tr.calls)
	assert.NotEmpty(t, tr.offered[1])
	assert.Nil(t, tr.offered[2])
}

func TestEmptyRetryAlsoEmptyFails(t *testing.T) {
	tr := &scriptedTransport{}
	svc := newTestService(tr, &fakeTools{})

	events := collect(t, svc.Stream(context.Background(), &Request{Messages: userConv("hi"), Credential: "tok"}))

	assert.Equal(t, []*entity.StreamEvent{{Error: "model returned no content"}}, events)
	assert.Equal(t, 2, tr.calls)
}

func TestRetryReturningToolCallsFailsLoudly(t *testing.T) {
	tr := &scriptedTransport{turns: [][]*entity.Fragment{
		{},
		toolCallTurn("call_1", "list_todos", `{}`),
	}}
	tl := &fakeTools{}
	svc := newTestService(tr, tl)

	_, err := svc.Run(context.Background(), &Request{Messages: userConv("hi"), Credential: "tok"}, func(*entity.StreamEvent) bool { return true })
	assert.ErrorIs(t, err, errno.ErrToolCallsWithheld)
	assert.Empty(t, tl.executed)
}

func TestTransportFailureIsTerminal(t *testing.T) {
	tr := &scriptedTransport{openErr: errors.New("401 invalid api key")}
	svc := newTestService(tr, &fakeTools{})

	events := collect(t, svc.Stream(context.Background(), &Request{Messages: userConv("hi"), Credential: "tok"}))

	require.Len(t, events, 1)
	assert.Contains(t, events[0].Error, "LLM call failed")
	assert.Contains(t, events[0].Error, "401 invalid api key")
	assert.Equal(t, 1, tr.calls)
}

func TestMidStreamFailureDiscardsToolCalls(t *testing.T) {
	tr := &scriptedTransport{
		turns:  [][]*entity.Fragment{toolCallTurn("call_1", "delete_todo", `{"todo_id":1}`)},
		midErr: errors.New("unexpected EOF"),
	}
	tl := &fakeTools{}
	svc := newTestService(tr, tl)

	events := collect(t, svc.Stream(context.Background(), &Request{Messages: userConv("delete"), Credential: "tok"}))

	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].Error)
	assert.Empty(t, tl.executed)
}

func TestMalformedArgumentsBecomeEmpty(t *testing.T) {
	tr := &scriptedTransport{turns: [][]*entity.Fragment{
		toolCallTurn("call_1", "list_todos", `{"filter":`),
		{{TextDelta: "ok"}},
	}}
	tl := &fakeTools{}
	svc := newTestService(tr, tl)

	events := collect(t, svc.Stream(context.Background(), &Request{Messages: userConv("list"), Credential: "tok"}))

	assert.True(t, events[len(events)-1].Done)
	require.Len(t, tl.executed, 1)
	assert.Empty(t, tl.executed[0].Args)
}

func TestToolBatchRunsInIndexOrder(t *testing.T) {
	// Deltas arrive interleaved and out of index order; index 1 is malformed.
	batch := []*entity.Fragment{
		{ToolCalls: []entity.ToolCallDelta{{Index: 2, ID: "call_c", Name: "delete_todo"}}},
		{ToolCalls: []entity.ToolCallDelta{{Index: 1, ID: "call_b", Name: "get_todo_by_id"}}},
		{ToolCalls: []entity.ToolCallDelta{{Index: 0, ID: "call_a", Name: "list_todos"}}},
		{ToolCalls: []entity.ToolCallDelta{{Index: 2, Arguments: `{"todo_id":3}`}}},
		{ToolCalls: []entity.ToolCallDelta{{Index: 1, Arguments: `{"todo_id":`}}},
		{ToolCalls: []entity.ToolCallDelta{{Index: 0, Arguments: `{"filter":"active"}`}}},
	}
	tr := &scriptedTransport{turns: [][]*entity.Fragment{batch, {{TextDelta: "Done."}}}}
	tl := &fakeTools{}
	svc := newTestService(tr, tl)

	conv, err := svc.Run(context.Background(), &Request{Messages: userConv("tidy up"), Credential: "tok"}, func(*entity.StreamEvent) bool { return true })
	require.NoError(t, err)

	assert.Equal(t, []executed{
		{Credential: "tok", Name: "list_todos", Args: map[string]interface{}{"filter": "active"}},
		{Credential: "tok", Name: "get_todo_by_id", Args: map[string]interface{}{}},
		{Credential: "tok", Name: "delete_todo", Args: map[string]interface{}{"todo_id": float64(3)}},
	}, tl.executed)

	// system, user, assistant with calls, three tool results, final answer
	require.Len(t, conv, 7)
	assistant := conv[2]
	require.Len(t, assistant.ToolCalls, 3)
	wantIDs := []string{"call_a", "call_b", "call_c"}
	wantNames := []string{"list_todos", "get_todo_by_id", "delete_todo"}
	for i := range wantIDs {
		assert.Equal(t, wantIDs[i], assistant.ToolCalls[i].ID)
		msg := conv[3+i]
		assert.Equal(t, entity.RoleTool, msg.Role)
		assert.Equal(t, wantIDs[i], msg.ToolCallID)
		assert.Equal(t, wantNames[i], msg.Name)
	}
	assert.Equal(t, "Done.", conv[6].Content)
}

func TestPanicEndsStreamWithError(t *testing.T) {
	tr := &scriptedTransport{turns: [][]*entity.Fragment{toolCallTurn("call_1", "list_todos", `{}`)}}
	tl := &fakeTools{onExec: func(context.Context) { panic("tool blew up") }}
	svc := newTestService(tr, tl)

	events := collect(t, svc.Stream(context.Background(), &Request{Messages: userConv("list"), Credential: "tok"}))

	assert.Equal(t, []*entity.StreamEvent{{Error: "internal error"}}, events)
}

func TestMissingToolCallIDIsSynthesized(t *testing.T) {
	tr := &scriptedTransport{turns: [][]*entity.Fragment{
		toolCallTurn("", "list_todos", `{}`),
		{{TextDelta: "ok"}},
	}}
	svc := newTestService(tr, &fakeTools{})

	conv, err := svc.Run(context.Background(), &Request{Messages: userConv("list"), Credential: "tok"}, func(*entity.StreamEvent) bool { return true })
	require.NoError(t, err)

	assistant, tool := conv[2], conv[3]
	require.Len(t, assistant.ToolCalls, 1)
	assert.Regexp(t, `^call_`, assistant.ToolCalls[0].ID)
	assert.Equal(t, assistant.ToolCalls[0].ID, tool.ToolCallID)
	assert.Equal(t, "ok", conv[4].Content)
}

func TestWithoutCredentialNoToolsNoDirective(t *testing.T) {
	tr := &scriptedTransport{turns: [][]*entity.Fragment{
		{{TextDelta: "I can't see your todos.", ToolCalls: []entity.ToolCallDelta{{Index: 0, Name: "list_todos"}}}},
	}}
	tl := &fakeTools{}
	svc := newTestService(tr, tl)

	events := collect(t, svc.Stream(context.Background(), &Request{Messages: userConv("list")}))

	assert.Equal(t, []*entity.StreamEvent{{Content: "I can't see your todos."}, {Done: true}}, events)
	assert.Nil(t, tr.offered[0])
	assert.Len(t, tr.convs[0], 1)
	assert.Empty(t, tl.executed)
}

func TestExistingSystemMessageIsKept(t *testing.T) {
	tr := &scriptedTransport{turns: [][]*entity.Fragment{{{TextDelta: "hi"}}}}
	svc := newTestService(tr, &fakeTools{})

	conv := entity.Conversation{entity.NewSystemMessage("be brief"), entity.NewUserMessage("hello")}
	_, err := svc.Run(context.Background(), &Request{Messages: conv, Credential: "tok"}, func(*entity.StreamEvent) bool { return true })
	require.NoError(t, err)

	require.Len(t, tr.convs[0], 2)
	assert.Equal(t, "be brief", tr.convs[0][0].Content)
}

func TestChunkedDeliveryWithoutPassthrough(t *testing.T) {
	tr := &scriptedTransport{turns: [][]*entity.Fragment{{{TextDelta: "abcd"}, {TextDelta: "efg"}}}}
	svc := newTestService(tr, &fakeTools{}, func(c *Config) {
		c.Passthrough = false
		c.ChunkSize = 3
	})

	events := collect(t, svc.Stream(context.Background(), &Request{Messages: userConv("x")}))

	assert.Equal(t, []*entity.StreamEvent{
		{Content: "abc"}, {Content: "def"}, {Content: "g"}, {Done: true},
	}, events)
}

func TestEmptyMessagesRejected(t *testing.T) {
	tr := &scriptedTransport{}
	svc := newTestService(tr, &fakeTools{})

	events := collect(t, svc.Stream(context.Background(), &Request{Credential: "tok"}))

	assert.Equal(t, []*entity.StreamEvent{{Error: errno.ErrNoMessages.Error()}}, events)
	assert.Zero(t, tr.calls)
}

func TestDirectStreamWithoutCredential(t *testing.T) {
	tr := &scriptedTransport{text: []string{"Hi", " there"}}
	svc := newTestService(tr, &fakeTools{}, func(c *Config) { c.DirectStreamWithoutCredential = true })

	events := collect(t, svc.Stream(context.Background(), &Request{Messages: userConv("hello")}))

	assert.Equal(t, []*entity.StreamEvent{{Content: "Hi"}, {Content: " there"}, {Done: true}}, events)
	assert.Zero(t, tr.calls)
}

func TestDisconnectFinishesToolsThenStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := &scriptedTransport{repeat: toolCallTurn("call_1", "list_todos", `{}`)}
	var execErr error
	tl := &fakeTools{onExec: func(execCtx context.Context) {
		cancel()
		execErr = execCtx.Err()
	}}
	svc := newTestService(tr, tl)

	_, err := svc.Run(ctx, &Request{Messages: userConv("list"), Credential: "tok"}, func(*entity.StreamEvent) bool { return true })

	assert.ErrorIs(t, err, errno.ErrAborted)
	assert.NoError(t, execErr)
	assert.Len(t, tl.executed, 1)
	assert.Equal(t, 1, tr.calls)
}

func TestClosedReaderStopsLoop(t *testing.T) {
	tr := &scriptedTransport{repeat: []*entity.Fragment{
		{TextDelta: "narration"},
		{ToolCalls: []entity.ToolCallDelta{{Index: 0, ID: "c", Name: "list_todos"}}},
	}}
	svc := newTestService(tr, &fakeTools{})

	_, err := svc.Run(context.Background(), &Request{Messages: userConv("x"), Credential: "tok"}, func(*entity.StreamEvent) bool { return false })
	assert.ErrorIs(t, err, errno.ErrAborted)
	assert.Equal(t, 1, tr.calls)
}

func TestComplete(t *testing.T) {
	svc := newTestService(&scriptedTransport{}, &fakeTools{})

	text, err := svc.Complete(context.Background(), &Request{Messages: userConv("hi")})
	require.NoError(t, err)
	assert.Equal(t, "complete answer", text)
	assert.Equal(t, "scripted", svc.Model())

	_, err = svc.Complete(context.Background(), &Request{})
	assert.ErrorIs(t, err, errno.ErrNoMessages)

	svc = newTestService(&scriptedTransport{openErr: errors.New("down")}, &fakeTools{})
	_, err = svc.Complete(context.Background(), &Request{Messages: userConv("hi")})
	assert.ErrorIs(t, err, errno.ErrTransport)
}
