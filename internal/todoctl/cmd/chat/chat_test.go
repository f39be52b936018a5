package chat

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/kanosa0101/TODO-List/internal/todoctl/client"
	"github.com/kanosa0101/TODO-List/internal/todoctl/cmd/util"
	"github.com/kanosa0101/TODO-List/pkg/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

type fakeFactory struct{ server string }

func (f fakeFactory) ServerAddr() string       { return f.server }
func (f fakeFactory) Token() string            { return "tok" }
func (f fakeFactory) HTTPClient() *http.Client { return http.DefaultClient }

// echoAgent answers every request with the number of messages it received.
func echoAgent(t *testing.T, requests *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(requests, 1)
		var body struct {
			Messages []client.ChatMessage `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprintf(w, "data:{\"content\":\"got %d\"}\n\n", len(body.Messages))
		fmt.Fprint(w, "data:{\"done\":true}\n\n")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunOnce(t *testing.T) {
	var n int32
	srv := echoAgent(t, &n)

	var out bytes.Buffer
	o := NewChatOptions(fakeFactory{server: srv.URL}, util.IOStreams{Out: &out})
	require.NoError(t, o.Run(context.Background(), []string{"hello", "there"}))

	assert.Equal(t, "got 1\n", out.String())
	assert.Equal(t, int32(1), n)
}

func TestInteractiveKeepsHistory(t *testing.T) {
	var n int32
	srv := echoAgent(t, &n)

	in := strings.NewReader("first\n\nsecond\n/clear\nthird\n/quit\n")
	var out bytes.Buffer
	c := client.NewAgentClient(srv.URL, "", nil)

	require.NoError(t, RunInteractive(context.Background(), c, util.IOStreams{In: in, Out: &out}))

	text := out.String()
	assert.Contains(t, text, "got 1")
	assert.Contains(t, text, "got 3")
	assert.Contains(t, text, "Conversation cleared.")
	assert.Equal(t, 2, strings.Count(text, "got 1"))
	assert.Equal(t, int32(3), n)
}
