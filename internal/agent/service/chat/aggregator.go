package chat

import (
	"errors"
	"io"
	"sort"

	"github.com/cloudwego/eino/schema"
	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
)

// Response is one aggregated model turn.
type Response struct {
	Content string
	// ToolCalls is ordered by ascending index and nil when the turn has none.
	ToolCalls []*entity.ToolCall
}

// Empty reports a turn with neither text nor tool calls.
func (r Response) Empty() bool {
	return r.Content == "" && len(r.ToolCalls) == 0
}

// Accumulator is the fold state over a fragment sequence, threaded by value
// through Add. The zero value is the empty turn.
type Accumulator struct {
	content string
	calls   map[int]entity.ToolCall
}

// Add folds one fragment and leaves a untouched. Every sub-field is appended,
// never replaced.
func (a Accumulator) Add(f *entity.Fragment) Accumulator {
	if f.Empty() {
		return a
	}
	a.content += f.TextDelta

	if len(f.ToolCalls) > 0 {
		calls := make(map[int]entity.ToolCall, len(a.calls)+len(f.ToolCalls))
		for k, v := range a.calls {
			calls[k] = v
		}
		for _, d := range f.ToolCalls {
			c := calls[d.Index]
			c.ID += d.ID
			c.Name += d.Name
			c.Arguments += d.Arguments
			calls[d.Index] = c
		}
		a.calls = calls
	}
	return a
}

// Response materializes the fold.
func (a Accumulator) Response() Response {
	r := Response{Content: a.content}
	if len(a.calls) == 0 {
		return r
	}

	indexes := make([]int, 0, len(a.calls))
	for idx := range a.calls {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	r.ToolCalls = make([]*entity.ToolCall, 0, len(indexes))
	for _, idx := range indexes {
		c := a.calls[idx]
		r.ToolCalls = append(r.ToolCalls, &c)
	}
	return r
}

// Fold aggregates a whole fragment slice.
func Fold(fragments []*entity.Fragment) Response {
	var acc Accumulator
	for _, f := range fragments {
		acc = acc.Add(f)
	}
	return acc.Response()
}

// Aggregate drains sr. When passthrough is non-nil every non-empty text delta
// is handed to it before the next fragment is read. On a stream failure the
// partial response is discarded and the error returned. sr is always closed.
func Aggregate(sr *schema.StreamReader[*entity.Fragment], passthrough func(string)) (Response, error) {
	defer sr.Close()

	var acc Accumulator
	for {
		f, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			return acc.Response(), nil
		}
		if err != nil {
			return Response{}, err
		}
		if passthrough != nil && f != nil && f.TextDelta != "" {
			passthrough(f.TextDelta)
		}
		acc = acc.Add(f)
	}
}
