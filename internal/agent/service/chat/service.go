package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/internal/agent/service/chat/pkg/errno"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm"
	"github.com/kanosa0101/TODO-List/internal/agent/service/tools"
	"github.com/kanosa0101/TODO-List/pkg/logger"
	"github.com/kanosa0101/TODO-List/pkg/utils/safego"
)

const moduleName = "chat"

// errInternal is the public text of an unexpected failure.
const errInternal = "internal error"

// Request is one chat request. Messages belong to the caller and are never
// modified.
type Request struct {
	Messages    entity.Conversation
	Temperature float32
	// Credential is the end user's bearer token. Tools are offered to the
	// model only when it is set.
	Credential string
}

// Emitter delivers one event downstream and reports whether the receiver is
// still listening.
type Emitter func(ev *entity.StreamEvent) bool

// Service runs conversations against one model.
type Service struct {
	transport llm.Transport
	tools     ToolExecutor
	cfg       Config
}

// Model returns the model identifier.
func (s *Service) Model() string {
	return s.transport.Model()
}

// Complete answers without tools and without streaming.
func (s *Service) Complete(ctx context.Context, req *Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", errno.ErrNoMessages
	}
	text, err := s.transport.Complete(ctx, req.Messages, req.Temperature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errno.ErrTransport, err)
	}
	return text, nil
}

// Stream starts the conversation and returns its events. The stream ends
// with exactly one error or done event unless the reader is closed first.
// The caller must close the reader.
func (s *Service) Stream(ctx context.Context, req *Request) *schema.StreamReader[*entity.StreamEvent] {
	sr, sw := schema.Pipe[*entity.StreamEvent](s.cfg.StreamBuffer)
	emit := func(ev *entity.StreamEvent) bool {
		return !sw.Send(ev, nil)
	}

	safego.Go(ctx, func() {
		defer sw.Close()
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorX(moduleName, "[Chat] conversation panicked: %v\n%s", r, debug.Stack())
				emit(entity.ErrorEvent(errInternal))
			}
		}()

		var err error
		if req.Credential == "" && s.cfg.DirectStreamWithoutCredential {
			err = s.direct(ctx, req, emit)
		} else {
			_, err = s.Run(ctx, req, emit)
		}

		switch {
		case err == nil:
			emit(entity.DoneEvent())
		case errors.Is(err, errno.ErrAborted):
			logger.InfoX(moduleName, "[Chat] %v", err)
		default:
			logger.WarnX(moduleName, "[Chat] conversation failed: %v", err)
			emit(entity.ErrorEvent(err.Error()))
		}
	})
	return sr
}

// direct relays the model's text stream without the tool loop.
func (s *Service) direct(ctx context.Context, req *Request, emit Emitter) error {
	if len(req.Messages) == 0 {
		return errno.ErrNoMessages
	}
	sr := s.transport.CompleteStream(ctx, req.Messages, req.Temperature)
	defer sr.Close()

	for {
		chunk, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", errno.ErrTransport, err)
		}
		if !emit(entity.ContentEvent(chunk)) {
			return fmt.Errorf("%w: client went away", errno.ErrAborted)
		}
	}
}

// Run drives the tool loop, emitting answer text through emit. It returns
// the final conversation. Terminal events are left to the caller.
func (s *Service) Run(ctx context.Context, req *Request, emit Emitter) (entity.Conversation, error) {
	conv, err := s.seed(req)
	if err != nil {
		return nil, err
	}

	var offered []*schema.ToolInfo
	if req.Credential != "" {
		offered = s.tools.ToolInfos()
	}

	listening := true
	send := func(ev *entity.StreamEvent) {
		if listening {
			listening = emit(ev)
		}
	}

	iterations := 0
	retried := false
	for {
		if err := ctx.Err(); err != nil {
			return conv, fmt.Errorf("%w: %v", errno.ErrAborted, err)
		}
		if !listening {
			return conv, fmt.Errorf("%w: client went away", errno.ErrAborted)
		}
		if iterations >= s.cfg.MaxIterations {
			return conv, fmt.Errorf("%w: stopped after %d iterations", errno.ErrIterationLimit, iterations)
		}

		turnTools := offered
		if retried {
			turnTools = nil
		}

		var passthrough func(string)
		if s.cfg.Passthrough {
			passthrough = func(delta string) { send(entity.ContentEvent(delta)) }
		}

		resp, err := s.callLLM(ctx, conv, turnTools, req.Temperature, passthrough)
		if err != nil {
			return conv, fmt.Errorf("%w: %v", errno.ErrTransport, err)
		}

		switch {
		case retried && len(resp.ToolCalls) > 0:
			return conv, fmt.Errorf("%w: %d tool calls", errno.ErrToolCallsWithheld, len(resp.ToolCalls))

		case len(resp.ToolCalls) > 0 && req.Credential != "":
			if err := ctx.Err(); err != nil {
				return conv, fmt.Errorf("%w: %v", errno.ErrAborted, err)
			}
			conv = s.executeTools(ctx, req.Credential, conv, resp)
			iterations++

		case resp.Content != "":
			if !s.cfg.Passthrough {
				for _, chunk := range chunkRunes(resp.Content, s.cfg.ChunkSize) {
					send(entity.ContentEvent(chunk))
				}
			}
			conv = append(conv, entity.NewAssistantMessage(resp.Content))
			logger.InfoX(moduleName, "[Chat] answered after %d tool iterations", iterations)
			return conv, nil

		default:
			if retried {
				return conv, errno.ErrEmptyTurn
			}
			logger.InfoX(moduleName, "[Chat] empty turn after %d iterations, retrying without tools", iterations)
			retried = true
		}
	}
}

// seed deep-copies the caller's conversation and prepends the system
// directive when tools will be offered.
func (s *Service) seed(req *Request) (entity.Conversation, error) {
	if len(req.Messages) == 0 {
		return nil, errno.ErrNoMessages
	}

	var conv entity.Conversation
	if err := copier.CopyWithOption(&conv, &req.Messages, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("copy conversation: %w", err)
	}

	if req.Credential != "" && !conv.HasSystem() {
		conv = append(entity.Conversation{entity.NewSystemMessage(SystemPrompt(s.cfg.Now()))}, conv...)
	}
	return conv, nil
}

func (s *Service) callLLM(ctx context.Context, conv entity.Conversation, offered []*schema.ToolInfo, temperature float32, passthrough func(string)) (Response, error) {
	start := time.Now()
	sr, err := s.transport.StreamFragments(ctx, conv, offered, temperature)
	if err != nil {
		return Response{}, err
	}
	resp, err := Aggregate(sr, passthrough)
	if err != nil {
		return Response{}, err
	}
	logger.DebugX(moduleName, "[Chat] turn finished in %s: %d chars, %d tool calls",
		time.Since(start).Round(time.Millisecond), len(resp.Content), len(resp.ToolCalls))
	return resp, nil
}

// executeTools records the assistant turn and runs its calls one by one in
// emitted order. Calls run on a context detached from cancellation; the
// gateway timeout still bounds each call.
func (s *Service) executeTools(ctx context.Context, credential string, conv entity.Conversation, resp Response) entity.Conversation {
	for _, call := range resp.ToolCalls {
		if call.ID == "" {
			call.ID = "call_" + uuid.NewString()
		}
	}
	conv = append(conv, entity.NewAssistantMessage(resp.Content, resp.ToolCalls...))

	detached := context.WithoutCancel(ctx)
	for _, call := range resp.ToolCalls {
		args, ok := tools.ParseArguments(call.Arguments)
		if !ok {
			logger.WarnX(moduleName, "[Chat] malformed arguments for %s, using none: %q", call.Name, call.Arguments)
		}
		logger.InfoX(moduleName, "[Chat] calling tool %s (%s)", call.Name, call.ID)

		result := s.tools.Execute(detached, credential, call.Name, args)
		conv = append(conv, entity.NewToolMessage(call.ID, call.Name, result.String()))
	}
	return conv
}

// chunkRunes splits s into pieces of at most size runes.
func chunkRunes(s string, size int) []string {
	runes := []rune(s)
	chunks := make([]string, 0, len(runes)/size+1)
	for len(runes) > 0 {
		n := size
		if n > len(runes) {
			n = len(runes)
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}
