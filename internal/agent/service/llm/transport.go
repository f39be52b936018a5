package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/pkg/logger"
)

const moduleName = "llm"

// Transport is the chat-completions boundary.
//
// Streams returned by a Transport are finite and not restartable. A provider
// failure surfaces exactly once, as the error of the last Recv; io.EOF marks
// a clean end.
type Transport interface {
	// Model is the model identifier reported to clients.
	Model() string

	// Complete blocks until the whole answer is available.
	Complete(ctx context.Context, conv entity.Conversation, temperature float32) (string, error)

	// CompleteStream yields non-empty text increments.
	CompleteStream(ctx context.Context, conv entity.Conversation, temperature float32) *schema.StreamReader[string]

	// StreamFragments yields text and tool-call deltas. Tools are offered, with
	// tool choice left to the model, only when tools is non-empty. A failure to
	// open the stream is returned directly.
	StreamFragments(ctx context.Context, conv entity.Conversation, tools []*schema.ToolInfo, temperature float32) (*schema.StreamReader[*entity.Fragment], error)
}

type einoTransport struct {
	cm    model.BaseChatModel
	model string
}

// NewTransport wraps an eino chat model.
func NewTransport(cm model.BaseChatModel, modelName string) Transport {
	return &einoTransport{cm: cm, model: modelName}
}

func (t *einoTransport) Model() string {
	return t.model
}

func (t *einoTransport) Complete(ctx context.Context, conv entity.Conversation, temperature float32) (string, error) {
	msg, err := t.cm.Generate(ctx, ToSchemaMessages(conv), model.WithTemperature(temperature))
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if msg == nil {
		return "", nil
	}
	return msg.Content, nil
}

func (t *einoTransport) CompleteStream(ctx context.Context, conv entity.Conversation, temperature float32) *schema.StreamReader[string] {
	sr, err := t.cm.Stream(ctx, ToSchemaMessages(conv), model.WithTemperature(temperature))
	if err != nil {
		logger.WarnX(moduleName, "[LLM] open stream failed: %v", err)
		return failedStream[string](fmt.Errorf("chat completion stream: %w", err))
	}
	return schema.StreamReaderWithConvert(sr, toText)
}

func (t *einoTransport) StreamFragments(ctx context.Context, conv entity.Conversation, tools []*schema.ToolInfo, temperature float32) (*schema.StreamReader[*entity.Fragment], error) {
	opts := []model.Option{model.WithTemperature(temperature)}
	if len(tools) > 0 {
		opts = append(opts, model.WithTools(tools), model.WithToolChoice(schema.ToolChoiceAllowed))
	}

	logger.DebugX(moduleName, "[LLM] streaming %d messages to %s with %d tools", len(conv), t.model, len(tools))
	sr, err := t.cm.Stream(ctx, ToSchemaMessages(conv), opts...)
	if err != nil {
		return nil, fmt.Errorf("chat completion stream: %w", err)
	}
	return schema.StreamReaderWithConvert(sr, toFragment), nil
}

// failedStream returns a stream whose only item is err.
func failedStream[T any](err error) *schema.StreamReader[T] {
	sr, sw := schema.Pipe[T](1)
	var zero T
	sw.Send(zero, err)
	sw.Close()
	return sr
}
