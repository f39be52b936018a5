package chat

import (
	"context"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm"
)

const (
	DefaultMaxIterations = 10
	DefaultChunkSize     = 20
	DefaultStreamBuffer  = 32
)

// ToolExecutor is the tool registry as seen by the loop.
type ToolExecutor interface {
	ToolInfos() []*schema.ToolInfo
	Execute(ctx context.Context, credential, name string, args map[string]interface{}) *entity.ToolResult
}

// Config holds the configuration of the chat service.
type Config struct {
	// MaxIterations caps the tool-executing model calls of one request.
	MaxIterations int
	// Passthrough forwards text deltas to the client while a turn streams.
	Passthrough bool
	// ChunkSize is the rune length of answer chunks when Passthrough is off.
	ChunkSize int
	// StreamBuffer is the number of events buffered ahead of a slow client.
	StreamBuffer int
	// DirectStreamWithoutCredential sends requests without a credential
	// straight to the model stream instead of through the tool loop.
	DirectStreamWithoutCredential bool

	Transport llm.Transport
	Tools     ToolExecutor

	// Now is the clock of the system directive. Defaults to time.Now.
	Now func() time.Time
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.StreamBuffer <= 0 {
		c.StreamBuffer = DefaultStreamBuffer
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return CompletedConfig{c}
}

// New creates the chat service.
func (c CompletedConfig) New() *Service {
	return &Service{
		transport: c.Transport,
		tools:     c.Tools,
		cfg:       *c.Config,
	}
}
