package spi

import (
	"context"
	"time"

	"github.com/cloudwego/eino/components/model"
)

// ModelConfig is the resolved connection of the single chat model this
// service talks to.
type ModelConfig struct {
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
	// Timeout bounds connecting and waiting for response headers. Streamed
	// bodies are not capped. Zero means no timeout.
	Timeout time.Duration
}

// ChatModelPlugin builds eino chat models for one provider.
type ChatModelPlugin interface {
	// Name returns the provider name used in configuration.
	Name() string
	// DefaultBaseURL is used when the configuration leaves the base URL empty.
	DefaultBaseURL() string
	// DefaultModel is used when the configuration leaves the model empty.
	DefaultModel() string
	// BuildChatModel builds a chat model that supports Generate and Stream with
	// per-call tools, tool choice and temperature options.
	BuildChatModel(ctx context.Context, cfg *ModelConfig) (model.BaseChatModel, error)
}

// PluginFactory is a function that creates a ChatModelPlugin instance.
type PluginFactory func() ChatModelPlugin
