package llm

import (
	"context"
	"fmt"

	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/helper"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/ollama"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/spi"
	"github.com/kanosa0101/TODO-List/internal/pkg/options"
	"github.com/kanosa0101/TODO-List/pkg/logger"
)

// Config holds the configuration for the LLM module.
type Config struct {
	ModelOptions *options.ModelOptions

	// OutOfTreeRegistry allows registering additional provider plugins
	// beyond the built-in ones. If nil, only in-tree providers are available.
	OutOfTreeRegistry *provider.Registry
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.ModelOptions == nil {
		c.ModelOptions = options.NewModelOptions()
	}
	return CompletedConfig{c}
}

// Module owns the chat model used by every conversation.
type Module struct {
	Transport Transport
	Registry  *provider.Registry
	Provider  string
}

// New resolves the configured provider and builds its chat model.
//
// Initialization flow:
// 1. Build the in-tree provider Registry and merge out-of-tree providers
// 2. Resolve the provider plugin named by llm.provider
// 3. Fill model and base URL from the plugin defaults
// 4. Build the eino chat model and wrap it as a Transport
func (c CompletedConfig) New(ctx context.Context) (*Module, error) {
	logger.Info("[LLM] creating LLM module...")

	registry := provider.NewInTreeRegistry()
	if c.OutOfTreeRegistry != nil {
		if err := registry.Merge(c.OutOfTreeRegistry); err != nil {
			return nil, fmt.Errorf("failed to merge out-of-tree providers: %w", err)
		}
	}
	logger.Info("[LLM] provider registry initialized with %d plugins: %v", registry.Len(), registry.List())

	opts := c.ModelOptions
	factory, err := registry.Get(opts.Provider)
	if err != nil {
		return nil, err
	}
	plugin := factory()

	cfg := resolveModelConfig(plugin, opts)
	if cfg.APIKey == "" && plugin.Name() != ollama.Name {
		return nil, fmt.Errorf("no API key configured for provider %s, set llm.api-key or LLM_API_KEY", plugin.Name())
	}

	cm, err := plugin.BuildChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s chat model %q: %w", plugin.Name(), cfg.Model, err)
	}
	logger.Info("[LLM] chat model ready: provider=%s model=%s base-url=%s", plugin.Name(), cfg.Model, cfg.BaseURL)

	return &Module{
		Transport: NewTransport(cm, cfg.Model),
		Registry:  registry,
		Provider:  plugin.Name(),
	}, nil
}

func resolveModelConfig(plugin spi.ChatModelPlugin, opts *options.ModelOptions) *spi.ModelConfig {
	cfg := &spi.ModelConfig{
		Model:     opts.Model,
		APIKey:    helper.ResolveEnvValue(opts.APIKey),
		BaseURL:   opts.BaseURL,
		MaxTokens: opts.MaxTokens,
		Timeout:   opts.Timeout,
	}
	if cfg.Model == "" {
		cfg.Model = plugin.DefaultModel()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = plugin.DefaultBaseURL()
	}
	return cfg
}
