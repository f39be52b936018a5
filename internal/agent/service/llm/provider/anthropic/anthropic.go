package anthropic

import (
	"context"
	"fmt"

	einoClaude "github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/components/model"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/helper"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/spi"
)

const Name = "anthropic"

// defaultMaxTokens is required by the Messages API.
const defaultMaxTokens = 4096

var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ChatModelPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{
			PluginName: Name,
			Model:      "claude-sonnet-4-5",
		},
	}
}

func (p *Plugin) BuildChatModel(ctx context.Context, cfg *spi.ModelConfig) (model.BaseChatModel, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	conf := &einoClaude.Config{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		MaxTokens:  cfg.MaxTokens,
		HTTPClient: helper.NewHTTPClient(cfg.Timeout),
	}
	if conf.MaxTokens <= 0 {
		conf.MaxTokens = defaultMaxTokens
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = &cfg.BaseURL
	}

	return einoClaude.NewChatModel(ctx, conf)
}
