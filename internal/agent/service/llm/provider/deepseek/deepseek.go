package deepseek

import (
	"context"
	"fmt"

	einoDeepseek "github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino/components/model"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/helper"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/spi"
)

const Name = "deepseek"

var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ChatModelPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{
			PluginName: Name,
			BaseURL:    "https://api.deepseek.com/v1",
			Model:      "deepseek-chat",
		},
	}
}

// BuildChatModel uses the dedicated DeepSeek SDK. Temperature is left to the
// per-request option.
func (p *Plugin) BuildChatModel(ctx context.Context, cfg *spi.ModelConfig) (model.BaseChatModel, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	conf := &einoDeepseek.ChatModelConfig{
		APIKey:             cfg.APIKey,
		Model:              cfg.Model,
		HTTPClient:         helper.NewHTTPClient(cfg.Timeout),
		MaxTokens:          cfg.MaxTokens,
		ResponseFormatType: einoDeepseek.ResponseFormatTypeText,
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	return einoDeepseek.NewChatModel(ctx, conf)
}
