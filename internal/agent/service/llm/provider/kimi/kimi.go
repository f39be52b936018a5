package kimi

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/helper"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/spi"
)

const Name = "kimi"

var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ChatModelPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{
			PluginName: Name,
			BaseURL:    "https://api.moonshot.cn/v1",
			Model:      "moonshot-v1-8k",
		},
	}
}

func (p *Plugin) BuildChatModel(ctx context.Context, cfg *spi.ModelConfig) (model.BaseChatModel, error) {
	return helper.NewOpenAICompatibleChatModel(ctx, cfg)
}
