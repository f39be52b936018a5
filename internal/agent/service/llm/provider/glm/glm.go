package glm

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/helper"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/spi"
)

const Name = "glm"

var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ChatModelPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{
			PluginName: Name,
			BaseURL:    "https://open.bigmodel.cn/api/paas/v4",
			Model:      "glm-4-flash",
		},
	}
}

func (p *Plugin) BuildChatModel(ctx context.Context, cfg *spi.ModelConfig) (model.BaseChatModel, error) {
	return helper.NewOpenAICompatibleChatModel(ctx, cfg)
}
