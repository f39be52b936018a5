package qwen

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	einoQwen "github.com/cloudwego/eino-ext/components/model/qwen"
	"github.com/cloudwego/eino/components/model"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/helper"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/spi"
)

const Name = "qwen"

var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ChatModelPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{
			PluginName: Name,
			BaseURL:    "https://dashscope.aliyuncs.com/compatible-mode/v1",
			Model:      "qwen-plus",
		},
	}
}

// BuildChatModel uses the dedicated Qwen SDK. Thinking is disabled because
// DashScope rejects tool calls in thinking mode.
func (p *Plugin) BuildChatModel(ctx context.Context, cfg *spi.ModelConfig) (model.BaseChatModel, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	conf := &einoQwen.ChatModelConfig{
		APIKey:         cfg.APIKey,
		Model:          cfg.Model,
		HTTPClient:     helper.NewHTTPClient(cfg.Timeout),
		EnableThinking: gptr.Of(false),
		ResponseFormat: &einoOpenAI.ChatCompletionResponseFormat{
			Type: einoOpenAI.ChatCompletionResponseFormatTypeText,
		},
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	if cfg.MaxTokens > 0 {
		conf.MaxTokens = gptr.Of(cfg.MaxTokens)
	}

	return einoQwen.NewChatModel(ctx, conf)
}
