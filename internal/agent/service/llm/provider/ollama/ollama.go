package ollama

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"
	einoOllama "github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino/components/model"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/helper"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/spi"
)

const Name = "ollama"

var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ChatModelPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{
			PluginName: Name,
			BaseURL:    "http://127.0.0.1:11434",
			Model:      "qwen2.5:7b",
		},
	}
}

func (p *Plugin) BuildChatModel(ctx context.Context, cfg *spi.ModelConfig) (model.BaseChatModel, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	conf := &einoOllama.ChatModelConfig{
		BaseURL:    p.BaseURL,
		Model:      cfg.Model,
		HTTPClient: helper.NewHTTPClient(cfg.Timeout),
		Options:    &einoOllama.Options{},
		Thinking: &einoOllama.ThinkValue{
			Value: gptr.Of(false),
		},
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	return einoOllama.NewChatModel(ctx, conf)
}
