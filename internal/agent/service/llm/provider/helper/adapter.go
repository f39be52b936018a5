package helper

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/spi"
)

// NewOpenAICompatibleChatModel creates an Eino ChatModel using the OpenAI-compatible API.
// This is the common path for providers that expose an OpenAI-compatible endpoint
// (OpenAI, Kimi/Moonshot, GLM/ZhiPu, self-hosted gateways).
func NewOpenAICompatibleChatModel(ctx context.Context, conf *spi.ModelConfig) (model.BaseChatModel, error) {
	if conf.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	cfg := &einoOpenAI.ChatModelConfig{
		Model:      conf.Model,
		APIKey:     conf.APIKey,
		HTTPClient: NewHTTPClient(conf.Timeout),
		ResponseFormat: &einoOpenAI.ChatCompletionResponseFormat{
			Type: einoOpenAI.ChatCompletionResponseFormatTypeText,
		},
	}
	if conf.BaseURL != "" {
		cfg.BaseURL = conf.BaseURL
	}
	if conf.MaxTokens > 0 {
		cfg.MaxTokens = gptr.Of(conf.MaxTokens)
	}

	return einoOpenAI.NewChatModel(ctx, cfg)
}
