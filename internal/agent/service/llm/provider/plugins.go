package provider

import (
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/anthropic"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/deepseek"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/glm"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/kimi"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/ollama"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/openai"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/qwen"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm/provider/spi"
)

func NewInTreeRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(anthropic.Name, func() spi.ChatModelPlugin { return anthropic.New() })
	r.MustRegister(openai.Name, func() spi.ChatModelPlugin { return openai.New() })
	r.MustRegister(deepseek.Name, func() spi.ChatModelPlugin { return deepseek.New() })
	r.MustRegister(glm.Name, func() spi.ChatModelPlugin { return glm.New() })
	r.MustRegister(kimi.Name, func() spi.ChatModelPlugin { return kimi.New() })
	r.MustRegister(qwen.Name, func() spi.ChatModelPlugin { return qwen.New() })
	r.MustRegister(ollama.Name, func() spi.ChatModelPlugin { return ollama.New() })
	return r
}
