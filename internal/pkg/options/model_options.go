package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ModelOptions selects the chat-completions provider and the model used for
// every conversation.
type ModelOptions struct {
	Provider  string        `json:"provider"   mapstructure:"provider"`
	Model     string        `json:"model"      mapstructure:"model"`
	APIKey    string        `json:"-"          mapstructure:"api-key"`
	BaseURL   string        `json:"base-url"   mapstructure:"base-url"`
	Timeout   time.Duration `json:"timeout"    mapstructure:"timeout"`
	MaxTokens int           `json:"max-tokens" mapstructure:"max-tokens"`
}

func NewModelOptions() *ModelOptions {
	return &ModelOptions{
		Provider:  "openai",
		Timeout:   60 * time.Second,
		MaxTokens: 4096,
	}
}

func (o *ModelOptions) Validate() []error {
	var errs []error
	if o.Provider == "" {
		errs = append(errs, fmt.Errorf("llm.provider is required"))
	}
	if o.Timeout < 0 {
		errs = append(errs, fmt.Errorf("llm.timeout must not be negative, got %s", o.Timeout))
	}
	if o.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("llm.max-tokens must not be negative, got %d", o.MaxTokens))
	}
	return errs
}

func (o *ModelOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Provider, "llm.provider", o.Provider, "Chat model provider: openai, deepseek, qwen, ollama or anthropic.")
	fs.StringVar(&o.Model, "llm.model", o.Model, "Model identifier sent to the provider.")
	fs.StringVar(&o.APIKey, "llm.api-key", o.APIKey, "Provider API key. ${ENV} references are resolved.")
	fs.StringVar(&o.BaseURL, "llm.base-url", o.BaseURL, "Override the provider base URL.")
	fs.DurationVar(&o.Timeout, "llm.timeout", o.Timeout, "Connect and response-header timeout of a provider request. Streamed replies are not capped; 0 disables it.")
	fs.IntVar(&o.MaxTokens, "llm.max-tokens", o.MaxTokens, "Maximum completion tokens per request.")
}
