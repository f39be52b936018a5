package helper

import (
	"os"
	"strings"
)

// BasePlugin carries the static facts of a provider.
type BasePlugin struct {
	PluginName string
	BaseURL    string
	Model      string
}

func (b *BasePlugin) Name() string {
	return b.PluginName
}

func (b *BasePlugin) DefaultBaseURL() string {
	return b.BaseURL
}

func (b *BasePlugin) DefaultModel() string {
	return b.Model
}

// ResolveEnvValue resolves "${ENV_VAR}" references in a string.
func ResolveEnvValue(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		envKey := s[2 : len(s)-1]
		return os.Getenv(envKey)
	}
	return s
}
