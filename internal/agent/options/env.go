package options

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kanosa0101/TODO-List/pkg/logger"
)

// Legacy variables understood for compatibility with existing .env files.
// Each one fills its option only while the option still holds its default.
const (
	EnvModelID        = "LLM_MODEL_ID"
	EnvAPIKey         = "LLM_API_KEY"
	EnvBaseURL        = "LLM_BASE_URL"
	EnvTimeout        = "LLM_TIMEOUT"
	EnvAgentPort      = "AGENT_PORT"
	EnvBackendBaseURL = "BACKEND_BASE_URL"
)

type lookupFunc func(key string) (string, bool)

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = unquote(v)
	return v, v != ""
}

func unquote(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		v = v[1 : len(v)-1]
	}
	return v
}

func applyLegacyEnv(o *Options, lookup lookupFunc) error {
	defaults := NewOptions()

	if v, ok := lookup(EnvModelID); ok && o.ModelOptions.Model == "" {
		o.ModelOptions.Model = v
	}
	if v, ok := lookup(EnvAPIKey); ok && o.ModelOptions.APIKey == "" {
		o.ModelOptions.APIKey = v
	}
	if v, ok := lookup(EnvBaseURL); ok && o.ModelOptions.BaseURL == "" {
		o.ModelOptions.BaseURL = v
	}
	if v, ok := lookup(EnvTimeout); ok && o.ModelOptions.Timeout == defaults.ModelOptions.Timeout {
		d, err := parseSeconds(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		o.ModelOptions.Timeout = d
	}
	if v, ok := lookup(EnvAgentPort); ok && o.GenericServerRunOptions.BindPort == defaults.GenericServerRunOptions.BindPort {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not a port number", EnvAgentPort, v)
		}
		o.GenericServerRunOptions.BindPort = port
	}
	if v, ok := lookup(EnvBackendBaseURL); ok && o.BackendOptions.BaseURL == defaults.BackendOptions.BaseURL {
		o.BackendOptions.BaseURL = v
	}

	if o.ModelOptions.APIKey == "" && o.ModelOptions.Provider != "ollama" {
		logger.Warn("[Options] no LLM API key configured, chat endpoints will answer 503 until one is set")
	}
	return nil
}

// parseSeconds accepts a Go duration or a plain number of seconds.
func parseSeconds(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("%q is neither a duration nor a number of seconds", v)
	}
	return time.Duration(secs * float64(time.Second)), nil
}
