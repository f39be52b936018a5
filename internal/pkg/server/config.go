package server

import (
	"net"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// RecommendedHomeDir defines the default directory used to place all service configurations.
	RecommendedHomeDir = ".todo-agent"

	// RecommendedEnvPrefix defines the ENV prefix used by all services.
	RecommendedEnvPrefix = "TODO_AGENT"
)

// Config is a structure used to configure a GenericAPIServer.
type Config struct {
	InsecureServing *InsecureServingInfo
	Mode            string
	Middlewares     []string
	Healthz         bool
	EnableProfiling bool

	// Long-lived SSE responses span several LLM rounds, so WriteTimeout is
	// normally left at zero and IdleTimeout carries the inactivity bound.
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// InsecureServingInfo holds configuration of the insecure http server.
type InsecureServingInfo struct {
	Address string
}

// NewConfig returns a Config struct with the default values.
func NewConfig() *Config {
	return &Config{
		Healthz:         true,
		Mode:            gin.ReleaseMode,
		Middlewares:     []string{},
		EnableProfiling: false,
		ReadTimeout:     30 * time.Second,
		IdleTimeout:     5 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
	}
}

// CompletedConfig is the completed configuration for GenericAPIServer.
type CompletedConfig struct {
	*Config
}

// Complete fills in any fields not set that are required to have valid data.
func (c *Config) Complete() CompletedConfig {
	if c.InsecureServing == nil {
		c.InsecureServing = &InsecureServingInfo{Address: net.JoinHostPort("127.0.0.1", strconv.Itoa(5000))}
	}
	if c.Mode == "" {
		c.Mode = gin.ReleaseMode
	}
	return CompletedConfig{c}
}

// New returns a new instance of GenericAPIServer from the given config.
func (c CompletedConfig) New() (*GenericAPIServer, error) {
	gin.SetMode(c.Mode)

	s := &GenericAPIServer{
		InsecureServingInfo: c.InsecureServing,
		middlewares:         c.Middlewares,
		healthz:             c.Healthz,
		enableProfiling:     c.EnableProfiling,
		readTimeout:         c.ReadTimeout,
		writeTimeout:        c.WriteTimeout,
		idleTimeout:         c.IdleTimeout,
		shutdownTimeout:     c.ShutdownTimeout,
		Engine:              gin.New(),
	}

	initGenericAPIServer(s)

	return s, nil
}
