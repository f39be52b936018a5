package options

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kanosa0101/TODO-List/internal/pkg/server"
	"github.com/spf13/pflag"
)

// ServerRunOptions contains the options while running a generic api server.
type ServerRunOptions struct {
	Mode            string        `json:"mode"             mapstructure:"mode"`
	BindAddress     string        `json:"bind-address"     mapstructure:"bind-address"`
	BindPort        int           `json:"bind-port"        mapstructure:"bind-port"`
	Healthz         bool          `json:"healthz"          mapstructure:"healthz"`
	EnableProfiling bool          `json:"profiling"        mapstructure:"profiling"`
	Middlewares     []string      `json:"middlewares"      mapstructure:"middlewares"`
	ReadTimeout     time.Duration `json:"read-timeout"     mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `json:"write-timeout"    mapstructure:"write-timeout"`
	IdleTimeout     time.Duration `json:"idle-timeout"     mapstructure:"idle-timeout"`
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// NewServerRunOptions creates a new ServerRunOptions object with default parameters.
func NewServerRunOptions() *ServerRunOptions {
	defaults := server.NewConfig()

	return &ServerRunOptions{
		Mode:            defaults.Mode,
		BindAddress:     "0.0.0.0",
		BindPort:        5000,
		Healthz:         defaults.Healthz,
		EnableProfiling: defaults.EnableProfiling,
		Middlewares:     defaults.Middlewares,
		ReadTimeout:     defaults.ReadTimeout,
		WriteTimeout:    defaults.WriteTimeout,
		IdleTimeout:     defaults.IdleTimeout,
		ShutdownTimeout: defaults.ShutdownTimeout,
	}
}

// ApplyTo applies the run options to the method receiver and returns self.
func (s *ServerRunOptions) ApplyTo(c *server.Config) error {
	c.Mode = s.Mode
	c.Healthz = s.Healthz
	c.EnableProfiling = s.EnableProfiling
	c.Middlewares = s.Middlewares
	c.ReadTimeout = s.ReadTimeout
	c.WriteTimeout = s.WriteTimeout
	c.IdleTimeout = s.IdleTimeout
	c.ShutdownTimeout = s.ShutdownTimeout
	c.InsecureServing = &server.InsecureServingInfo{
		Address: net.JoinHostPort(s.BindAddress, strconv.Itoa(s.BindPort)),
	}

	return nil
}

// Validate checks validation of ServerRunOptions.
func (s *ServerRunOptions) Validate() []error {
	var errs []error

	switch s.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		errs = append(errs, fmt.Errorf("--server.mode must be one of debug, release, test, got %q", s.Mode))
	}

	if s.BindPort < 1 || s.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("--server.bind-port %v must be between 1 and 65535", s.BindPort))
	}

	if s.WriteTimeout < 0 || s.ReadTimeout < 0 || s.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("server timeouts must not be negative"))
	}

	return errs
}

// AddFlags adds flags for a specific APIServer to the specified FlagSet.
func (s *ServerRunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.Mode, "server.mode", s.Mode, ""+
		"Start the server in a specified server mode. Supported server mode: debug, test, release.")
	fs.StringVar(&s.BindAddress, "server.bind-address", s.BindAddress, "The IP address on which to serve.")
	fs.IntVar(&s.BindPort, "server.bind-port", s.BindPort, "The port on which to serve.")
	fs.BoolVar(&s.Healthz, "server.healthz", s.Healthz, ""+
		"Add self readiness check and install /healthz router.")
	fs.BoolVar(&s.EnableProfiling, "server.profiling", s.EnableProfiling, ""+
		"Enable profiling via web interface host:port/debug/pprof/.")
	fs.StringSliceVar(&s.Middlewares, "server.middlewares", s.Middlewares, ""+
		"List of allowed middlewares for server, comma separated. If this list is empty default middlewares will be used.")
	fs.DurationVar(&s.ReadTimeout, "server.read-timeout", s.ReadTimeout, "Maximum duration for reading the entire request.")
	fs.DurationVar(&s.WriteTimeout, "server.write-timeout", s.WriteTimeout, ""+
		"Maximum duration before timing out writes of the response. Keep 0 so streamed answers can span many tool rounds.")
	fs.DurationVar(&s.IdleTimeout, "server.idle-timeout", s.IdleTimeout, "Maximum keep-alive idle time.")
	fs.DurationVar(&s.ShutdownTimeout, "server.shutdown-timeout", s.ShutdownTimeout, "Grace period for in-flight requests on shutdown.")
}
