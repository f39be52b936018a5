package options

import (
	"github.com/kanosa0101/TODO-List/internal/agent/handler/middleware"
	genericoptions "github.com/kanosa0101/TODO-List/internal/pkg/options"
	"github.com/kanosa0101/TODO-List/internal/pkg/server"
	"github.com/kanosa0101/TODO-List/pkg/logger"
	"github.com/kanosa0101/TODO-List/pkg/utils/cliflag"
	"github.com/kanosa0101/TODO-List/pkg/utils/json"
)

// Options is the full option set of the todo-agent server.
type Options struct {
	GenericServerRunOptions *genericoptions.ServerRunOptions `json:"server"  mapstructure:"server"`
	Log                     *logger.Options                  `json:"log"     mapstructure:"log"`
	ModelOptions            *genericoptions.ModelOptions     `json:"llm"     mapstructure:"llm"`
	BackendOptions          *BackendOptions                  `json:"backend" mapstructure:"backend"`
	ChatOptions             *ChatOptions                     `json:"chat"    mapstructure:"chat"`
	CORSOptions             *CORSOptions                     `json:"cors"    mapstructure:"cors"`
	MCPOptions              *MCPOptions                      `json:"mcp"     mapstructure:"mcp"`
}

func NewOptions() *Options {
	serverRun := genericoptions.NewServerRunOptions()
	serverRun.Middlewares = []string{middleware.RequestLogName}

	return &Options{
		GenericServerRunOptions: serverRun,
		Log:                     logger.NewOptions(),
		ModelOptions:            genericoptions.NewModelOptions(),
		BackendOptions:          NewBackendOptions(),
		ChatOptions:             NewChatOptions(),
		CORSOptions:             NewCORSOptions(),
		MCPOptions:              NewMCPOptions(),
	}
}

func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.GenericServerRunOptions.AddFlags(fss.FlagSet("server"))
	o.Log.AddFlags(fss.FlagSet("log"))
	o.ModelOptions.AddFlags(fss.FlagSet("llm"))
	o.BackendOptions.AddFlags(fss.FlagSet("backend"))
	o.ChatOptions.AddFlags(fss.FlagSet("chat"))
	o.CORSOptions.AddFlags(fss.FlagSet("cors"))
	o.MCPOptions.AddFlags(fss.FlagSet("mcp"))
	return fss
}

// Validate checks every option group.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.GenericServerRunOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	errs = append(errs, o.ModelOptions.Validate()...)
	errs = append(errs, o.BackendOptions.Validate()...)
	errs = append(errs, o.ChatOptions.Validate()...)
	errs = append(errs, o.CORSOptions.Validate()...)
	errs = append(errs, o.MCPOptions.Validate()...)
	return errs
}

// ApplyTo applies the run options to the generic server config.
func (o *Options) ApplyTo(c *server.Config) error {
	return o.GenericServerRunOptions.ApplyTo(c)
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}

// Complete overlays the legacy environment variables.
func (o *Options) Complete() error {
	return applyLegacyEnv(o, lookupEnv)
}
