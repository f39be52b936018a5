package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options contains configuration items related to logging.
type Options struct {
	Level            string   `json:"level"              mapstructure:"level"`
	Format           string   `json:"format"             mapstructure:"format"`
	EnableColor      bool     `json:"enable-color"       mapstructure:"enable-color"`
	OutputPaths      []string `json:"output-paths"       mapstructure:"output-paths"`
	ReportCaller     bool     `json:"report-caller"      mapstructure:"report-caller"`
	DisableTimestamp bool     `json:"disable-timestamp"  mapstructure:"disable-timestamp"`
}

// NewOptions creates an Options object with default parameters.
func NewOptions() *Options {
	return &Options{
		Level:       logrus.InfoLevel.String(),
		Format:      FormatText,
		EnableColor: false,
		OutputPaths: []string{"stdout"},
	}
}

// Validate validates the log options.
func (o *Options) Validate() []error {
	var errs []error

	if _, err := logrus.ParseLevel(o.Level); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q: %w", o.Level, err))
	}

	if o.Format != FormatText && o.Format != FormatJSON {
		errs = append(errs, fmt.Errorf("invalid log format %q, must be %q or %q", o.Format, FormatText, FormatJSON))
	}

	return errs
}

// AddFlags adds flags for log to the specified FlagSet object.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log.level", o.Level, "Minimum log output `LEVEL`.")
	fs.StringVar(&o.Format, "log.format", o.Format, "Log output `FORMAT`, support text or json format.")
	fs.BoolVar(&o.EnableColor, "log.enable-color", o.EnableColor, "Enable output ansi colors in text format logs.")
	fs.StringSliceVar(&o.OutputPaths, "log.output-paths", o.OutputPaths, "Output paths of log.")
	fs.BoolVar(&o.ReportCaller, "log.report-caller", o.ReportCaller, "Attach the calling function to every log entry.")
	fs.BoolVar(&o.DisableTimestamp, "log.disable-timestamp", o.DisableTimestamp, "Omit timestamps from log entries.")
}
