package options

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// CORSOptions lists the browser origins allowed to call /api.
type CORSOptions struct {
	AllowedOrigins []string `json:"allowed-origins" mapstructure:"allowed-origins"`
}

func NewCORSOptions() *CORSOptions {
	return &CORSOptions{
		AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
	}
}

func (o *CORSOptions) Validate() []error {
	var errs []error
	for _, origin := range o.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Errorf("cors.allowed-origins: %q is not an http(s) origin", origin))
		}
	}
	return errs
}

func (o *CORSOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.AllowedOrigins, "cors.allowed-origins", o.AllowedOrigins, "Origins allowed to call /api, comma separated.")
}
