package options

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kanosa0101/TODO-List/internal/agent/service/backend"
	"github.com/spf13/pflag"
)

// BackendOptions locates the todo/notes CRUD service.
type BackendOptions struct {
	BaseURL string        `json:"base-url" mapstructure:"base-url"`
	Timeout time.Duration `json:"timeout"  mapstructure:"timeout"`
}

func NewBackendOptions() *BackendOptions {
	return &BackendOptions{
		BaseURL: backend.DefaultBaseURL,
		Timeout: backend.DefaultTimeout,
	}
}

func (o *BackendOptions) Validate() []error {
	var errs []error
	u, err := url.Parse(o.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("backend.base-url must be an absolute URL, got %q", o.BaseURL))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("backend.timeout must be positive, got %s", o.Timeout))
	}
	return errs
}

func (o *BackendOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BaseURL, "backend.base-url", o.BaseURL, "Base URL of the todo backend; /todos and /notes live below it.")
	fs.DurationVar(&o.Timeout, "backend.timeout", o.Timeout, "Timeout of a single backend call.")
}
