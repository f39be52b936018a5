package agent

import (
	"github.com/kanosa0101/TODO-List/internal/agent/config"
)

// Run runs the specified APIServer. This should never exit.
func Run(cfg *config.Config) error {
	server, err := createAPIServer(cfg)
	if err != nil {
		return err
	}

	return server.PrepareRun().Run()
}
