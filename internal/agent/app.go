package agent

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/kanosa0101/TODO-List/internal/agent/config"
	"github.com/kanosa0101/TODO-List/internal/agent/options"
	"github.com/kanosa0101/TODO-List/pkg/app"
	"github.com/kanosa0101/TODO-List/pkg/logger"
	"github.com/spf13/viper"
)

const commandDesc = `The todo-agent is the conversational backend of the TODO-List app.

It relays chat requests to a chat-completions model, lets the model call
todo and note tools against the TODO-List backend on the user's behalf,
and streams the answer back as server-sent events.`

// NewApp creates an App object with default parameters.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("todo-agent",
		basename,
		app.WithOptions(opts),
		app.WithDescription(heredoc.Doc(commandDesc)),
		app.WithDefaultValidArgs(),
		app.WithDotEnv(".env"),
		app.WithConfigChange(reloadLogLevel),
		app.WithRunFunc(run(opts)),
	)

	return application
}

func run(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		if err := logger.InitLog(opts.Log); err != nil {
			return err
		}
		defer logger.FlushLog()

		cfg, err := config.CreateConfigFromOptions(opts)
		if err != nil {
			return err
		}

		return Run(cfg)
	}
}

// reloadLogLevel applies log.level changes of the config file without a
// restart.
func reloadLogLevel(e fsnotify.Event) {
	level := viper.GetString("log.level")
	if level == "" || level == logger.GetLevel() {
		return
	}
	if err := logger.SetLevel(level); err != nil {
		logger.Warn("[Config] %s changed, ignoring log.level: %v", e.Name, err)
		return
	}
	logger.Info("[Config] %s changed, log level is now %s", e.Name, level)
}
