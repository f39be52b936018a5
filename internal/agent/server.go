package agent

import (
	"context"
	"log"

	"github.com/kanosa0101/TODO-List/internal/agent/config"
	"github.com/kanosa0101/TODO-List/internal/agent/service/backend"
	"github.com/kanosa0101/TODO-List/internal/agent/service/chat"
	"github.com/kanosa0101/TODO-List/internal/agent/service/llm"
	"github.com/kanosa0101/TODO-List/internal/agent/service/mcp"
	"github.com/kanosa0101/TODO-List/internal/agent/service/tools"
	genericapiserver "github.com/kanosa0101/TODO-List/internal/pkg/server"
	"github.com/kanosa0101/TODO-List/pkg/http/shutdown"
	"github.com/kanosa0101/TODO-List/pkg/http/shutdown/posixsignal"
	"github.com/kanosa0101/TODO-List/pkg/logger"
	"github.com/kanosa0101/TODO-List/pkg/version"
)

type apiServer struct {
	gs               *shutdown.GracefulShutdown
	genericAPIServer *genericapiserver.GenericAPIServer

	registry  *tools.Registry
	chatSvc   *chat.Service
	mcpModule *mcp.Module
	cfg       *config.Config
}

type preparedAPIServer struct {
	*apiServer
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())

	genericConfig, err := buildGenericConfig(cfg)
	if err != nil {
		return nil, err
	}
	genericServer, err := genericConfig.Complete().New()
	if err != nil {
		return nil, err
	}

	modules, err := buildModules(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	return &apiServer{
		gs:               gs,
		genericAPIServer: genericServer,
		registry:         modules.registry,
		chatSvc:          modules.chatSvc,
		mcpModule:        modules.mcpModule,
		cfg:              cfg,
	}, nil
}

type modules struct {
	registry  *tools.Registry
	chatSvc   *chat.Service
	mcpModule *mcp.Module
}

// buildModules wires gateway, registry, LLM, chat and MCP. An LLM that
// cannot be built leaves chatSvc nil; the server still starts and reports
// llm_ready=false.
func buildModules(ctx context.Context, cfg *config.Config) (*modules, error) {
	gateway := (&backend.Config{
		BaseURL: cfg.BackendOptions.BaseURL,
		Timeout: cfg.BackendOptions.Timeout,
	}).Complete().New()

	registry, err := tools.NewCatalogRegistry(gateway)
	if err != nil {
		return nil, err
	}
	logger.Info("[Agent] tool registry ready with %d tools, backend at %s", len(registry.ListTools()), cfg.BackendOptions.BaseURL)

	m := &modules{registry: registry}

	llmModule, err := (&llm.Config{ModelOptions: cfg.ModelOptions}).Complete().New(ctx)
	if err != nil {
		logger.Error("[Agent] LLM initialization failed, chat is disabled: %v", err)
	} else {
		m.chatSvc = (&chat.Config{
			MaxIterations:                 cfg.ChatOptions.MaxIterations,
			Passthrough:                   cfg.ChatOptions.Passthrough,
			ChunkSize:                     cfg.ChatOptions.ChunkSize,
			StreamBuffer:                  cfg.ChatOptions.StreamBuffer,
			DirectStreamWithoutCredential: cfg.ChatOptions.DirectStreamWithoutCredential,
			Transport:                     llmModule.Transport,
			Tools:                         registry,
		}).Complete().New()
	}

	if cfg.MCPOptions.Enabled {
		m.mcpModule, err = (&mcp.Config{
			Path:    cfg.MCPOptions.Path,
			Version: version.Get().GitVersion,
			Tools:   registry,
		}).Complete().New()
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (s *apiServer) PrepareRun() preparedAPIServer {
	initRouter(s.genericAPIServer.Engine, s.routerDeps())

	s.gs.AddShutdownCallback(shutdown.Func(func(string) error {
		s.genericAPIServer.Close()
		return nil
	}))

	return preparedAPIServer{s}
}

func (s *apiServer) routerDeps() *routerDeps {
	deps := &routerDeps{
		tools:          s.registry,
		allowedOrigins: s.cfg.CORSOptions.AllowedOrigins,
		mcp:            s.mcpModule,
	}
	if s.chatSvc != nil {
		deps.chat = s.chatSvc
	}
	return deps
}

func (s preparedAPIServer) Run() error {
	// start shutdown managers
	if err := s.gs.Start(); err != nil {
		log.Fatalf("start shutdown manager failed: %s", err.Error())
	}

	return s.genericAPIServer.Run()
}

func buildGenericConfig(cfg *config.Config) (genericConfig *genericapiserver.Config, lastErr error) {
	genericConfig = genericapiserver.NewConfig()
	if lastErr = cfg.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	return
}
