package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/kanosa0101/TODO-List/internal/pkg/core"
	"github.com/kanosa0101/TODO-List/pkg/logger"
	"github.com/kanosa0101/TODO-List/pkg/version"
)

// GenericAPIServer contains state for a generic api server.
type GenericAPIServer struct {
	middlewares []string

	// InsecureServingInfo holds configuration of the insecure HTTP server.
	InsecureServingInfo *InsecureServingInfo

	healthz         bool
	enableProfiling bool

	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration

	*gin.Engine
	insecureServer *http.Server
}

func initGenericAPIServer(s *GenericAPIServer) {
	s.Setup()
	s.InstallMiddlewares()
	s.InstallAPIs()
}

// InstallAPIs install generic apis.
func (s *GenericAPIServer) InstallAPIs() {
	if s.healthz {
		s.GET("/healthz", func(c *gin.Context) {
			core.WriteResponse(c, nil, map[string]string{"status": "ok"})
		})
	}

	if s.enableProfiling {
		pprof.Register(s.Engine)
	}

	s.GET("/version", func(c *gin.Context) {
		core.WriteResponse(c, nil, version.Get())
	})
}

// Setup do some setup work for gin engine.
func (s *GenericAPIServer) Setup() {
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		logger.Debug("%-6s %-s --> %s (%d handlers)", httpMethod, absolutePath, handlerName, nuHandlers)
	}
}

// InstallMiddlewares install generic middlewares.
func (s *GenericAPIServer) InstallMiddlewares() {
	s.Use(gin.Recovery())

	for _, m := range s.middlewares {
		mw, ok := Middlewares[m]
		if !ok {
			logger.Warn("can not find middleware: %s", m)
			continue
		}

		logger.Info("install middleware: %s", m)
		s.Use(mw)
	}
}

// Run spawns the http server. It only returns when the port cannot be listened
// on or the server is closed.
func (s *GenericAPIServer) Run() error {
	s.insecureServer = &http.Server{
		Addr:         s.InsecureServingInfo.Address,
		Handler:      s,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  s.idleTimeout,
	}

	logger.Info("Start to listening the incoming requests on http address: %s", s.InsecureServingInfo.Address)

	if err := s.insecureServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logger.Info("Server on %s stopped", s.InsecureServingInfo.Address)
	return nil
}

// Close graceful shutdown the api server.
func (s *GenericAPIServer) Close() {
	if s.insecureServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.insecureServer.Shutdown(ctx); err != nil {
		logger.Warn("Shutdown insecure server failed: %s", err.Error())
	}
}
