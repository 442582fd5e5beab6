package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/internal/common/config"
	"github.com/amoylab/sessiongate/internal/common/dto"
	"github.com/amoylab/sessiongate/internal/common/errorx"
	"github.com/amoylab/sessiongate/internal/host"
	"github.com/amoylab/sessiongate/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

type (
	// GateFilter is the authentication filter plus the messages it answers
	// with, so server-level errors use the same language
	GateFilter interface {
		host.Filter
		Messages() *errorx.ErrorTranslator
	}

	// Server exposes the gate over HTTP: forward-auth, health, metrics and
	// an optional authenticating reverse proxy
	Server struct {
		logger     *zap.Logger
		cfg        *config.GatewayConfig
		router     *gin.Engine
		httpServer *http.Server
		filter     GateFilter
		metrics    *metrics.Metrics
	}
)

// NewServer builds the router. m may be nil when metrics are disabled.
func NewServer(logger *zap.Logger, cfg *config.GatewayConfig, filter GateFilter, m *metrics.Metrics) (*Server, error) {
	s := &Server{
		logger:  logger.Named("server"),
		cfg:     cfg,
		router:  gin.New(),
		filter:  filter,
		metrics: m,
	}

	s.router.Use(s.recoveryMiddleware())
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.loggerMiddleware())
	if cfg.Tracing.Enabled {
		s.router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	if m != nil {
		s.router.Use(m.Middleware())
	}

	if err := s.registerRoutes(); err != nil {
		return nil, err
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) registerRoutes() error {
	s.router.GET(cnst.PathHealthCheck, s.handleHealthCheck)
	s.router.Any(cnst.PathVerify, host.Verify(s.filter))
	if s.metrics != nil {
		s.router.GET(s.cfg.Metrics.Path, gin.WrapH(s.metrics.Handler()))
	}

	if s.cfg.Upstream.URL == "" {
		return nil
	}
	proxy, err := s.newUpstreamProxy(s.cfg.Upstream.URL)
	if err != nil {
		return err
	}
	s.router.NoRoute(host.Middleware(s.filter), gin.WrapH(proxy))
	s.logger.Info("Proxy mode enabled", zap.String("upstream", s.cfg.Upstream.URL))
	return nil
}

func (s *Server) handleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves in the background until Shutdown is called
func (s *Server) Start() {
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("failed to start server", zap.Error(err))
		}
	}()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
