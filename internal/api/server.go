package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-metrics-sync/internal/api/handler"
	"github.com/vfg2006/campaign-metrics-sync/internal/api/handler/router"
	"github.com/vfg2006/campaign-metrics-sync/internal/config"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-metrics-sync/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Dependencies são os serviços expostos pela API administrativa
type Dependencies struct {
	DB            handler.Pinger
	Authenticator authenticating.Authenticator
	SyncRunner    handler.SyncRunner
	ClientRepo    repository.ClientRepository
	AuditRepo     repository.AuditLogRepository
}

func New(cfg *config.Config, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, deps),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

// NewHandler monta o router com a cadeia de middlewares global
func NewHandler(cfg *config.Config, deps Dependencies) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.DB)...),
		router.WithRoutes(handler.Authentication(deps.Authenticator)...),
		router.WithRoutes(handler.Sync(deps.SyncRunner)...),
		router.WithRoutes(handler.Clients(deps.ClientRepo, cfg.App.DashboardURL)...),
		router.WithRoutes(handler.AuditLogs(deps.AuditRepo)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.AuthMiddleware(deps.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

// Run bloqueia até o contexto ser cancelado e então desliga o servidor
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logrus.WithError(err).Error("Erro durante a execução do servidor")
		return err
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
