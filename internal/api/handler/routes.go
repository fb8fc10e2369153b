package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-metrics-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-metrics-sync/internal/api/handler/router"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-metrics-sync/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Sync(runner SyncRunner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/run",
			Method:      http.MethodPost,
			Handler:     RunSync(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Clients(repo repository.ClientRepository, dashboardURL string) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients",
			Method:      http.MethodGet,
			Handler:     ListClients(repo, dashboardURL),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func AuditLogs(repo repository.AuditLogRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/logs",
			Method:      http.MethodGet,
			Handler:     ListLogs(repo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
