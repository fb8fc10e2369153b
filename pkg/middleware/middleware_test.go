package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/authenticating"
)

type fakeValidator struct {
	claims *domain.Claims
	err    error
}

func (f fakeValidator) ValidateToken(string) (*domain.Claims, error) {
	return f.claims, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	admin := &domain.Claims{Operator: "admin", RoleID: domain.RoleAdmin}

	tests := []struct {
		name       string
		path       string
		header     string
		validator  fakeValidator
		wantStatus int
	}{
		{name: "rota pública passa sem token", path: "/healthcheck", wantStatus: http.StatusNoContent},
		{name: "login passa sem token", path: "/v1/login", wantStatus: http.StatusNoContent},
		{name: "sem header", path: "/v1/clients", wantStatus: http.StatusUnauthorized},
		{name: "sem Bearer", path: "/v1/clients", header: "abc", wantStatus: http.StatusUnauthorized},
		{
			name:       "token expirado",
			path:       "/v1/clients",
			header:     "Bearer abc",
			validator:  fakeValidator{err: authenticating.ErrExpiredToken},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token válido",
			path:       "/v1/clients",
			header:     "Bearer abc",
			validator:  fakeValidator{claims: admin},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		wantStatus int
	}{
		{name: "admin pode disparar", claims: &domain.Claims{RoleID: domain.RoleAdmin}, wantStatus: http.StatusNoContent},
		{name: "leitor não pode disparar", claims: &domain.Claims{RoleID: domain.RoleReader}, wantStatus: http.StatusForbidden},
		{name: "sem claims", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/sync/run", nil)
			if tt.claims != nil {
				req = req.WithContext(contextWithClaims(req, tt.claims))
			}
			rec := httptest.NewRecorder()

			AdminOnly()(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func contextWithClaims(r *http.Request, claims *domain.Claims) context.Context {
	return context.WithValue(r.Context(), ContextKeyUser, claims)
}

func TestCors(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantHeader string
	}{
		{name: "curinga libera qualquer origem", allowed: []string{"*"}, origin: "http://painel.local", wantHeader: "http://painel.local"},
		{name: "origem listada", allowed: []string{"http://a.local", " http://b.local "}, origin: "http://b.local", wantHeader: "http://b.local"},
		{name: "origem não listada", allowed: []string{"http://a.local"}, origin: "http://c.local", wantHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/v1/clients", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			Cors(tt.allowed)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantHeader, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()

	LoggingMiddleware()(LogPanicMiddleware()(panicking)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/logs", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
