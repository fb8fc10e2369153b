package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-metrics-sync/pkg/apiErrors"
	"github.com/vfg2006/campaign-metrics-sync/pkg/middleware"
)

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.Login(req.Username, req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}

// GetMe retorna o operador do token
func GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"operator":   claims.Operator,
			"role_id":    claims.RoleID,
			"expires_at": claims.ExpiresAt,
		})
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	if authenticating.IsCredentialsError(err) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao realizar login", nil)
}
