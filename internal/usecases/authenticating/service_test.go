package authenticating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-metrics-sync/internal/config"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, password string) *Service {
	cfg := &config.Config{Auth: config.Auth{Secret: "segredo-de-teste", OperatorUser: "Admin", TokenTTLHours: 1}}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		cfg.Auth.OperatorPasswordHash = string(hash)
	}

	return NewService(cfg)
}

func TestService_Login(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		username  string
		attempt   string
		wantErrIs error
	}{
		{
			name:     "login com sucesso ignora caixa e espaços do usuário",
			password: "s3nh@F0rte",
			username: "  ADMIN ",
			attempt:  "s3nh@F0rte",
		},
		{
			name:      "senha incorreta",
			password:  "s3nh@F0rte",
			username:  "admin",
			attempt:   "outra",
			wantErrIs: ErrInvalidCredentials,
		},
		{
			name:      "usuário desconhecido",
			password:  "s3nh@F0rte",
			username:  "root",
			attempt:   "s3nh@F0rte",
			wantErrIs: ErrInvalidCredentials,
		},
		{
			name:      "campos vazios",
			password:  "s3nh@F0rte",
			username:  "",
			attempt:   "",
			wantErrIs: ErrMissingRequiredData,
		},
		{
			name:      "login desabilitado sem hash configurado",
			username:  "admin",
			attempt:   "qualquer",
			wantErrIs: ErrLoginDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(t, tt.password)

			token, err := service.Login(tt.username, tt.attempt)

			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Empty(t, token)

				var authErr *AuthError
				assert.ErrorAs(t, err, &authErr)
				return
			}

			require.NoError(t, err)
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, "admin", claims.Operator)
			assert.Equal(t, domain.RoleAdmin, claims.RoleID)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService(t, "")
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issuedAt }

	token, err := service.IssueToken("script", domain.RoleReader, time.Hour)
	require.NoError(t, err)

	t.Run("token válido", func(t *testing.T) {
		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "script", claims.Operator)
		assert.Equal(t, domain.RoleReader, claims.RoleID)
	})

	t.Run("token expirado", func(t *testing.T) {
		service.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
		defer func() { service.now = func() time.Time { return issuedAt } }()

		_, err := service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("assinatura de outro segredo", func(t *testing.T) {
		other := newTestService(t, "")
		other.cfg.Auth.Secret = "outro-segredo"
		other.now = service.now

		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("texto qualquer", func(t *testing.T) {
		_, err := service.ValidateToken("nao.e.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_IssueToken_MissingSecret(t *testing.T) {
	service := NewService(&config.Config{})

	_, err := service.IssueToken("script", domain.RoleReader, 0)

	assert.ErrorIs(t, err, ErrMissingSecret)
}
