package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-metrics-sync/internal/config"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"github.com/vfg2006/campaign-metrics-sync/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = 24 * time.Hour
	issuer          = "campaign-metrics-sync"
)

type Authenticator interface {
	Login(username, password string) (string, error)
	IssueToken(operator string, roleID int, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg *config.Config
	now func() time.Time
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg: cfg,
		now: time.Now,
	}
}

// Login confere usuário e senha do operador configurado e devolve um token de administrador
func (s *Service) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios")
	}

	if s.cfg.Auth.OperatorPasswordHash == "" {
		return "", NewAuthError(ErrLoginDisabled, apiErrors.ErrInvalidCredentials, "AUTH_OPERATOR_PASSWORD_HASH não configurado")
	}

	username = handleUsername(username)
	if username != handleUsername(s.cfg.Auth.OperatorUser) {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Usuário ou senha incorretos")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Auth.OperatorPasswordHash), []byte(password)); err != nil {
		logrus.WithField("operator", username).Warn("Tentativa de login com senha incorreta")
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Usuário ou senha incorretos")
	}

	token, err := s.IssueToken(username, domain.RoleAdmin, s.tokenTTL())
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

// IssueToken gera um token assinado. Usado pelo login e pelo comando `token` para scripts.
func (s *Service) IssueToken(operator string, roleID int, ttl time.Duration) (string, error) {
	if s.cfg.Auth.Secret == "" {
		return "", ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = s.tokenTTL()
	}

	now := s.now()
	claims := domain.Claims{
		Operator: operator,
		RoleID:   roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   operator,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func (s *Service) tokenTTL() time.Duration {
	if s.cfg.Auth.TokenTTLHours > 0 {
		return time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	}
	return defaultTokenTTL
}

func handleUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
