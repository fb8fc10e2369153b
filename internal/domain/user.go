package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Perfis aceitos pela API administrativa
const (
	RoleAdmin  = 1
	RoleReader = 2
)

// Claims é o conteúdo do token de operador da API administrativa
type Claims struct {
	Operator string `json:"operator"`
	RoleID   int    `json:"role_id"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
