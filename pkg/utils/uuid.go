package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	lowercaseCharacters = "abcdefghijklmnopqrstuvwxyz0123456789"

	AccessHashLength = 32
)

// GenerateAccessHash gera o hash do link de acesso do cliente ao dashboard
func GenerateAccessHash() (string, error) {
	return gonanoid.Generate(lowercaseCharacters, AccessHashLength)
}
