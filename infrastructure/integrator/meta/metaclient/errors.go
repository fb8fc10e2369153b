package metaclient

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indica token inválido ou expirado. Não é retentado.
	ErrInvalidCredentials = errors.New("meta: access token inválido ou expirado")

	ErrMissingAccessToken = errors.New("meta: access token não configurado")
)

// FetchError é o erro terminal de uma requisição depois de esgotar as tentativas
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
	Attempts   int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("meta: requisição falhou após %d tentativa(s). Status: %d, Mensagem: %s", e.Attempts, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("meta: requisição falhou após %d tentativa(s): %s", e.Attempts, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsCredentialError indica se o erro deve abortar toda a execução
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrMissingAccessToken)
}
