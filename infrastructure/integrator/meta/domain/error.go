package metadomain

// ErrorResponse representa a estrutura de erro da Graph API
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da Graph API
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired verifica se o erro é de token inválido ou expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// 190 = token inválido/expirado; 460, 463 e 467 são subcódigos de sessão expirada
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// MessageOr retorna a mensagem de erro da API ou o fallback quando vazia
func (e *ErrorResponse) MessageOr(fallback string) string {
	if e == nil || e.Error.Message == "" {
		return fallback
	}
	return e.Error.Message
}
