package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantStatus int
	}{
		{name: "token inválido", code: ErrInvalidToken, wantStatus: http.StatusUnauthorized},
		{name: "sincronização em andamento", code: ErrSyncAlreadyRunning, wantStatus: http.StatusConflict},
		{name: "requisição inválida", code: ErrInvalidRequest, wantStatus: http.StatusBadRequest},
		{name: "código desconhecido vira 500", code: "XYZ_999", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "mensagem", map[string]any{"campo": "valor"})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}
