package handler

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-metrics-sync/pkg/apiErrors"
)

const maxLogsLimit = 500

// ListLogs devolve os registros mais recentes do audit log. ?limit= entre 1 e 500.
func ListLogs(repo repository.AuditLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 || parsed > maxLogsLimit {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um número entre 1 e 500", nil)
				return
			}
			limit = parsed
		}

		entries, err := repo.ListRecent(r.Context(), limit)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar audit logs")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar logs", nil)
			return
		}

		writeJSON(w, http.StatusOK, entries)
	}
}
