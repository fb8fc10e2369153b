package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-metrics-sync/internal/usecases/syncing"
	"github.com/vfg2006/campaign-metrics-sync/pkg/apiErrors"
	"github.com/vfg2006/campaign-metrics-sync/pkg/middleware"
	"github.com/vfg2006/campaign-metrics-sync/pkg/utils"
)

// SyncRunner é o agendador visto pela API
type SyncRunner interface {
	TriggerManualSync(opts syncing.RunOptions) error
	GetStatus() map[string]any
}

// RunSync dispara uma sincronização em background. Aceita ?client=, ?since= e ?until= (YYYY-MM-DD).
func RunSync(runner SyncRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		since, err := utils.ParseDate(query.Get("since"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro since inválido, use YYYY-MM-DD", nil)
			return
		}

		until, err := utils.ParseDate(query.Get("until"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro until inválido, use YYYY-MM-DD", nil)
			return
		}

		if since != nil && until != nil && since.After(*until) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "since deve ser anterior a until", nil)
			return
		}

		opts := syncing.RunOptions{
			ClientFilter: strings.TrimSpace(query.Get("client")),
			Since:        since,
			Until:        until,
		}

		operator := ""
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			operator = claims.Operator
		}

		logrus.WithFields(logrus.Fields{
			"operator_name": operator,
			"client_filter": opts.ClientFilter,
		}).Info("Sincronização manual solicitada pela API")

		if err := runner.TriggerManualSync(opts); err != nil {
			if errors.Is(err, syncing.ErrSyncAlreadyRunning) {
				apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, err.Error(), nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar sincronização", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message":       "Sincronização iniciada com sucesso",
			"client_filter": opts.ClientFilter,
		})
	}
}

func GetSyncStatus(runner SyncRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, runner.GetStatus())
	}
}
