package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"github.com/vfg2006/campaign-metrics-sync/pkg/apiErrors"
)

type ClientResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	AdAccountRef string                `json:"ad_account_ref"`
	Active       bool                  `json:"active"`
	AccessLink   string                `json:"access_link,omitempty"`
	Summary      domain.AccountSummary `json:"account_summary"`
}

// ListClients lista todos os clientes com o resumo de 30 dias da última sincronização
func ListClients(repo repository.ClientRepository, dashboardURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients, err := repo.ListAll(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar clientes")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar clientes", nil)
			return
		}

		response := make([]ClientResponse, 0, len(clients))
		for _, client := range clients {
			response = append(response, ClientResponse{
				ID:           client.ID,
				Name:         client.Name,
				AdAccountRef: client.AdAccountRef,
				Active:       client.Active,
				AccessLink:   client.AccessLink(dashboardURL),
				Summary:      client.Summary,
			})
		}

		writeJSON(w, http.StatusOK, response)
	}
}
