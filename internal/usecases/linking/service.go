package linking

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-metrics-sync/infrastructure/repository"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
	"github.com/vfg2006/campaign-metrics-sync/pkg/utils"
)

// Service gera os links de acesso ao painel de cada cliente ativo
type Service struct {
	clientRepo   repository.ClientRepository
	dashboardURL string
	newHash      func() (string, error)
}

func NewService(clientRepo repository.ClientRepository, dashboardURL string) *Service {
	return &Service{
		clientRepo:   clientRepo,
		dashboardURL: dashboardURL,
		newHash:      utils.GenerateAccessHash,
	}
}

// EnsureAccessLinks regenera o hash dos clientes sem hash ou com hash legado e devolve
// o link de todos os clientes ativos. Uma falha de gravação não interrompe os demais.
func (s *Service) EnsureAccessLinks(ctx context.Context) ([]domain.AccessLink, error) {
	clients, err := s.clientRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	links := make([]domain.AccessLink, 0, len(clients))
	for _, client := range clients {
		link := domain.AccessLink{ClientID: client.ID, ClientName: client.Name}

		if client.NeedsAccessHash() {
			hash, err := s.newHash()
			if err != nil {
				return nil, err
			}

			if err := s.clientRepo.SetAccessHash(ctx, client.ID, hash); err != nil {
				logrus.WithFields(logrus.Fields{
					"client_id": client.ID,
					"error":     err.Error(),
				}).Error("Erro ao gravar hash de acesso do cliente")
				continue
			}

			client.AccessHash = &hash
			link.Generated = true
		}

		link.URL = client.AccessLink(s.dashboardURL)
		links = append(links, link)
	}

	return links, nil
}
