package syncing

import (
	"context"
	"time"

	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
)

// MetaIntegrator é o lado da Graph API usado pela sincronização
type MetaIntegrator interface {
	VerifyToken(ctx context.Context) error
	ListCampaigns(ctx context.Context, adAccountRef string) ([]domain.Campaign, error)
	GetCampaignInsights(ctx context.Context, campaignID string, since, until *time.Time) ([]domain.DailyInsight, error)
	GetAccountSummary(ctx context.Context, adAccountRef string) (*domain.AccountSummary, error)
}

// MetricsWriter grava as métricas diárias de uma campanha
type MetricsWriter interface {
	UpsertDailyMetrics(ctx context.Context, clientID, campaignID string, rows []domain.MetricRecord) (*domain.UpsertResult, error)
}

// Syncer executa uma sincronização completa
type Syncer interface {
	Run(ctx context.Context, opts RunOptions) (*domain.SyncReport, error)
}
