package metaclient

import (
	"context"
	"fmt"

	metadomain "github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-metrics-sync/internal/config"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
)

const pageLimit = "100"

type Client interface {
	GetAdCampaignsByAccountID(ctx context.Context, adAccountRef string) ([]metadomain.Campaign, error)
	GetAdCampaignInsightsByID(ctx context.Context, campaignID string, filters *domain.InsightFilters) ([]metadomain.CampaignInsight, error)
	GetAdAccountInsightsByID(ctx context.Context, adAccountRef string, filters *domain.InsightFilters) (*metadomain.AdAccountInsight, error)
	VerifyToken(ctx context.Context) (*metadomain.TokenOwner, error)
}

type MetaClient struct {
	Cfg     *config.Config
	Fetcher *Fetcher
}

func NewClient(cfg *config.Config, fetcher *Fetcher) Client {
	if fetcher == nil {
		fetcher = NewFetcher(cfg)
	}

	return &MetaClient{
		Cfg:     cfg,
		Fetcher: fetcher,
	}
}

func (c *MetaClient) endpoint(path string) string {
	return fmt.Sprintf("%s/%s", c.Cfg.Meta.URL, path)
}

func (c *MetaClient) ensureToken() error {
	if c.Cfg.Meta.AccessToken == "" {
		return ErrMissingAccessToken
	}
	return nil
}
