package metaclient

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
)

// GetAdAccountInsightsByID retorna o agregado da conta no período. Sem dados, retorna nil sem erro.
func (c *MetaClient) GetAdAccountInsightsByID(ctx context.Context, adAccountRef string, filters *domain.InsightFilters) (*metadomain.AdAccountInsight, error) {
	if err := c.ensureToken(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("fields", "account_id,account_name,impressions,reach,spend")
	params.Add("level", "account")
	if filters != nil && filters.StartDate != nil && filters.EndDate != nil {
		params.Add("time_range", timeRange(*filters.StartDate, *filters.EndDate))
	}
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	page, err := c.Fetcher.Fetch(ctx, c.endpoint(adAccountRef+"/insights"), params)
	if err != nil {
		logrus.WithError(err).WithField("ad_account", adAccountRef).Error("Erro ao buscar insights da conta")
		return nil, err
	}

	if len(page.Data) == 0 {
		return nil, nil
	}

	var insight metadomain.AdAccountInsight
	if err := json.Unmarshal(page.Data[0], &insight); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &insight, nil
}
