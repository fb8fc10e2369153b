package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
)

// GetAdCampaignInsightsByID busca as linhas diárias (time_increment=1) da campanha no período
func (c *MetaClient) GetAdCampaignInsightsByID(ctx context.Context, campaignID string, filters *domain.InsightFilters) ([]metadomain.CampaignInsight, error) {
	if err := c.ensureToken(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("fields", "campaign_id,date_start,date_stop,spend,impressions,reach,clicks,actions")
	params.Add("time_increment", "1")
	params.Add("limit", pageLimit)
	if filters != nil && filters.StartDate != nil && filters.EndDate != nil {
		params.Add("time_range", timeRange(*filters.StartDate, *filters.EndDate))
	}
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	insights, err := FetchAll[metadomain.CampaignInsight](ctx, c.Fetcher, c.endpoint(campaignID+"/insights"), params)
	if err != nil {
		logrus.WithError(err).WithField("campaign_id", campaignID).Error("Erro ao buscar insights da campanha")
		return nil, err
	}

	return insights, nil
}

func timeRange(since, until time.Time) string {
	return fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", since.Format(time.DateOnly), until.Format(time.DateOnly))
}
