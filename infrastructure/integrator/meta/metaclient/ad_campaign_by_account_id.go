package metaclient

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta/domain"
)

// GetAdCampaignsByAccountID lista todas as campanhas da conta, seguindo a paginação
func (c *MetaClient) GetAdCampaignsByAccountID(ctx context.Context, adAccountRef string) ([]metadomain.Campaign, error) {
	if err := c.ensureToken(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("fields", "id,name,status,objective")
	params.Add("limit", pageLimit)
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	campaigns, err := FetchAll[metadomain.Campaign](ctx, c.Fetcher, c.endpoint(adAccountRef+"/campaigns"), params)
	if err != nil {
		logrus.WithError(err).WithField("ad_account", adAccountRef).Error("Erro ao listar campanhas da conta")
		return nil, err
	}

	return campaigns, nil
}
