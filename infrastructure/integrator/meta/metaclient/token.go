package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-metrics-sync/infrastructure/integrator/meta/domain"
)

// VerifyToken consulta /me para confirmar que o token configurado é aceito pela Graph API
func (c *MetaClient) VerifyToken(ctx context.Context) (*metadomain.TokenOwner, error) {
	if err := c.ensureToken(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("fields", "id,name")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	requestURL, err := buildURL(c.endpoint("me"), params)
	if err != nil {
		return nil, err
	}

	resp, err := c.Fetcher.do(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar token: %w", err)
	}

	if resp.statusCode != http.StatusOK {
		apiErr := parseErrorBody(resp.body)
		message := apiErr.MessageOr(truncate(string(resp.body)))
		if resp.statusCode == http.StatusUnauthorized || (apiErr != nil && apiErr.IsTokenExpired()) {
			logrus.Warnf("Token inválido ou expirado. Status: %d, Mensagem: %s", resp.statusCode, message)
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, message)
		}
		return nil, &FetchError{URL: redactURL(requestURL), StatusCode: resp.statusCode, Message: message, Attempts: 1}
	}

	var owner metadomain.TokenOwner
	if err := json.Unmarshal(resp.body, &owner); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	logrus.WithField("token_owner", owner.Name).Info("Token da Meta validado")

	return &owner, nil
}
