package domain

import (
	"strings"
	"time"
)

const adAccountPrefix = "act_"

type Client struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	AdAccountRef string         `json:"ad_account_ref"`
	Active       bool           `json:"active"`
	AccessHash   *string        `json:"access_hash,omitempty"`
	Summary      AccountSummary `json:"account_summary"`
}

// AccountSummary são os agregados de 30 dias da conta de anúncios, sobrescritos a cada sincronização
type AccountSummary struct {
	Reach30d       int64      `json:"account_reach_30d"`
	Impressions30d int64      `json:"account_impressions_30d"`
	Spend30d       float64    `json:"account_spend_30d"`
	LastSyncAt     *time.Time `json:"last_sync_at"`
}

// NormalizeAdAccountRef garante o formato act_XXXXXXXXX
func NormalizeAdAccountRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	return adAccountPrefix + strings.TrimPrefix(ref, adAccountPrefix)
}

// MatchesFilter compara o nome do cliente com o filtro (substring, sem diferenciar maiúsculas)
func (c *Client) MatchesFilter(filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}

	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter))
}

// MinAccessHashLength abaixo disso o hash é considerado legado e é regenerado
const MinAccessHashLength = 20

// NeedsAccessHash indica se o cliente precisa de um novo hash de acesso ao painel
func (c *Client) NeedsAccessHash() bool {
	return c.AccessHash == nil || len(strings.TrimSpace(*c.AccessHash)) < MinAccessHashLength
}

// AccessLink monta o link do painel do cliente. Vazio se não houver hash.
func (c *Client) AccessLink(dashboardURL string) string {
	if c.AccessHash == nil || *c.AccessHash == "" {
		return ""
	}
	return dashboardURL + *c.AccessHash
}

// AccessLink é o resultado da geração de links para um cliente
type AccessLink struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	URL        string `json:"url"`
	Generated  bool   `json:"generated"`
}
