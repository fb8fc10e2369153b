package domain

import "time"

// MetricRecord é a métrica diária persistida de uma campanha.
// Chave natural: (ClientID, CampaignID, ReferenceDate).
type MetricRecord struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	CampaignID    string    `json:"campaign_id"`
	CampaignName  string    `json:"campaign_name"`
	ReferenceDate time.Time `json:"reference_date"`
	Spend         float64   `json:"spend"`
	Impressions   int64     `json:"impressions"`
	Clicks        int64     `json:"clicks"`
	Reach         int64     `json:"reach"`
	ResultValue   float64   `json:"result_value"`
	ResultLabel   *string   `json:"result_label"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DateKey é a representação da data de referência usada como chave
func (m *MetricRecord) DateKey() string {
	return m.ReferenceDate.Format(time.DateOnly)
}

type RowFailure struct {
	ReferenceDate string `json:"reference_date"`
	Error         string `json:"error"`
}

// UpsertResult resume a escrita de um lote de métricas de uma campanha
type UpsertResult struct {
	Written  int          `json:"written"`
	Inserted int          `json:"inserted"`
	Updated  int          `json:"updated"`
	Failed   []RowFailure `json:"failed,omitempty"`
}

// Count registra uma linha gravada com sucesso
func (r *UpsertResult) Count(existing bool) {
	r.Written++
	if existing {
		r.Updated++
		return
	}
	r.Inserted++
}
