package domain

import "time"

type Campaign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Objective string `json:"objective"`
}

type Action struct {
	ActionType string  `json:"action_type"`
	Value      float64 `json:"value"`
}

// DailyInsight é uma linha diária de performance de uma campanha, já convertida
// dos valores textuais retornados pela Graph API.
type DailyInsight struct {
	CampaignID  string    `json:"campaign_id"`
	DateStart   time.Time `json:"date_start"`
	DateStop    time.Time `json:"date_stop"`
	Spend       float64   `json:"spend"`
	Impressions int64     `json:"impressions"`
	Reach       int64     `json:"reach"`
	Clicks      int64     `json:"clicks"`
	Actions     []Action  `json:"actions"`
}

// ActionCounters mapeia action_type -> valor.
type ActionCounters map[string]float64

// NewActionCounters colapsa a lista de ações em um mapa. A Graph API não deveria
// repetir action_type na mesma linha; se repetir, o último valor lido prevalece.
func NewActionCounters(actions []Action) ActionCounters {
	counters := make(ActionCounters, len(actions))
	for _, action := range actions {
		if action.ActionType == "" {
			continue
		}
		counters[action.ActionType] = action.Value
	}

	return counters
}

// Get retorna o valor do contador e se ele está presente. Ausente vale 0.
func (c ActionCounters) Get(actionType string) (float64, bool) {
	value, ok := c[actionType]
	return value, ok
}

// InsightFilters delimita a janela de datas de uma consulta de insights
type InsightFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}
