package metadomain

type Campaign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Objective string `json:"objective"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// Action é o par action_type/valor como vem da Graph API (valor textual)
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// CampaignInsight é uma linha de /{campaign_id}/insights com time_increment=1.
// Os campos numéricos vêm como texto e podem estar ausentes.
type CampaignInsight struct {
	CampaignID  string   `json:"campaign_id"`
	DateStart   string   `json:"date_start"`
	DateStop    string   `json:"date_stop"`
	Spend       string   `json:"spend"`
	Impressions string   `json:"impressions"`
	Reach       string   `json:"reach"`
	Clicks      string   `json:"clicks"`
	Actions     []Action `json:"actions"`
}
