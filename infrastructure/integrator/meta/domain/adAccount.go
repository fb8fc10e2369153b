package metadomain

// AdAccountInsight é a linha agregada de /act_{id}/insights
type AdAccountInsight struct {
	AccountID   string `json:"account_id"`
	Name        string `json:"account_name"`
	DateStart   string `json:"date_start"`
	DateStop    string `json:"date_stop"`
	Impressions string `json:"impressions"`
	Reach       string `json:"reach"`
	Spend       string `json:"spend"`
}

// TokenOwner é a resposta de /me usada para validar o token
type TokenOwner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
