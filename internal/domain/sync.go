package domain

import "time"

// ClientSyncState é o estado de um cliente durante uma execução da sincronização
type ClientSyncState string

const (
	ClientSyncPending              ClientSyncState = "PENDING"
	ClientSyncFetchingCampaigns    ClientSyncState = "FETCHING_CAMPAIGNS"
	ClientSyncFetchingInsights     ClientSyncState = "FETCHING_INSIGHTS"
	ClientSyncClassifying          ClientSyncState = "CLASSIFYING"
	ClientSyncReconciling          ClientSyncState = "RECONCILING"
	ClientSyncAccountSummaryUpdate ClientSyncState = "ACCOUNT_SUMMARY_UPDATE"
	ClientSyncDone                 ClientSyncState = "DONE"
	ClientSyncErrored              ClientSyncState = "ERRORED"
)

type ClientSyncReport struct {
	ClientID           string          `json:"client_id"`
	ClientName         string          `json:"client_name"`
	AdAccountRef       string          `json:"ad_account_ref"`
	State              ClientSyncState `json:"state"`
	Severity           AuditSeverity   `json:"severity"`
	CampaignsFound     int             `json:"campaigns_found"`
	CampaignsProcessed int             `json:"campaigns_processed"`
	CampaignsFailed    int             `json:"campaigns_failed"`
	MetricsWritten     int             `json:"metrics_written"`
	MetricsFailed      int             `json:"metrics_failed"`
	Error              string          `json:"error,omitempty"`
}

// SyncReport resume uma execução completa da sincronização
type SyncReport struct {
	RunID          string              `json:"run_id"`
	ClientFilter   string              `json:"client_filter,omitempty"`
	StartedAt      time.Time           `json:"started_at"`
	FinishedAt     time.Time           `json:"finished_at"`
	Clients        []*ClientSyncReport `json:"clients"`
	MetricsWritten int                 `json:"metrics_written"`
	ClientsFailed  int                 `json:"clients_failed"`
	Aborted        bool                `json:"aborted"`
}

func (r *SyncReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}

	return r.FinishedAt.Sub(r.StartedAt)
}
