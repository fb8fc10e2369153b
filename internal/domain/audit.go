package domain

import "time"

type AuditSeverity string

const (
	AuditSeveritySuccess AuditSeverity = "success"
	AuditSeverityWarning AuditSeverity = "warning"
	AuditSeverityError   AuditSeverity = "error"
)

// AuditCategoryMetricsSync é a categoria dos registros gravados pela sincronização
const AuditCategoryMetricsSync = "sync_meta_metrics"

// AuditLogEntry é um registro append-only da tabela audit_logs.
// ClientID nulo indica uma falha ou resumo que vale para a execução inteira.
type AuditLogEntry struct {
	ID        int64          `json:"id"`
	ClientID  *string        `json:"client_id"`
	Category  string         `json:"category"`
	Severity  AuditSeverity  `json:"severity"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context"`
	CreatedAt time.Time      `json:"created_at"`
}
