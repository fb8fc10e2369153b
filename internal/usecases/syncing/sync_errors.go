package syncing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
)

var (
	ErrSyncAlreadyRunning = errors.New("sincronização já está em andamento")
	ErrListClients        = errors.New("erro ao listar clientes ativos")
	ErrInvalidCredentials = errors.New("credencial da Meta inválida, execução interrompida")
)

// SyncError carrega a etapa e o escopo (cliente/campanha) em que a falha ocorreu
type SyncError struct {
	Err        error
	Stage      domain.ClientSyncState
	ClientID   string
	CampaignID string
}

func (e *SyncError) Error() string {
	if e.CampaignID != "" {
		return fmt.Sprintf("%s (cliente %s, campanha %s): %s", e.Stage, e.ClientID, e.CampaignID, e.Err.Error())
	}
	return fmt.Sprintf("%s (cliente %s): %s", e.Stage, e.ClientID, e.Err.Error())
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func newSyncError(err error, stage domain.ClientSyncState, clientID, campaignID string) *SyncError {
	return &SyncError{
		Err:        err,
		Stage:      stage,
		ClientID:   clientID,
		CampaignID: campaignID,
	}
}
