package dto

import (
	"time"

	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
)

// SyncRunResponse resultado de una corrida de sincronización.
type SyncRunResponse struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	Stage      string     `json:"stage"`
	Products   int        `json:"products"`
	Warnings   int        `json:"warnings"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// SyncRunListResponse listado paginado de corridas.
type SyncRunListResponse struct {
	Items []SyncRunResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// FromSyncRun convierte la entidad de corrida al DTO de respuesta.
func FromSyncRun(run *entity.SyncRun) SyncRunResponse {
	return SyncRunResponse{
		ID:         run.ID,
		Status:     string(run.Status),
		Stage:      string(run.Stage),
		Products:   run.Products,
		Warnings:   run.Warnings,
		Error:      run.Error,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
}
