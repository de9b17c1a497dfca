package repository

import (
	"context"

	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
)

// SyncRunRepository define el puerto para el historial de corridas de sincronización.
type SyncRunRepository interface {
	Create(ctx context.Context, run *entity.SyncRun) error
	// Finish actualiza estado, etapa, conteos y error de una corrida ya creada.
	Finish(ctx context.Context, run *entity.SyncRun) error
	GetByID(ctx context.Context, id string) (*entity.SyncRun, error)
	List(ctx context.Context, limit, offset int) ([]*entity.SyncRun, error)
}
