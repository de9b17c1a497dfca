package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Conciliador-api/internal/domain"
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	"github.com/jhoicas/Conciliador-api/internal/domain/repository"
)

var _ repository.SyncRunRepository = (*SyncRunRepo)(nil)

// SyncRunRepo implementación del puerto SyncRunRepository sobre PostgreSQL.
type SyncRunRepo struct {
	pool *pgxpool.Pool
}

// NewSyncRunRepository construye el adaptador de persistencia del historial de corridas.
func NewSyncRunRepository(pool *pgxpool.Pool) *SyncRunRepo {
	return &SyncRunRepo{pool: pool}
}

// Create persiste una corrida recién iniciada.
func (r *SyncRunRepo) Create(ctx context.Context, run *entity.SyncRun) error {
	query := `
		INSERT INTO sync_runs (id, status, stage, products, warnings, error, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		run.ID, run.Status, run.Stage, run.Products, run.Warnings, run.Error, run.StartedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: corrida %s", domain.ErrDuplicate, run.ID)
		}
		return fmt.Errorf("insert sync run: %w", err)
	}
	return nil
}

// Finish actualiza el resultado de una corrida ya creada.
func (r *SyncRunRepo) Finish(ctx context.Context, run *entity.SyncRun) error {
	query := `
		UPDATE sync_runs
		SET status = $2, stage = $3, products = $4, warnings = $5, error = $6, finished_at = $7
		WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query,
		run.ID, run.Status, run.Stage, run.Products, run.Warnings, run.Error, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("finish sync run: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: corrida %s", domain.ErrNotFound, run.ID)
	}
	return nil
}

// GetByID obtiene una corrida por ID.
func (r *SyncRunRepo) GetByID(ctx context.Context, id string) (*entity.SyncRun, error) {
	query := `
		SELECT id, status, stage, products, warnings, error, started_at, finished_at
		FROM sync_runs WHERE id = $1`
	var run entity.SyncRun
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&run.ID, &run.Status, &run.Stage, &run.Products, &run.Warnings,
		&run.Error, &run.StartedAt, &run.FinishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: corrida %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get sync run: %w", err)
	}
	return &run, nil
}

// List lista corridas de la más reciente a la más antigua, con paginación.
func (r *SyncRunRepo) List(ctx context.Context, limit, offset int) ([]*entity.SyncRun, error) {
	query := `
		SELECT id, status, stage, products, warnings, error, started_at, finished_at
		FROM sync_runs ORDER BY started_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sync runs: %w", err)
	}
	defer rows.Close()
	var list []*entity.SyncRun
	for rows.Next() {
		var run entity.SyncRun
		if err := rows.Scan(
			&run.ID, &run.Status, &run.Stage, &run.Products, &run.Warnings,
			&run.Error, &run.StartedAt, &run.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sync run: %w", err)
		}
		list = append(list, &run)
	}
	return list, rows.Err()
}
