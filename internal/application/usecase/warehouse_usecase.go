package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Conciliador-api/internal/application/dto"
	"github.com/jhoicas/Conciliador-api/internal/domain"
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	"github.com/jhoicas/Conciliador-api/internal/domain/repository"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

// WarehouseUseCase administra el catálogo de bodegas canónicas y sus alias.
// Los cambios surten efecto en la siguiente corrida: el normalizador carga el
// catálogo completo al inicio de cada sincronización.
type WarehouseUseCase struct {
	repo repository.WarehouseCatalogRepository
	log  *logger.Logger
}

// NewWarehouseUseCase construye el caso de uso del catálogo.
func NewWarehouseUseCase(repo repository.WarehouseCatalogRepository, log *logger.Logger) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, log: log.Component("catalogo")}
}

// Catalog devuelve el catálogo completo de bodegas y alias.
func (uc *WarehouseUseCase) Catalog(ctx context.Context) (*dto.CatalogResponse, error) {
	warehouses, err := uc.repo.ListWarehouses(ctx)
	if err != nil {
		return nil, err
	}
	aliases, err := uc.repo.ListAliases(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.CatalogResponse{
		Warehouses: make([]dto.WarehouseResponse, 0, len(warehouses)),
		Aliases:    make([]dto.AliasResponse, 0, len(aliases)),
	}
	for _, w := range warehouses {
		out.Warehouses = append(out.Warehouses, dto.FromWarehouse(w))
	}
	for _, a := range aliases {
		out.Aliases = append(out.Aliases, dto.FromAlias(a))
	}
	return out, nil
}

// UpsertWarehouse crea o actualiza una bodega canónica.
func (uc *WarehouseUseCase) UpsertWarehouse(ctx context.Context, in dto.UpsertWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.CanonicalName == "" {
		return nil, fmt.Errorf("%w: canonical_name es requerido", domain.ErrInvalidInput)
	}
	category, err := parseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	if in.FallbackWeight.IsNegative() {
		return nil, fmt.Errorf("%w: fallback_weight no puede ser negativo", domain.ErrInvalidInput)
	}
	w := entity.CanonicalWarehouse{
		CanonicalName:  in.CanonicalName,
		Category:       category,
		FallbackWeight: in.FallbackWeight,
	}
	if err := uc.repo.UpsertWarehouse(ctx, w); err != nil {
		return nil, err
	}
	uc.log.Info().Str("bodega", w.CanonicalName).Str("categoria", string(w.Category)).Msg("bodega canónica guardada")
	resp := dto.FromWarehouse(w)
	return &resp, nil
}

// UpsertAlias crea o reapunta un alias crudo hacia una bodega canónica existente.
func (uc *WarehouseUseCase) UpsertAlias(ctx context.Context, in dto.UpsertAliasRequest) (*dto.AliasResponse, error) {
	if in.Alias == "" || in.CanonicalName == "" {
		return nil, fmt.Errorf("%w: alias y canonical_name son requeridos", domain.ErrInvalidInput)
	}
	warehouses, err := uc.repo.ListWarehouses(ctx)
	if err != nil {
		return nil, err
	}
	known := false
	for _, w := range warehouses {
		if w.CanonicalName == in.CanonicalName {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: bodega canónica %q", domain.ErrNotFound, in.CanonicalName)
	}
	a := entity.WarehouseAlias{Alias: in.Alias, CanonicalName: in.CanonicalName}
	if err := uc.repo.UpsertAlias(ctx, a); err != nil {
		return nil, err
	}
	uc.log.Info().Str("alias", a.Alias).Str("bodega", a.CanonicalName).Msg("alias guardado")
	resp := dto.FromAlias(a)
	return &resp, nil
}

// DeleteAlias elimina un alias crudo.
func (uc *WarehouseUseCase) DeleteAlias(ctx context.Context, alias string) error {
	if alias == "" {
		return fmt.Errorf("%w: alias es requerido", domain.ErrInvalidInput)
	}
	return uc.repo.DeleteAlias(ctx, alias)
}

func parseCategory(s string) (entity.WarehouseCategory, error) {
	switch entity.WarehouseCategory(s) {
	case entity.CategoryPlatform, entity.CategorySeller, entity.CategoryTransit, entity.CategoryUnknown:
		return entity.WarehouseCategory(s), nil
	default:
		return "", fmt.Errorf("%w: categoría %q desconocida", domain.ErrInvalidInput, s)
	}
}
