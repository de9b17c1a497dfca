package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
)

// UpsertWarehouseRequest alta o actualización de una bodega canónica del catálogo.
type UpsertWarehouseRequest struct {
	CanonicalName  string          `json:"canonical_name"`
	Category       string          `json:"category"` // platform | seller | transit | unknown
	FallbackWeight decimal.Decimal `json:"fallback_weight" swaggertype:"number"`
}

// UpsertAliasRequest alta o reapuntado de un alias crudo.
type UpsertAliasRequest struct {
	Alias         string `json:"alias"`
	CanonicalName string `json:"canonical_name"`
}

// WarehouseResponse bodega canónica del catálogo.
type WarehouseResponse struct {
	CanonicalName  string          `json:"canonical_name"`
	Category       string          `json:"category"`
	FallbackWeight decimal.Decimal `json:"fallback_weight" swaggertype:"number"`
}

// AliasResponse alias crudo conocido.
type AliasResponse struct {
	Alias         string `json:"alias"`
	CanonicalName string `json:"canonical_name"`
}

// CatalogResponse catálogo completo: bodegas canónicas y sus alias.
type CatalogResponse struct {
	Warehouses []WarehouseResponse `json:"warehouses"`
	Aliases    []AliasResponse     `json:"aliases"`
}

// FromWarehouse convierte la entidad de bodega al DTO de respuesta.
func FromWarehouse(w entity.CanonicalWarehouse) WarehouseResponse {
	return WarehouseResponse{
		CanonicalName:  w.CanonicalName,
		Category:       string(w.Category),
		FallbackWeight: w.FallbackWeight,
	}
}

// FromAlias convierte la entidad de alias al DTO de respuesta.
func FromAlias(a entity.WarehouseAlias) AliasResponse {
	return AliasResponse{Alias: a.Alias, CanonicalName: a.CanonicalName}
}
