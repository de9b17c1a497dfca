package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Conciliador-api/internal/application/dto"
	"github.com/jhoicas/Conciliador-api/internal/application/usecase"
	"github.com/jhoicas/Conciliador-api/internal/domain"
)

// WarehouseHandler maneja las peticiones HTTP del catálogo de bodegas (protegido).
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Catalog godoc
// @Summary      Catálogo completo de bodegas canónicas y alias
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) Catalog(c *fiber.Ctx) error {
	out, err := h.uc.Catalog(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpsertWarehouse godoc
// @Summary      Crear o actualizar una bodega canónica
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertWarehouseRequest  true  "Datos de la bodega"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouses [put]
func (h *WarehouseHandler) UpsertWarehouse(c *fiber.Ctx) error {
	var in dto.UpsertWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpsertWarehouse(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpsertAlias godoc
// @Summary      Crear o reapuntar un alias crudo
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertAliasRequest  true  "Alias y bodega canónica destino"
// @Success      200   {object}  dto.AliasResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "bodega canónica inexistente"
// @Router       /api/warehouses/aliases [put]
func (h *WarehouseHandler) UpsertAlias(c *fiber.Ctx) error {
	var in dto.UpsertAliasRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpsertAlias(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// DeleteAlias godoc
// @Summary      Eliminar un alias crudo
// @Tags         warehouses
// @Security     Bearer
// @Param        alias  path  string  true  "Alias a eliminar"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses/aliases/{alias} [delete]
func (h *WarehouseHandler) DeleteAlias(c *fiber.Ctx) error {
	alias := c.Params("alias")
	if err := h.uc.DeleteAlias(c.Context(), alias); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
