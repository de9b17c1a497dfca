package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Conciliador-api/internal/application/dto"
	appsync "github.com/jhoicas/Conciliador-api/internal/application/sync"
	"github.com/jhoicas/Conciliador-api/internal/domain"
	"github.com/jhoicas/Conciliador-api/internal/domain/repository"
)

// SyncHandler maneja las peticiones HTTP del ciclo de sincronización (protegido).
type SyncHandler struct {
	uc   *appsync.UseCase
	runs repository.SyncRunRepository
}

// NewSyncHandler construye el handler.
func NewSyncHandler(uc *appsync.UseCase, runs repository.SyncRunRepository) *SyncHandler {
	return &SyncHandler{uc: uc, runs: runs}
}

// Trigger godoc
// @Summary      Disparar una corrida de sincronización
// @Description  Arranca el ciclo completo (feeds → conciliación → proyección) en segundo plano. El resultado se consulta por ID.
// @Tags         syncs
// @Security     Bearer
// @Produce      json
// @Success      202  {object}  dto.SyncRunResponse
// @Failure      409  {object}  dto.ErrorResponse  "ya hay una corrida en curso"
// @Router       /api/syncs [post]
func (h *SyncHandler) Trigger(c *fiber.Ctx) error {
	run, err := h.uc.Start()
	if err != nil {
		if errors.Is(err, domain.ErrSyncInProgress) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SYNC_IN_PROGRESS", Message: "ya hay una corrida en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.FromSyncRun(run))
}

// List godoc
// @Summary      Listar corridas de sincronización
// @Tags         syncs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.SyncRunListResponse
// @Router       /api/syncs [get]
func (h *SyncHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	runs, err := h.runs.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.SyncRunListResponse{
		Items: make([]dto.SyncRunResponse, 0, len(runs)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, run := range runs {
		out.Items = append(out.Items, dto.FromSyncRun(run))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una corrida por ID
// @Tags         syncs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la corrida"
// @Success      200  {object}  dto.SyncRunResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/syncs/{id} [get]
func (h *SyncHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	run, err := h.runs.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "corrida no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromSyncRun(run))
}
