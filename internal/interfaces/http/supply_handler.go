package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/application/usecase"
)

// SupplyItemHandler maneja las peticiones HTTP de insumos (protegido).
type SupplyItemHandler struct {
	uc *usecase.SupplyItemUseCase
}

// NewSupplyItemHandler construye el handler.
func NewSupplyItemHandler(uc *usecase.SupplyItemUseCase) *SupplyItemHandler {
	return &SupplyItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear insumo
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyItemRequest  true  "name, category_id, unit_id, minimum_stock"
// @Success      201   {object}  dto.SupplyItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplies [post]
func (h *SupplyItemHandler) Create(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.CreateSupplyItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Create(farmID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update godoc
// @Summary      Actualizar insumo
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.UpdateSupplyItemRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.SupplyItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplies/{id} [put]
func (h *SupplyItemHandler) Update(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.UpdateSupplyItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Update(farmID, c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(item)
}

// GetByID godoc
// @Summary      Obtener insumo con stock derivado
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del insumo"
// @Success      200  {object}  dto.SupplyItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplies/{id} [get]
func (h *SupplyItemHandler) GetByID(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	item, err := h.uc.GetByID(farmID, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(item)
}

// List godoc
// @Summary      Listar insumos con stock derivado
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo insumos activos"
// @Success      200  {array}   dto.SupplyItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/supplies [get]
func (h *SupplyItemHandler) List(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	items, err := h.uc.List(farmID, c.QueryBool("active", false))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(items)
}

// ListBatches godoc
// @Summary      Lotes de un insumo
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del insumo"
// @Success      200  {array}   dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplies/{id}/batches [get]
func (h *SupplyItemHandler) ListBatches(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	batches, err := h.uc.ListBatches(farmID, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(batches)
}
