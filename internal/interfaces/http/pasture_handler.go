package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/application/usecase"
)

// PastureHandler maneja las peticiones HTTP de potreros (protegido).
type PastureHandler struct {
	uc *usecase.PastureUseCase
}

// NewPastureHandler construye el handler.
func NewPastureHandler(uc *usecase.PastureUseCase) *PastureHandler {
	return &PastureHandler{uc: uc}
}

// Create godoc
// @Summary      Crear potrero
// @Tags         pastures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePastureRequest  true  "name, area_ha opcional"
// @Success      201   {object}  dto.PastureResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pastures [post]
func (h *PastureHandler) Create(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.CreatePastureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pasture, err := h.uc.Create(farmID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pasture)
}

// Update godoc
// @Summary      Actualizar potrero
// @Tags         pastures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del potrero"
// @Param        body  body  dto.UpdatePastureRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.PastureResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pastures/{id} [put]
func (h *PastureHandler) Update(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.UpdatePastureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pasture, err := h.uc.Update(farmID, c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(pasture)
}

// GetByID godoc
// @Summary      Obtener potrero
// @Tags         pastures
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del potrero"
// @Success      200  {object}  dto.PastureResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pastures/{id} [get]
func (h *PastureHandler) GetByID(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	pasture, err := h.uc.GetByID(farmID, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(pasture)
}

// List godoc
// @Summary      Listar potreros de la finca
// @Tags         pastures
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo potreros activos"
// @Success      200  {array}   dto.PastureResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/pastures [get]
func (h *PastureHandler) List(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	pastures, err := h.uc.List(farmID, c.QueryBool("active", false))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(pastures)
}
