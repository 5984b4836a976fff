package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/application/usecase"
	"github.com/jhoicas/AgroGestion-api/pkg/jwt"
)

// FarmHandler maneja las peticiones HTTP de fincas (solo admin).
type FarmHandler struct {
	uc *usecase.FarmUseCase
}

// NewFarmHandler construye el handler.
func NewFarmHandler(uc *usecase.FarmUseCase) *FarmHandler {
	return &FarmHandler{uc: uc}
}

// Create godoc
// @Summary      Crear finca
// @Tags         farms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFarmRequest  true  "name"
// @Success      201   {object}  dto.FarmResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/farms [post]
func (h *FarmHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFarmRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	farm, err := h.uc.Create(in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(farm)
}

// Update godoc
// @Summary      Actualizar finca
// @Tags         farms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la finca"
// @Param        body  body  dto.UpdateFarmRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.FarmResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/farms/{id} [put]
func (h *FarmHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFarmRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	farm, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(farm)
}

// GetCurrent godoc
// @Summary      Finca del token actual
// @Tags         farms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FarmResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/farms/current [get]
func (h *FarmHandler) GetCurrent(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	farm, err := h.uc.GetByID(farmID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(farm)
}

// List godoc
// @Summary      Listar fincas (solo admin)
// @Tags         farms
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.FarmResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/farms [get]
func (h *FarmHandler) List(c *fiber.Ctx) error {
	if GetRole(c) != jwt.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
	farms, err := h.uc.List()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(farms)
}
