package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/application/livestock"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// WeighingHandler maneja las peticiones HTTP de pesajes (protegido).
type WeighingHandler struct {
	uc *livestock.UseCase
}

// NewWeighingHandler construye el handler.
func NewWeighingHandler(uc *livestock.UseCase) *WeighingHandler {
	return &WeighingHandler{uc: uc}
}

// Add godoc
// @Summary      Registrar pesaje
// @Tags         weighings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddWeighingRequest  true  "animal_id, weight_kg"
// @Success      201   {object}  dto.WeighingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/weighings [post]
func (h *WeighingHandler) Add(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.AddWeighingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	weighing, err := h.uc.AddWeighing(c.Context(), farmID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toWeighingResponse(weighing))
}

// ListByAnimal godoc
// @Summary      Pesajes de un animal
// @Tags         weighings
// @Security     Bearer
// @Produce      json
// @Param        animal_id  query  string  true  "Animal (UUID)"
// @Success      200  {array}   dto.WeighingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/weighings [get]
func (h *WeighingHandler) ListByAnimal(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	animalID := c.Query("animal_id")
	if animalID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "animal_id requerido"})
	}
	weighings, err := h.uc.ListWeighings(c.Context(), farmID, animalID)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]*dto.WeighingResponse, 0, len(weighings))
	for _, w := range weighings {
		out = append(out, toWeighingResponse(w))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pesaje
// @Tags         weighings
// @Security     Bearer
// @Param        id  path  string  true  "ID del pesaje"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/weighings/{id} [delete]
func (h *WeighingHandler) Delete(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeleteWeighing(c.Context(), farmID, c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toWeighingResponse(w *entity.Weighing) *dto.WeighingResponse {
	return &dto.WeighingResponse{
		ID:       w.ID,
		AnimalID: w.AnimalID,
		Date:     w.Date,
		WeightKg: w.WeightKg,
		Note:     w.Note,
	}
}
