package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/application/livestock"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// MortalityHandler maneja las peticiones HTTP de mortalidad (protegido).
type MortalityHandler struct {
	uc *livestock.UseCase
}

// NewMortalityHandler construye el handler.
func NewMortalityHandler(uc *livestock.UseCase) *MortalityHandler {
	return &MortalityHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar mortalidad
// @Description  Pasa el animal a DEAD y, si tenía costo de compra, genera el gasto de pérdida, atómicamente.
// @Tags         mortalities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMortalityRequest  true  "animal_id, cause opcional"
// @Success      201   {object}  dto.MortalityResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/mortalities [post]
func (h *MortalityHandler) Register(c *fiber.Ctx) error {
	farmID, userID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.RegisterMortalityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mortality, err := h.uc.RegisterMortality(c.Context(), farmID, userID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMortalityResponse(mortality))
}

// Delete godoc
// @Summary      Eliminar registro de mortalidad
// @Description  Devuelve el animal a ACTIVE y revierte el gasto de pérdida etiquetado, atómicamente.
// @Tags         mortalities
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mortalities/{id} [delete]
func (h *MortalityHandler) Delete(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeleteMortality(c.Context(), farmID, c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar mortalidad de la finca
// @Tags         mortalities
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas (default 50)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}   dto.MortalityResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/mortalities [get]
func (h *MortalityHandler) List(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	limit, offset := parsePagination(c)
	mortalities, err := h.uc.ListMortalities(c.Context(), farmID, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]*dto.MortalityResponse, 0, len(mortalities))
	for _, m := range mortalities {
		out = append(out, toMortalityResponse(m))
	}
	return c.JSON(out)
}

func toMortalityResponse(m *entity.Mortality) *dto.MortalityResponse {
	return &dto.MortalityResponse{
		ID:       m.ID,
		AnimalID: m.AnimalID,
		Date:     m.Date,
		Cause:    m.Cause,
		Note:     m.Note,
	}
}
