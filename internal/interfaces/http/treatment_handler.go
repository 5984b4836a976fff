package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/application/livestock"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// TreatmentHandler maneja las peticiones HTTP de tratamientos sanitarios (protegido).
type TreatmentHandler struct {
	uc *livestock.UseCase
}

// NewTreatmentHandler construye el handler.
func NewTreatmentHandler(uc *livestock.UseCase) *TreatmentHandler {
	return &TreatmentHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar tratamiento
// @Description  Si referencia insumo con cantidad consume stock (409 si es insuficiente); el costo genera el gasto automático.
// @Tags         treatments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterTreatmentRequest  true  "treatment_type_id, animal_id opcional, insumo opcional"
// @Success      201   {object}  dto.TreatmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/treatments [post]
func (h *TreatmentHandler) Register(c *fiber.Ctx) error {
	farmID, userID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.RegisterTreatmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	treatment, err := h.uc.RegisterTreatment(c.Context(), farmID, userID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTreatmentResponse(treatment))
}

// Delete godoc
// @Summary      Eliminar tratamiento
// @Description  Revierte el gasto etiquetado y compensa el consumo de insumo con un ajuste positivo, atómicamente.
// @Tags         treatments
// @Security     Bearer
// @Param        id  path  string  true  "ID del tratamiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/treatments/{id} [delete]
func (h *TreatmentHandler) Delete(c *fiber.Ctx) error {
	farmID, userID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeleteTreatment(c.Context(), farmID, userID, c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar tratamientos de la finca
// @Tags         treatments
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas (default 50)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}   dto.TreatmentResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/treatments [get]
func (h *TreatmentHandler) List(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	limit, offset := parsePagination(c)
	treatments, err := h.uc.ListTreatments(c.Context(), farmID, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]*dto.TreatmentResponse, 0, len(treatments))
	for _, t := range treatments {
		out = append(out, toTreatmentResponse(t))
	}
	return c.JSON(out)
}

func toTreatmentResponse(t *entity.Treatment) *dto.TreatmentResponse {
	return &dto.TreatmentResponse{
		ID:              t.ID,
		AnimalID:        t.AnimalID,
		TreatmentTypeID: t.TreatmentTypeID,
		SupplyItemID:    t.SupplyItemID,
		Quantity:        t.Quantity,
		Cost:            t.Cost,
		Date:            t.Date,
		Note:            t.Note,
	}
}
