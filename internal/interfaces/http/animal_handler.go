package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/application/livestock"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// AnimalHandler maneja las peticiones HTTP del hato (protegido).
type AnimalHandler struct {
	uc *livestock.UseCase
}

// NewAnimalHandler construye el handler.
func NewAnimalHandler(uc *livestock.UseCase) *AnimalHandler {
	return &AnimalHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar animal
// @Description  Si trae purchase_cost genera el gasto automático de compra; si trae birth_weight inserta el pesaje inicial.
// @Tags         animals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAnimalRequest  true  "tag, sex, datos opcionales"
// @Success      201   {object}  dto.AnimalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/animals [post]
func (h *AnimalHandler) Create(c *fiber.Ctx) error {
	farmID, userID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.CreateAnimalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	animal, err := h.uc.CreateAnimal(c.Context(), farmID, userID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAnimalResponse(animal))
}

// GetByID godoc
// @Summary      Obtener animal
// @Tags         animals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del animal"
// @Success      200  {object}  dto.AnimalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/animals/{id} [get]
func (h *AnimalHandler) GetByID(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	animal, err := h.uc.GetAnimal(c.Context(), farmID, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toAnimalResponse(animal))
}

// List godoc
// @Summary      Listar animales de la finca
// @Tags         animals
// @Security     Bearer
// @Produce      json
// @Param        state   query  string  false  "Filtrar por estado (ACTIVE|SOLD|DEAD)"
// @Param        limit   query  int     false  "Máximo de filas (default 50)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.AnimalResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/animals [get]
func (h *AnimalHandler) List(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	limit, offset := parsePagination(c)
	animals, err := h.uc.ListAnimals(c.Context(), farmID, c.Query("state"), limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]*dto.AnimalResponse, 0, len(animals))
	for _, a := range animals {
		out = append(out, toAnimalResponse(a))
	}
	return c.JSON(out)
}

// Sell godoc
// @Summary      Vender animal
// @Description  Pasa el animal a SOLD y genera el ingreso automático de venta, atómicamente.
// @Tags         animals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del animal"
// @Param        body  body  dto.SellAnimalRequest  true  "price, date opcional, sale_weight opcional"
// @Success      200   {object}  dto.AnimalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/animals/{id}/sell [post]
func (h *AnimalHandler) Sell(c *fiber.Ctx) error {
	farmID, userID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.SellAnimalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	animal, err := h.uc.SellAnimal(c.Context(), farmID, userID, c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toAnimalResponse(animal))
}

// Delete godoc
// @Summary      Eliminar animal
// @Description  Solo animales ACTIVE. Revierte el gasto de compra etiquetado y borra los pesajes.
// @Tags         animals
// @Security     Bearer
// @Param        id  path  string  true  "ID del animal"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/animals/{id} [delete]
func (h *AnimalHandler) Delete(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeleteAnimal(c.Context(), farmID, c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignLot godoc
// @Summary      Asignar potrero
// @Tags         animals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del animal"
// @Param        body  body  dto.AssignLotRequest  true  "lot_id (null = quitar asignación)"
// @Success      200   {object}  dto.AnimalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/animals/{id}/lot [put]
func (h *AnimalHandler) AssignLot(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.AssignLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	animal, err := h.uc.AssignLot(c.Context(), farmID, c.Params("id"), in.LotID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toAnimalResponse(animal))
}

func toAnimalResponse(a *entity.Animal) *dto.AnimalResponse {
	return &dto.AnimalResponse{
		ID:           a.ID,
		Tag:          a.Tag,
		Name:         a.Name,
		Sex:          a.Sex,
		BreedID:      a.BreedID,
		BirthDate:    a.BirthDate,
		PurchaseCost: a.PurchaseCost,
		State:        a.State,
		SaleDate:     a.SaleDate,
		SalePrice:    a.SalePrice,
		LotID:        a.LotID,
	}
}
