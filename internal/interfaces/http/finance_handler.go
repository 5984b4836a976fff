package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/application/finance"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// FinanceHandler maneja las peticiones HTTP de los libros de gastos e ingresos (protegido).
// Solo asientos manuales: los automáticos nacen y mueren con su evento de dominio.
type FinanceHandler struct {
	uc *finance.UseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.UseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// CreateExpense godoc
// @Summary      Registrar gasto manual
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "category_id, amount, dimensiones opcionales"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *FinanceHandler) CreateExpense(c *fiber.Ctx) error {
	farmID, userID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expense, err := h.uc.CreateExpense(c.Context(), farmID, userID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toExpenseResponse(expense))
}

// UpdateExpense godoc
// @Summary      Actualizar gasto manual
// @Description  Los asientos automáticos no se pueden editar (409).
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del gasto"
// @Param        body  body  dto.UpdateExpenseRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.LedgerEntryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [put]
func (h *FinanceHandler) UpdateExpense(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.UpdateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expense, err := h.uc.UpdateExpense(c.Context(), farmID, c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toExpenseResponse(expense))
}

// DeleteExpense godoc
// @Summary      Eliminar gasto manual
// @Description  Los asientos automáticos no se pueden borrar (409).
// @Tags         finance
// @Security     Bearer
// @Param        id  path  string  true  "ID del gasto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *FinanceHandler) DeleteExpense(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeleteExpense(c.Context(), farmID, c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListExpenses godoc
// @Summary      Listar gastos de la finca
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Máximo de filas (default 50)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.LedgerEntryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/expenses [get]
func (h *FinanceHandler) ListExpenses(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (RFC3339)"})
	}
	limit, offset := parsePagination(c)
	expenses, err := h.uc.ListExpenses(c.Context(), farmID, from, to, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]*dto.LedgerEntryResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return c.JSON(out)
}

// CreateIncome godoc
// @Summary      Registrar ingreso manual
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIncomeRequest  true  "category_id, amount"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/incomes [post]
func (h *FinanceHandler) CreateIncome(c *fiber.Ctx) error {
	farmID, userID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.CreateIncomeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	income, err := h.uc.CreateIncome(c.Context(), farmID, userID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toIncomeResponse(income))
}

// UpdateIncome godoc
// @Summary      Actualizar ingreso manual
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingreso"
// @Param        body  body  dto.UpdateIncomeRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.LedgerEntryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/incomes/{id} [put]
func (h *FinanceHandler) UpdateIncome(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.UpdateIncomeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	income, err := h.uc.UpdateIncome(c.Context(), farmID, c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toIncomeResponse(income))
}

// DeleteIncome godoc
// @Summary      Eliminar ingreso manual
// @Tags         finance
// @Security     Bearer
// @Param        id  path  string  true  "ID del ingreso"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/incomes/{id} [delete]
func (h *FinanceHandler) DeleteIncome(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeleteIncome(c.Context(), farmID, c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListIncomes godoc
// @Summary      Listar ingresos de la finca
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Máximo de filas (default 50)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.LedgerEntryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/incomes [get]
func (h *FinanceHandler) ListIncomes(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (RFC3339)"})
	}
	limit, offset := parsePagination(c)
	incomes, err := h.uc.ListIncomes(c.Context(), farmID, from, to, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]*dto.LedgerEntryResponse, 0, len(incomes))
	for _, in := range incomes {
		out = append(out, toIncomeResponse(in))
	}
	return c.JSON(out)
}

func toExpenseResponse(e *entity.Expense) *dto.LedgerEntryResponse {
	resp := &dto.LedgerEntryResponse{
		ID:           e.ID,
		CategoryID:   e.CategoryID,
		Date:         e.Date,
		Amount:       e.Amount,
		Description:  e.Description,
		AnimalID:     e.AnimalID,
		SupplyItemID: e.SupplyItemID,
		PastureID:    e.PastureID,
		Automatic:    e.Automatic,
	}
	if e.Origin != nil {
		resp.OriginModule = string(e.Origin.Module)
		resp.OriginRef = e.Origin.ReferenceID
	}
	return resp
}

func toIncomeResponse(in *entity.Income) *dto.LedgerEntryResponse {
	resp := &dto.LedgerEntryResponse{
		ID:          in.ID,
		CategoryID:  in.CategoryID,
		Date:        in.Date,
		Amount:      in.Amount,
		Description: in.Description,
		AnimalID:    in.AnimalID,
		Automatic:   in.Automatic,
	}
	if in.Origin != nil {
		resp.OriginModule = string(in.Origin.Module)
		resp.OriginRef = in.Origin.ReferenceID
	}
	return resp
}
