package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgroGestion-api/internal/application/usecase"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// CatalogHandler expone los catálogos de referencia globales (protegido, solo lectura).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ExpenseCategories godoc
// @Summary      Categorías de gasto
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FinanceCategoryResponse
// @Router       /api/catalogs/expense-categories [get]
func (h *CatalogHandler) ExpenseCategories(c *fiber.Ctx) error {
	categories, err := h.uc.FinanceCategories(entity.CategoryLedgerExpense)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(categories)
}

// IncomeCategories godoc
// @Summary      Categorías de ingreso
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FinanceCategoryResponse
// @Router       /api/catalogs/income-categories [get]
func (h *CatalogHandler) IncomeCategories(c *fiber.Ctx) error {
	categories, err := h.uc.FinanceCategories(entity.CategoryLedgerIncome)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(categories)
}

// Units godoc
// @Summary      Unidades de medida
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UnitResponse
// @Router       /api/catalogs/units [get]
func (h *CatalogHandler) Units(c *fiber.Ctx) error {
	units, err := h.uc.Units()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(units)
}

// TreatmentTypes godoc
// @Summary      Tipos de tratamiento
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CatalogEntryResponse
// @Router       /api/catalogs/treatment-types [get]
func (h *CatalogHandler) TreatmentTypes(c *fiber.Ctx) error {
	types, err := h.uc.TreatmentTypes()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(types)
}

// Breeds godoc
// @Summary      Razas de ganado
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CatalogEntryResponse
// @Router       /api/catalogs/breeds [get]
func (h *CatalogHandler) Breeds(c *fiber.Ctx) error {
	breeds, err := h.uc.Breeds()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(breeds)
}

// SupplyCategories godoc
// @Summary      Categorías de insumo
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CatalogEntryResponse
// @Router       /api/catalogs/supply-categories [get]
func (h *CatalogHandler) SupplyCategories(c *fiber.Ctx) error {
	categories, err := h.uc.SupplyCategories()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(categories)
}
