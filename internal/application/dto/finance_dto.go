package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest gasto manual.
type CreateExpenseRequest struct {
	CategoryID   string          `json:"category_id"`
	Date         *time.Time      `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	AnimalID     *string         `json:"animal_id"`
	SupplyItemID *string         `json:"supply_item_id"`
	PastureID    *string         `json:"pasture_id"`
}

// UpdateExpenseRequest actualización de un gasto manual.
type UpdateExpenseRequest struct {
	CategoryID  string          `json:"category_id"`
	Date        *time.Time      `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// CreateIncomeRequest ingreso manual.
type CreateIncomeRequest struct {
	CategoryID  string          `json:"category_id"`
	Date        *time.Time      `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	AnimalID    *string         `json:"animal_id"`
}

// UpdateIncomeRequest actualización de un ingreso manual.
type UpdateIncomeRequest struct {
	CategoryID  string          `json:"category_id"`
	Date        *time.Time      `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// LedgerEntryResponse asiento de gastos o ingresos.
type LedgerEntryResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
	AnimalID     *string         `json:"animal_id,omitempty"`
	SupplyItemID *string         `json:"supply_item_id,omitempty"`
	PastureID    *string         `json:"pasture_id,omitempty"`
	Automatic    bool            `json:"automatic"`
	OriginModule string          `json:"origin_module,omitempty"`
	OriginRef    string          `json:"origin_reference_id,omitempty"`
}
