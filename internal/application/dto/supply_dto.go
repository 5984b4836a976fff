package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplyItemRequest alta de un insumo.
type CreateSupplyItemRequest struct {
	CategoryID   string          `json:"category_id"`
	Name         string          `json:"name"`
	UnitID       string          `json:"unit_id"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

// UpdateSupplyItemRequest actualización de un insumo.
type UpdateSupplyItemRequest struct {
	CategoryID   string          `json:"category_id"`
	Name         string          `json:"name"`
	UnitID       string          `json:"unit_id"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	Active       *bool           `json:"active"`
}

// SupplyItemResponse insumo con stock derivado opcional.
type SupplyItemResponse struct {
	ID           string           `json:"id"`
	CategoryID   string           `json:"category_id"`
	Name         string           `json:"name"`
	UnitID       string           `json:"unit_id"`
	MinimumStock decimal.Decimal  `json:"minimum_stock"`
	Active       bool             `json:"active"`
	Stock        *decimal.Decimal `json:"stock,omitempty"`
}

// BatchResponse lote de un insumo.
type BatchResponse struct {
	ID             string     `json:"id"`
	Code           *string    `json:"code,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// CreatePastureRequest alta de potrero.
type CreatePastureRequest struct {
	Name   string           `json:"name"`
	AreaHa *decimal.Decimal `json:"area_ha"`
}

// UpdatePastureRequest actualización de potrero.
type UpdatePastureRequest struct {
	Name   string           `json:"name"`
	AreaHa *decimal.Decimal `json:"area_ha"`
	Active *bool            `json:"active"`
}

// PastureResponse potrero.
type PastureResponse struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	AreaHa *decimal.Decimal `json:"area_ha,omitempty"`
	Active bool             `json:"active"`
}

// CreateFarmRequest alta de finca.
type CreateFarmRequest struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	OwnerName string `json:"owner_name"`
}

// UpdateFarmRequest actualización de finca.
type UpdateFarmRequest struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	OwnerName string `json:"owner_name"`
}

// FarmResponse finca.
type FarmResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	OwnerName string `json:"owner_name"`
}

// CatalogEntryResponse entrada genérica de catálogo (tipos de tratamiento,
// razas, categorías de insumo).
type CatalogEntryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnitResponse unidad de medida.
type UnitResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// FinanceCategoryResponse categoría de gasto o ingreso.
type FinanceCategoryResponse struct {
	ID     string `json:"id"`
	Ledger string `json:"ledger"`
	Name   string `json:"name"`
}
