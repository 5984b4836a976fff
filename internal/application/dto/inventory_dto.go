package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterEntryRequest entrada de insumo (compra). Si trae BatchCode o
// BatchExpiration y no existe un lote que coincida, se crea uno nuevo.
type RegisterEntryRequest struct {
	SupplyItemID    string           `json:"supply_item_id"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	BatchID         *string          `json:"batch_id"`
	BatchCode       *string          `json:"batch_code"`
	BatchExpiration *time.Time       `json:"batch_expiration"`
	Note            string           `json:"note"`
	Date            *time.Time       `json:"date"`
}

// RegisterConsumptionRequest consumo de insumo.
type RegisterConsumptionRequest struct {
	SupplyItemID string          `json:"supply_item_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	BatchID      *string         `json:"batch_id"`
	Note         string          `json:"note"`
	Date         *time.Time      `json:"date"`
}

// RegisterAdjustmentRequest ajuste con signo (positivo suma, negativo resta).
type RegisterAdjustmentRequest struct {
	SupplyItemID   string          `json:"supply_item_id"`
	SignedQuantity decimal.Decimal `json:"signed_quantity"`
	BatchID        *string         `json:"batch_id"`
	Note           string          `json:"note"`
	Date           *time.Time      `json:"date"`
}

// TransferRequest traslado de insumo entre fincas del mismo propietario.
type TransferRequest struct {
	SupplyItemID string          `json:"supply_item_id"`
	FarmTo       string          `json:"farm_to"`
	Quantity     decimal.Decimal `json:"quantity"`
	BatchFromID  *string         `json:"batch_from_id"`
	BatchToID    *string         `json:"batch_to_id"`
	Note         string          `json:"note"`
	Date         *time.Time      `json:"date"`
}

// MovementResponse movimiento del libro de inventario.
type MovementResponse struct {
	ID           string           `json:"id"`
	SupplyItemID string           `json:"supply_item_id"`
	BatchID      *string          `json:"batch_id,omitempty"`
	Kind         string           `json:"kind"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Date         time.Time        `json:"date"`
	Note         string           `json:"note,omitempty"`
}

// StockItemDTO stock derivado de un insumo.
type StockItemDTO struct {
	SupplyItemID string          `json:"supply_item_id"`
	Stock        decimal.Decimal `json:"stock"`
}

// LowStockItemDTO insumo por debajo de su stock mínimo.
type LowStockItemDTO struct {
	SupplyItemID  string          `json:"supply_item_id"`
	Name          string          `json:"name"`
	Stock         decimal.Decimal `json:"stock"`
	MinimumStock  decimal.Decimal `json:"minimum_stock"`
	SuggestedQty  decimal.Decimal `json:"suggested_qty"`
}
