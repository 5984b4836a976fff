package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario de insumos.
const (
	MovementKindPurchase      = "PURCHASE"       // entrada por compra
	MovementKindConsumption   = "CONSUMPTION"    // consumo (cantidad negativa)
	MovementKindAdjustmentIn  = "ADJUSTMENT_IN"  // ajuste positivo
	MovementKindAdjustmentOut = "ADJUSTMENT_OUT" // ajuste negativo / salida por traslado
)

// StockMovement es una fila inmutable del libro de movimientos de insumos.
// El stock de (finca, insumo[, lote]) es la suma de Quantity de sus movimientos
// y nunca puede quedar negativo tras un commit. No se actualiza ni se borra,
// salvo como acción compensatoria al eliminar el evento de dominio que lo originó.
type StockMovement struct {
	ID           string
	FarmID       string
	SupplyItemID string
	BatchID      *string
	Kind         string
	Quantity     decimal.Decimal // con signo: entradas positivas, salidas negativas
	UnitCost     *decimal.Decimal
	Date         time.Time
	Note         string
	CreatedAt    time.Time
	CreatedBy    string
}

// Inbound indica si el movimiento suma stock.
func (m *StockMovement) Inbound() bool {
	return m.Quantity.GreaterThan(decimal.Zero)
}
