package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplyItem representa un insumo de la finca (alimento, medicamento, fertilizante...).
// El stock no se almacena: se deriva sumando los movimientos del libro.
type SupplyItem struct {
	ID           string
	FarmID       string
	CategoryID   string
	Name         string
	UnitID       string
	MinimumStock decimal.Decimal // punto de reorden para alertas de stock bajo
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
