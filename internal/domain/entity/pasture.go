package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pasture representa un potrero/lote de la finca. Destino de asignación de
// animales y dimensión opcional de gastos (mantenimiento, fertilización).
type Pasture struct {
	ID        string
	FarmID    string
	Name      string
	AreaHa    *decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
