package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/domain/finance"
)

// Expense es un asiento del libro de gastos (append-only).
// Invariante: Automatic == true ⇔ Origin != nil. Los asientos automáticos son
// inmutables salvo a través del ciclo de vida del evento de dominio que los creó;
// los manuales (Automatic == false) se pueden editar y borrar directamente.
type Expense struct {
	ID           string
	FarmID       string
	CategoryID   string
	Date         time.Time
	Amount       decimal.Decimal
	Description  string
	AnimalID     *string
	SupplyItemID *string
	PastureID    *string
	Automatic    bool
	Origin       *finance.OriginRef
	CreatedAt    time.Time
	CreatedBy    string
}
