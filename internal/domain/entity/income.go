package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/domain/finance"
)

// Income es un asiento del libro de ingresos (append-only).
// Misma invariante de etiquetado que Expense: Automatic ⇔ Origin presente,
// y a lo sumo un asiento automático por (módulo, referencia) en el libro.
type Income struct {
	ID          string
	FarmID      string
	CategoryID  string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	AnimalID    *string
	Automatic   bool
	Origin      *finance.OriginRef
	CreatedAt   time.Time
	CreatedBy   string
}
