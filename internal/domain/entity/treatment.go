package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Treatment es una aplicación sanitaria (vacuna, desparasitación, etc.).
// Si referencia un insumo con cantidad, crearla consume stock del insumo;
// el costo genera un gasto automático etiquetado (TREATMENT, id).
type Treatment struct {
	ID              string
	FarmID          string
	AnimalID        *string // nil = tratamiento colectivo (lote completo)
	TreatmentTypeID string
	SupplyItemID    *string
	Quantity        *decimal.Decimal
	Cost            decimal.Decimal
	Date            time.Time
	Note            string
	CreatedAt       time.Time
	CreatedBy       string
}
