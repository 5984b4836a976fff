package entity

import "time"

// Batch es un lote opcional de un insumo (dimensión de agrupación de movimientos).
// Se crea de forma perezosa cuando un movimiento trae código o fecha de vencimiento
// nuevos; se reutiliza buscando por (insumo, código) o por (insumo, sin código, vencimiento).
type Batch struct {
	ID             string
	SupplyItemID   string
	Code           *string
	ExpirationDate *time.Time
	CreatedAt      time.Time
}
