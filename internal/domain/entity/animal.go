package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del animal. Máquina de estados:
// ACTIVE → SOLD (venta, terminal), ACTIVE → DEAD (registro de mortalidad),
// DEAD → ACTIVE (eliminación del registro de mortalidad, única transición inversa).
const (
	AnimalStateActive = "ACTIVE"
	AnimalStateSold   = "SOLD"
	AnimalStateDead   = "DEAD"
)

// Sexos del animal.
const (
	AnimalSexMale   = "M"
	AnimalSexFemale = "F"
)

// Animal representa una cabeza de ganado de la finca.
// PurchaseCost al crear genera un gasto automático (ANIMAL, id);
// SalePrice al vender genera un ingreso automático (ANIMAL, id);
// ambos exactamente una vez, reversibles solo eliminando el evento respectivo.
type Animal struct {
	ID           string
	FarmID       string
	Tag          string // caravana/arete, único por finca
	Name         string
	Sex          string
	BreedID      *string
	BirthDate    *time.Time
	BirthWeight  *decimal.Decimal // kg
	PurchaseCost *decimal.Decimal
	State        string
	SaleDate     *time.Time
	SalePrice    *decimal.Decimal
	MotherID     *string
	FatherID     *string
	LotID        *string // potrero/lote asignado
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el animal admite eventos de dominio (venta, mortalidad, tratamiento).
func (a *Animal) IsActive() bool {
	return a.State == AnimalStateActive
}
