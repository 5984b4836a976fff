package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Weighing es un pesaje de un animal. El pesaje inicial se inserta al crear
// el animal cuando trae peso de nacimiento.
type Weighing struct {
	ID        string
	AnimalID  string
	Date      time.Time
	WeightKg  decimal.Decimal
	Note      string
	CreatedAt time.Time
}
