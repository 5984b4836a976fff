package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAnimalRequest alta de un animal. Si trae PurchaseCost > 0 se genera el
// gasto automático de compra; si trae BirthWeight se inserta el pesaje inicial.
type CreateAnimalRequest struct {
	Tag          string           `json:"tag"`
	Name         string           `json:"name"`
	Sex          string           `json:"sex"`
	BreedID      *string          `json:"breed_id"`
	BirthDate    *time.Time       `json:"birth_date"`
	BirthWeight  *decimal.Decimal `json:"birth_weight"`
	PurchaseCost *decimal.Decimal `json:"purchase_cost"`
	MotherID     *string          `json:"mother_id"`
	FatherID     *string          `json:"father_id"`
	LotID        *string          `json:"lot_id"`
}

// SellAnimalRequest venta de un animal activo.
type SellAnimalRequest struct {
	Price      decimal.Decimal  `json:"price"`
	Date       *time.Time       `json:"date"`
	SaleWeight *decimal.Decimal `json:"sale_weight"`
}

// AnimalResponse animal con su estado actual.
type AnimalResponse struct {
	ID           string           `json:"id"`
	Tag          string           `json:"tag"`
	Name         string           `json:"name,omitempty"`
	Sex          string           `json:"sex"`
	BreedID      *string          `json:"breed_id,omitempty"`
	BirthDate    *time.Time       `json:"birth_date,omitempty"`
	PurchaseCost *decimal.Decimal `json:"purchase_cost,omitempty"`
	State        string           `json:"state"`
	SaleDate     *time.Time       `json:"sale_date,omitempty"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	LotID        *string          `json:"lot_id,omitempty"`
}

// RegisterMortalityRequest baja de un animal activo.
type RegisterMortalityRequest struct {
	AnimalID string     `json:"animal_id"`
	Date     *time.Time `json:"date"`
	Cause    string     `json:"cause"`
	Note     string     `json:"note"`
}

// RegisterTreatmentRequest aplicación sanitaria. Si trae SupplyItemID y
// Quantity, el tratamiento consume stock del insumo.
type RegisterTreatmentRequest struct {
	AnimalID        *string          `json:"animal_id"`
	TreatmentTypeID string           `json:"treatment_type_id"`
	SupplyItemID    *string          `json:"supply_item_id"`
	Quantity        *decimal.Decimal `json:"quantity"`
	Cost            decimal.Decimal  `json:"cost"`
	Date            *time.Time       `json:"date"`
	Note            string           `json:"note"`
}

// AddWeighingRequest pesaje de un animal.
type AddWeighingRequest struct {
	AnimalID string          `json:"animal_id"`
	Date     *time.Time      `json:"date"`
	WeightKg decimal.Decimal `json:"weight_kg"`
	Note     string          `json:"note"`
}

// AssignLotRequest asignación de potrero (nil = quitar asignación).
type AssignLotRequest struct {
	LotID *string `json:"lot_id"`
}

// MortalityResponse registro de mortalidad.
type MortalityResponse struct {
	ID       string    `json:"id"`
	AnimalID string    `json:"animal_id"`
	Date     time.Time `json:"date"`
	Cause    string    `json:"cause,omitempty"`
	Note     string    `json:"note,omitempty"`
}

// TreatmentResponse aplicación sanitaria.
type TreatmentResponse struct {
	ID              string           `json:"id"`
	AnimalID        *string          `json:"animal_id,omitempty"`
	TreatmentTypeID string           `json:"treatment_type_id"`
	SupplyItemID    *string          `json:"supply_item_id,omitempty"`
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	Cost            decimal.Decimal  `json:"cost"`
	Date            time.Time        `json:"date"`
	Note            string           `json:"note,omitempty"`
}

// WeighingResponse pesaje de un animal.
type WeighingResponse struct {
	ID       string          `json:"id"`
	AnimalID string          `json:"animal_id"`
	Date     time.Time       `json:"date"`
	WeightKg decimal.Decimal `json:"weight_kg"`
	Note     string          `json:"note,omitempty"`
}
