package entity

import "time"

// Mortality registra la baja de un animal. Su creación fuerza Animal.State → DEAD
// y, si el animal tenía costo de compra, crea un gasto automático etiquetado
// (MORTALITY, id). Su eliminación revierte el estado y elimina el gasto, atómicamente.
type Mortality struct {
	ID        string
	AnimalID  string
	Date      time.Time
	Cause     string
	Note      string
	CreatedAt time.Time
	CreatedBy string
}
