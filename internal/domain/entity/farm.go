package entity

import "time"

// Farm es la raíz multi-tenant: toda entidad de negocio pertenece a una finca
// y toda consulta filtra por FarmID.
type Farm struct {
	ID        string
	Name      string
	Location  string
	OwnerName string
	CreatedAt time.Time
	UpdatedAt time.Time
}
