package finance

import "fmt"

// OriginModule identifica el módulo que originó un asiento automático.
type OriginModule string

// Módulos de origen válidos para asientos automáticos.
const (
	OriginInventory OriginModule = "INVENTORY" // movimientos de insumos (compra/consumo)
	OriginTreatment OriginModule = "TREATMENT" // tratamientos sanitarios
	OriginAnimal    OriginModule = "ANIMAL"    // compra/venta de animales
	OriginMortality OriginModule = "MORTALITY" // bajas por mortalidad
)

// Valid indica si el módulo es uno de los conocidos.
func (m OriginModule) Valid() bool {
	switch m {
	case OriginInventory, OriginTreatment, OriginAnimal, OriginMortality:
		return true
	}
	return false
}

// OriginRef referencia tipada al evento de dominio que originó un asiento automático.
// Exactamente un asiento automático puede existir por (Module, ReferenceID) en cada
// libro (gastos o ingresos); es la llave de reversión.
type OriginRef struct {
	Module      OriginModule
	ReferenceID string
}

// NewOriginRef construye la referencia validando módulo e id.
func NewOriginRef(module OriginModule, referenceID string) (OriginRef, error) {
	if !module.Valid() {
		return OriginRef{}, fmt.Errorf("módulo de origen inválido: %q", module)
	}
	if referenceID == "" {
		return OriginRef{}, fmt.Errorf("referencia de origen vacía")
	}
	return OriginRef{Module: module, ReferenceID: referenceID}, nil
}

// String para logs: "INVENTORY:uuid".
func (r OriginRef) String() string {
	return string(r.Module) + ":" + r.ReferenceID
}
