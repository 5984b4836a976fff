package entity

// Catálogos de referencia globales (compartidos entre fincas, datos semilla).

// Tipos de libro financiero para las categorías.
const (
	CategoryLedgerExpense = "EXPENSE"
	CategoryLedgerIncome  = "INCOME"
)

// FinanceCategory categoriza asientos de gastos o ingresos según Ledger.
type FinanceCategory struct {
	ID     string
	Ledger string // EXPENSE | INCOME
	Name   string
}

// Unit es la unidad de medida de un insumo (kg, l, dosis, bulto...).
type Unit struct {
	ID     string
	Name   string
	Symbol string
}

// TreatmentType clasifica tratamientos sanitarios (vacunación, desparasitación...).
type TreatmentType struct {
	ID   string
	Name string
}

// Breed es una raza de ganado.
type Breed struct {
	ID   string
	Name string
}

// SupplyCategory clasifica insumos (alimento, medicamento, fertilizante...).
type SupplyCategory struct {
	ID   string
	Name string
}
