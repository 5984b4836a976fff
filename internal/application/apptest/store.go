// Package apptest provee dobles en memoria de los puertos de persistencia
// para probar los casos de uso sin base de datos. El Store guarda entidades
// por valor: cada repositorio devuelve copias, y el TxRunner clona el Store
// antes de ejecutar la función transaccional, descartando el clon si falla.
package apptest

import (
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// Store es el estado compartido de los dobles. Los tests siembran datos
// escribiendo directamente en los mapas (llave = ID de la entidad).
type Store struct {
	Farms       map[string]entity.Farm
	Items       map[string]entity.SupplyItem
	Batches     map[string]entity.Batch
	Movements   map[string]entity.StockMovement
	Animals     map[string]entity.Animal
	Weighings   map[string]entity.Weighing
	Mortalities map[string]entity.Mortality
	Treatments  map[string]entity.Treatment
	Pastures    map[string]entity.Pasture
	Expenses    map[string]entity.Expense
	Incomes     map[string]entity.Income

	Categories     []entity.FinanceCategory
	TreatmentTypes map[string]entity.TreatmentType
	Breeds         []entity.Breed
	Units          []entity.Unit
	SupplyCats     []entity.SupplyCategory

	// Inyección de fallos para probar atomicidad: si el campo no es nil,
	// la operación correspondiente devuelve ese error.
	ExpenseCreateErr  error
	IncomeCreateErr   error
	MovementCreateErr error
	AnimalFindErr     error
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		Farms:          map[string]entity.Farm{},
		Items:          map[string]entity.SupplyItem{},
		Batches:        map[string]entity.Batch{},
		Movements:      map[string]entity.StockMovement{},
		Animals:        map[string]entity.Animal{},
		Weighings:      map[string]entity.Weighing{},
		Mortalities:    map[string]entity.Mortality{},
		Treatments:     map[string]entity.Treatment{},
		Pastures:       map[string]entity.Pasture{},
		Expenses:       map[string]entity.Expense{},
		Incomes:        map[string]entity.Income{},
		TreatmentTypes: map[string]entity.TreatmentType{},
	}
}

// SeedCategories registra las categorías financieras semilla que usan los
// asientos automáticos (mismos nombres que el catálogo de producción).
func (s *Store) SeedCategories(pairs ...[2]string) {
	for i, p := range pairs {
		s.Categories = append(s.Categories, entity.FinanceCategory{
			ID:     "cat-" + p[1] + "-" + string(rune('a'+i)),
			Ledger: p[0],
			Name:   p[1],
		})
	}
}

// clone copia el Store completo. Las entidades son valores, así que copiar
// los mapas alcanza para aislar la transacción.
func (s *Store) clone() *Store {
	c := &Store{
		Farms:             copyMap(s.Farms),
		Items:             copyMap(s.Items),
		Batches:           copyMap(s.Batches),
		Movements:         copyMap(s.Movements),
		Animals:           copyMap(s.Animals),
		Weighings:         copyMap(s.Weighings),
		Mortalities:       copyMap(s.Mortalities),
		Treatments:        copyMap(s.Treatments),
		Pastures:          copyMap(s.Pastures),
		Expenses:          copyMap(s.Expenses),
		Incomes:           copyMap(s.Incomes),
		TreatmentTypes:    copyMap(s.TreatmentTypes),
		ExpenseCreateErr:  s.ExpenseCreateErr,
		IncomeCreateErr:   s.IncomeCreateErr,
		MovementCreateErr: s.MovementCreateErr,
		AnimalFindErr:     s.AnimalFindErr,
	}
	c.Categories = append(c.Categories, s.Categories...)
	c.Breeds = append(c.Breeds, s.Breeds...)
	c.Units = append(c.Units, s.Units...)
	c.SupplyCats = append(c.SupplyCats, s.SupplyCats...)
	return c
}

// commit vuelca el estado del clon sobre el Store original.
func (s *Store) commit(c *Store) {
	s.Farms = c.Farms
	s.Items = c.Items
	s.Batches = c.Batches
	s.Movements = c.Movements
	s.Animals = c.Animals
	s.Weighings = c.Weighings
	s.Mortalities = c.Mortalities
	s.Treatments = c.Treatments
	s.Pastures = c.Pastures
	s.Expenses = c.Expenses
	s.Incomes = c.Incomes
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
