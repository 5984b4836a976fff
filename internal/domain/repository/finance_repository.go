package repository

import (
	"time"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/finance"
)

// ExpenseRepository define el puerto de persistencia del libro de gastos.
// Update y Delete solo aplican a asientos manuales; los automáticos se
// eliminan únicamente vía DeleteByOrigin desde el evento de dominio dueño.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	Update(expense *entity.Expense) error
	Delete(id string) error
	GetByID(id string) (*entity.Expense, error)
	// GetByOrigin devuelve el único asiento automático etiquetado con la
	// referencia, o nil si no existe.
	GetByOrigin(origin finance.OriginRef) (*entity.Expense, error)
	// DeleteByOrigin elimina el asiento etiquetado y devuelve cuántas filas
	// borró (0 o 1); la reversión es idempotente.
	DeleteByOrigin(origin finance.OriginRef) (int64, error)
	ListByFarm(farmID string, from, to *time.Time, limit, offset int) ([]*entity.Expense, error)
}

// IncomeRepository define el puerto de persistencia del libro de ingresos.
type IncomeRepository interface {
	Create(income *entity.Income) error
	Update(income *entity.Income) error
	Delete(id string) error
	GetByID(id string) (*entity.Income, error)
	GetByOrigin(origin finance.OriginRef) (*entity.Income, error)
	DeleteByOrigin(origin finance.OriginRef) (int64, error)
	ListByFarm(farmID string, from, to *time.Time, limit, offset int) ([]*entity.Income, error)
}

// CatalogRepository consulta los catálogos de referencia globales (datos semilla).
type CatalogRepository interface {
	// FindFinanceCategory busca una categoría por libro (EXPENSE|INCOME) y nombre.
	// Devuelve (nil, nil) si no existe: los llamadores deben tratarlo como
	// fallo blando (omitir el asiento automático, no abortar la transacción).
	FindFinanceCategory(ledger, name string) (*entity.FinanceCategory, error)
	ListFinanceCategories(ledger string) ([]*entity.FinanceCategory, error)
	ListUnits() ([]*entity.Unit, error)
	GetTreatmentType(id string) (*entity.TreatmentType, error)
	ListTreatmentTypes() ([]*entity.TreatmentType, error)
	ListBreeds() ([]*entity.Breed, error)
	ListSupplyCategories() ([]*entity.SupplyCategory, error)
}
