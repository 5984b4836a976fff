package livestock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	domfinance "github.com/jhoicas/AgroGestion-api/internal/domain/finance"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

// TxRunner ejecuta las orquestaciones de eventos de ganado dentro de una
// transacción de BD, pasando repositorios atados a esa tx. Cada evento
// (alta, venta, mortalidad, tratamiento) confirma o revierte todas sus
// escrituras como unidad.
type TxRunner interface {
	RunLivestock(ctx context.Context, fn func(
		animalRepo repository.AnimalRepository,
		weighingRepo repository.WeighingRepository,
		mortalityRepo repository.MortalityRepository,
		expenseRepo repository.ExpenseRepository,
		incomeRepo repository.IncomeRepository,
	) error) error
	RunTreatment(ctx context.Context, fn func(
		treatmentRepo repository.TreatmentRepository,
		movRepo repository.StockMovementRepository,
		expenseRepo repository.ExpenseRepository,
	) error) error
}

// FinancePort integra los eventos de ganado con el libro financiero.
// Retorno (nil, nil) = asiento omitido por categoría semilla ausente;
// cualquier error aborta la transacción del caller.
type FinancePort interface {
	RegisterExpenseAnimalPurchaseInTx(
		expRepo repository.ExpenseRepository,
		farmID string,
		animal *entity.Animal,
		cost decimal.Decimal,
		date time.Time,
		userID string,
	) (*entity.Expense, error)
	RegisterExpenseMortalityInTx(
		expRepo repository.ExpenseRepository,
		farmID string,
		animal *entity.Animal,
		mortalityID string,
		cost decimal.Decimal,
		date time.Time,
		userID string,
	) (*entity.Expense, error)
	RegisterExpenseTreatmentInTx(
		expRepo repository.ExpenseRepository,
		farmID string,
		treatment *entity.Treatment,
		itemName, typeName, userID string,
	) (*entity.Expense, error)
	RegisterIncomeAnimalSaleInTx(
		incRepo repository.IncomeRepository,
		farmID string,
		animal *entity.Animal,
		price decimal.Decimal,
		date time.Time,
		saleWeight *decimal.Decimal,
		userID string,
	) (*entity.Income, error)
	ReverseExpenseByOriginInTx(expRepo repository.ExpenseRepository, origin domfinance.OriginRef) error
	ReverseIncomeByOriginInTx(incRepo repository.IncomeRepository, origin domfinance.OriginRef) error
}

// InventoryPort integra tratamientos con el motor de inventario usando los
// repositorios de la transacción del caller. Si retorna error
// (ej: ErrInsufficientStock), el caller debe hacer rollback.
type InventoryPort interface {
	RegisterConsumptionInTx(
		movRepo repository.StockMovementRepository,
		farmID string,
		item *entity.SupplyItem,
		batchID *string,
		qty decimal.Decimal,
		userID string,
		now time.Time,
		note string,
	) (*entity.StockMovement, error)
	RegisterAdjustmentInTx(
		movRepo repository.StockMovementRepository,
		farmID string,
		item *entity.SupplyItem,
		batchID *string,
		qty decimal.Decimal,
		userID string,
		now time.Time,
		note string,
	) (*entity.StockMovement, error)
}
