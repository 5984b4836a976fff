package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de inventario:
// movimiento, lote y gasto automático se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		batchRepo repository.BatchRepository,
		expenseRepo repository.ExpenseRepository,
	) error) error
}

// FinancePort integra el motor de inventario con el libro financiero.
// Los métodos reciben el repositorio de gastos atado a la transacción del
// caller; un retorno (nil, nil) significa asiento omitido (categoría semilla
// ausente), cualquier error aborta la transacción.
type FinancePort interface {
	RegisterExpensePurchaseInTx(
		expRepo repository.ExpenseRepository,
		farmID string,
		item *entity.SupplyItem,
		qty, unitCost decimal.Decimal,
		date time.Time,
		movementID, userID string,
	) (*entity.Expense, error)
	RegisterExpenseConsumptionInTx(
		ctx context.Context,
		expRepo repository.ExpenseRepository,
		farmID string,
		item *entity.SupplyItem,
		qty decimal.Decimal,
		date time.Time,
		movementID, userID, note string,
	) (*entity.Expense, error)
}
