package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/AgroGestion-api/internal/application/inventory"
	"github.com/jhoicas/AgroGestion-api/internal/application/livestock"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and livestock.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ livestock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con repos del motor de inventario y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	batchRepo repository.BatchRepository,
	expenseRepo repository.ExpenseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	batchRepo := NewBatchRepository(tx)
	expenseRepo := NewExpenseRepository(tx)

	if err := fn(movRepo, batchRepo, expenseRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLivestock inicia una transacción con los repos de los eventos de ganado
// (alta, venta, mortalidad y sus asientos financieros).
func (r *TxRunner) RunLivestock(ctx context.Context, fn func(
	animalRepo repository.AnimalRepository,
	weighingRepo repository.WeighingRepository,
	mortalityRepo repository.MortalityRepository,
	expenseRepo repository.ExpenseRepository,
	incomeRepo repository.IncomeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	animalRepo := NewAnimalRepository(tx)
	weighingRepo := NewWeighingRepository(tx)
	mortalityRepo := NewMortalityRepository(tx)
	expenseRepo := NewExpenseRepository(tx)
	incomeRepo := NewIncomeRepository(tx)

	if err := fn(animalRepo, weighingRepo, mortalityRepo, expenseRepo, incomeRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTreatment inicia una transacción con los repos de tratamientos
// (registro, consumo de insumo y gasto automático).
func (r *TxRunner) RunTreatment(ctx context.Context, fn func(
	treatmentRepo repository.TreatmentRepository,
	movRepo repository.StockMovementRepository,
	expenseRepo repository.ExpenseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	treatmentRepo := NewTreatmentRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	expenseRepo := NewExpenseRepository(tx)

	if err := fn(treatmentRepo, movRepo, expenseRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
