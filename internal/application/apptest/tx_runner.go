package apptest

import (
	"context"

	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

// TxRunner doble en memoria del runner transaccional. Clona el Store antes de
// ejecutar la función y solo vuelca el clon si esta retorna nil, de modo que
// los tests de atomicidad observan el mismo todo-o-nada que la base de datos.
type TxRunner struct{ s *Store }

// NewTxRunner crea el doble sobre el Store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run ejecuta la transacción del motor de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	batchRepo repository.BatchRepository,
	expenseRepo repository.ExpenseRepository,
) error) error {
	c := r.s.clone()
	if err := fn(NewStockMovementRepo(c), NewBatchRepo(c), NewExpenseRepo(c)); err != nil {
		return err
	}
	r.s.commit(c)
	return nil
}

// RunLivestock ejecuta la transacción de un evento de ganado.
func (r *TxRunner) RunLivestock(ctx context.Context, fn func(
	animalRepo repository.AnimalRepository,
	weighingRepo repository.WeighingRepository,
	mortalityRepo repository.MortalityRepository,
	expenseRepo repository.ExpenseRepository,
	incomeRepo repository.IncomeRepository,
) error) error {
	c := r.s.clone()
	if err := fn(NewAnimalRepo(c), NewWeighingRepo(c), NewMortalityRepo(c), NewExpenseRepo(c), NewIncomeRepo(c)); err != nil {
		return err
	}
	r.s.commit(c)
	return nil
}

// RunTreatment ejecuta la transacción de un tratamiento sanitario.
func (r *TxRunner) RunTreatment(ctx context.Context, fn func(
	treatmentRepo repository.TreatmentRepository,
	movRepo repository.StockMovementRepository,
	expenseRepo repository.ExpenseRepository,
) error) error {
	c := r.s.clone()
	if err := fn(NewTreatmentRepo(c), NewStockMovementRepo(c), NewExpenseRepo(c)); err != nil {
		return err
	}
	r.s.commit(c)
	return nil
}
