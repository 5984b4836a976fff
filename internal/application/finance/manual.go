package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// Asientos manuales: los crea y administra el usuario directamente.
// Los automáticos (Origin presente) son intocables por esta vía: editar o
// borrar uno devuelve ErrConflict; su ciclo de vida pertenece al evento de
// dominio que los creó.

// CreateExpense crea un gasto manual.
func (uc *UseCase) CreateExpense(ctx context.Context, farmID, userID string, in dto.CreateExpenseRequest) (*entity.Expense, error) {
	if in.CategoryID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	exp := &entity.Expense{
		ID:           uuid.New().String(),
		FarmID:       farmID,
		CategoryID:   in.CategoryID,
		Date:         date,
		Amount:       in.Amount,
		Description:  in.Description,
		AnimalID:     in.AnimalID,
		SupplyItemID: in.SupplyItemID,
		PastureID:    in.PastureID,
		Automatic:    false,
		CreatedAt:    time.Now(),
		CreatedBy:    userID,
	}
	if err := uc.expenseRepo.Create(exp); err != nil {
		return nil, err
	}
	return exp, nil
}

// UpdateExpense actualiza un gasto manual de la finca.
func (uc *UseCase) UpdateExpense(ctx context.Context, farmID, id string, in dto.UpdateExpenseRequest) (*entity.Expense, error) {
	exp, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exp == nil || exp.FarmID != farmID {
		return nil, domain.ErrNotFound
	}
	if exp.Automatic {
		return nil, domain.ErrConflict
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	exp.Amount = in.Amount
	exp.Description = in.Description
	if in.CategoryID != "" {
		exp.CategoryID = in.CategoryID
	}
	if in.Date != nil {
		exp.Date = *in.Date
	}
	if err := uc.expenseRepo.Update(exp); err != nil {
		return nil, err
	}
	return exp, nil
}

// DeleteExpense elimina un gasto manual de la finca.
func (uc *UseCase) DeleteExpense(ctx context.Context, farmID, id string) error {
	exp, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if exp == nil || exp.FarmID != farmID {
		return domain.ErrNotFound
	}
	if exp.Automatic {
		return domain.ErrConflict
	}
	return uc.expenseRepo.Delete(id)
}

// ListExpenses lista los gastos de la finca en un rango de fechas.
func (uc *UseCase) ListExpenses(ctx context.Context, farmID string, from, to *time.Time, limit, offset int) ([]*entity.Expense, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.expenseRepo.ListByFarm(farmID, from, to, limit, offset)
}

// CreateIncome crea un ingreso manual.
func (uc *UseCase) CreateIncome(ctx context.Context, farmID, userID string, in dto.CreateIncomeRequest) (*entity.Income, error) {
	if in.CategoryID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	inc := &entity.Income{
		ID:          uuid.New().String(),
		FarmID:      farmID,
		CategoryID:  in.CategoryID,
		Date:        date,
		Amount:      in.Amount,
		Description: in.Description,
		AnimalID:    in.AnimalID,
		Automatic:   false,
		CreatedAt:   time.Now(),
		CreatedBy:   userID,
	}
	if err := uc.incomeRepo.Create(inc); err != nil {
		return nil, err
	}
	return inc, nil
}

// UpdateIncome actualiza un ingreso manual de la finca.
func (uc *UseCase) UpdateIncome(ctx context.Context, farmID, id string, in dto.UpdateIncomeRequest) (*entity.Income, error) {
	inc, err := uc.incomeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inc == nil || inc.FarmID != farmID {
		return nil, domain.ErrNotFound
	}
	if inc.Automatic {
		return nil, domain.ErrConflict
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	inc.Amount = in.Amount
	inc.Description = in.Description
	if in.CategoryID != "" {
		inc.CategoryID = in.CategoryID
	}
	if in.Date != nil {
		inc.Date = *in.Date
	}
	if err := uc.incomeRepo.Update(inc); err != nil {
		return nil, err
	}
	return inc, nil
}

// DeleteIncome elimina un ingreso manual de la finca.
func (uc *UseCase) DeleteIncome(ctx context.Context, farmID, id string) error {
	inc, err := uc.incomeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inc == nil || inc.FarmID != farmID {
		return domain.ErrNotFound
	}
	if inc.Automatic {
		return domain.ErrConflict
	}
	return uc.incomeRepo.Delete(id)
}

// ListIncomes lista los ingresos de la finca en un rango de fechas.
func (uc *UseCase) ListIncomes(ctx context.Context, farmID string, from, to *time.Time, limit, offset int) ([]*entity.Income, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.incomeRepo.ListByFarm(farmID, from, to, limit, offset)
}
