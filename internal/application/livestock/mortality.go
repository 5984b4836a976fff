package livestock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	domfinance "github.com/jhoicas/AgroGestion-api/internal/domain/finance"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

// RegisterMortality registra la baja de un animal activo: inserta el registro,
// fuerza el estado DEAD y, si el animal tenía costo de compra, registra la
// pérdida etiquetada (MORTALITY, id). Las tres escrituras son una transacción.
func (uc *UseCase) RegisterMortality(ctx context.Context, farmID, userID string, in dto.RegisterMortalityRequest) (*entity.Mortality, error) {
	if in.AnimalID == "" {
		return nil, domain.ErrInvalidInput
	}
	animal, err := uc.ownedAnimal(farmID, in.AnimalID)
	if err != nil {
		return nil, err
	}
	if !animal.IsActive() {
		return nil, domain.ErrInvalidState
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	mortality := &entity.Mortality{
		ID:        uuid.New().String(),
		AnimalID:  animal.ID,
		Date:      date,
		Cause:     in.Cause,
		Note:      in.Note,
		CreatedAt: now,
		CreatedBy: userID,
	}

	err = uc.txRunner.RunLivestock(ctx, func(
		animalRepo repository.AnimalRepository,
		_ repository.WeighingRepository,
		mortalityRepo repository.MortalityRepository,
		expenseRepo repository.ExpenseRepository,
		_ repository.IncomeRepository,
	) error {
		if err := mortalityRepo.Create(mortality); err != nil {
			return err
		}
		animal.State = entity.AnimalStateDead
		animal.UpdatedAt = now
		if err := animalRepo.Update(animal); err != nil {
			return err
		}
		if animal.PurchaseCost != nil && animal.PurchaseCost.GreaterThan(decimal.Zero) {
			if _, err := uc.finance.RegisterExpenseMortalityInTx(
				expenseRepo, farmID, animal, mortality.ID, *animal.PurchaseCost, date, userID,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mortality, nil
}

// DeleteMortality deshace una baja: revierte el animal a ACTIVE (única
// transición inversa de la máquina de estados), elimina la pérdida etiquetada
// si existe y borra el registro, atómicamente. ErrNotFound si el registro no
// está bajo la finca del caller.
func (uc *UseCase) DeleteMortality(ctx context.Context, farmID, mortalityID string) error {
	mortality, err := uc.mortalityRepo.GetByID(mortalityID)
	if err != nil {
		return err
	}
	if mortality == nil {
		return domain.ErrNotFound
	}
	animal, err := uc.ownedAnimal(farmID, mortality.AnimalID)
	if err != nil {
		return err
	}
	origin, err := domfinance.NewOriginRef(domfinance.OriginMortality, mortality.ID)
	if err != nil {
		return err
	}

	return uc.txRunner.RunLivestock(ctx, func(
		animalRepo repository.AnimalRepository,
		_ repository.WeighingRepository,
		mortalityRepo repository.MortalityRepository,
		expenseRepo repository.ExpenseRepository,
		_ repository.IncomeRepository,
	) error {
		animal.State = entity.AnimalStateActive
		animal.UpdatedAt = time.Now()
		if err := animalRepo.Update(animal); err != nil {
			return err
		}
		if err := uc.finance.ReverseExpenseByOriginInTx(expenseRepo, origin); err != nil {
			return err
		}
		return mortalityRepo.Delete(mortality.ID)
	})
}

// ListMortalities lista las bajas de la finca.
func (uc *UseCase) ListMortalities(ctx context.Context, farmID string, limit, offset int) ([]*entity.Mortality, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.mortalityRepo.ListByFarm(farmID, limit, offset)
}
