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

// CreateAnimal da de alta un animal. Si trae peso de nacimiento inserta el
// pesaje inicial; si trae costo de compra registra el gasto etiquetado
// (ANIMAL, id). Las tres escrituras son una transacción: un animal cuyo gasto
// falló no debe existir.
func (uc *UseCase) CreateAnimal(ctx context.Context, farmID, userID string, in dto.CreateAnimalRequest) (*entity.Animal, error) {
	if in.Tag == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Sex != entity.AnimalSexMale && in.Sex != entity.AnimalSexFemale {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchaseCost != nil && in.PurchaseCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.BirthWeight != nil && !in.BirthWeight.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.animalRepo.GetByFarmAndTag(farmID, in.Tag)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.LotID != nil {
		if err := uc.ownedPasture(farmID, *in.LotID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	animal := &entity.Animal{
		ID:           uuid.New().String(),
		FarmID:       farmID,
		Tag:          in.Tag,
		Name:         in.Name,
		Sex:          in.Sex,
		BreedID:      in.BreedID,
		BirthDate:    in.BirthDate,
		BirthWeight:  in.BirthWeight,
		PurchaseCost: in.PurchaseCost,
		State:        entity.AnimalStateActive,
		MotherID:     in.MotherID,
		FatherID:     in.FatherID,
		LotID:        in.LotID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunLivestock(ctx, func(
		animalRepo repository.AnimalRepository,
		weighingRepo repository.WeighingRepository,
		_ repository.MortalityRepository,
		expenseRepo repository.ExpenseRepository,
		_ repository.IncomeRepository,
	) error {
		if err := animalRepo.Create(animal); err != nil {
			return err
		}
		if in.BirthWeight != nil {
			w := &entity.Weighing{
				ID:        uuid.New().String(),
				AnimalID:  animal.ID,
				Date:      now,
				WeightKg:  *in.BirthWeight,
				Note:      "Peso de nacimiento",
				CreatedAt: now,
			}
			if err := weighingRepo.Create(w); err != nil {
				return err
			}
		}
		if in.PurchaseCost != nil && in.PurchaseCost.GreaterThan(decimal.Zero) {
			if _, err := uc.finance.RegisterExpenseAnimalPurchaseInTx(
				expenseRepo, farmID, animal, *in.PurchaseCost, now, userID,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return animal, nil
}

// SellAnimal vende un animal activo: fija estado, precio y fecha de venta y
// registra el ingreso etiquetado (ANIMAL, id), todo en una transacción.
// Si el animal no está ACTIVE falla con ErrInvalidState sin escribir nada.
func (uc *UseCase) SellAnimal(ctx context.Context, farmID, userID, animalID string, in dto.SellAnimalRequest) (*entity.Animal, error) {
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	animal, err := uc.ownedAnimal(farmID, animalID)
	if err != nil {
		return nil, err
	}
	if !animal.IsActive() {
		return nil, domain.ErrInvalidState
	}
	saleDate := time.Now()
	if in.Date != nil {
		saleDate = *in.Date
	}

	err = uc.txRunner.RunLivestock(ctx, func(
		animalRepo repository.AnimalRepository,
		_ repository.WeighingRepository,
		_ repository.MortalityRepository,
		_ repository.ExpenseRepository,
		incomeRepo repository.IncomeRepository,
	) error {
		animal.State = entity.AnimalStateSold
		animal.SalePrice = &in.Price
		animal.SaleDate = &saleDate
		animal.UpdatedAt = time.Now()
		if err := animalRepo.Update(animal); err != nil {
			return err
		}
		_, err := uc.finance.RegisterIncomeAnimalSaleInTx(
			incomeRepo, farmID, animal, in.Price, saleDate, in.SaleWeight, userID,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return animal, nil
}

// DeleteAnimal elimina un animal activo junto con sus pesajes y revierte el
// gasto de compra etiquetado (ANIMAL, id). Un animal vendido o muerto no se
// puede eliminar: primero habría que deshacer el evento correspondiente.
func (uc *UseCase) DeleteAnimal(ctx context.Context, farmID, animalID string) error {
	animal, err := uc.ownedAnimal(farmID, animalID)
	if err != nil {
		return err
	}
	if !animal.IsActive() {
		return domain.ErrInvalidState
	}
	origin, err := domfinance.NewOriginRef(domfinance.OriginAnimal, animal.ID)
	if err != nil {
		return err
	}

	return uc.txRunner.RunLivestock(ctx, func(
		animalRepo repository.AnimalRepository,
		weighingRepo repository.WeighingRepository,
		_ repository.MortalityRepository,
		expenseRepo repository.ExpenseRepository,
		_ repository.IncomeRepository,
	) error {
		if err := weighingRepo.DeleteByAnimal(animal.ID); err != nil {
			return err
		}
		if err := uc.finance.ReverseExpenseByOriginInTx(expenseRepo, origin); err != nil {
			return err
		}
		return animalRepo.Delete(animal.ID)
	})
}

// AssignLot asigna (o quita, con nil) el potrero de un animal activo.
func (uc *UseCase) AssignLot(ctx context.Context, farmID, animalID string, lotID *string) (*entity.Animal, error) {
	animal, err := uc.ownedAnimal(farmID, animalID)
	if err != nil {
		return nil, err
	}
	if !animal.IsActive() {
		return nil, domain.ErrInvalidState
	}
	if lotID != nil {
		if err := uc.ownedPasture(farmID, *lotID); err != nil {
			return nil, err
		}
	}
	animal.LotID = lotID
	animal.UpdatedAt = time.Now()
	if err := uc.animalRepo.Update(animal); err != nil {
		return nil, err
	}
	return animal, nil
}

// GetAnimal devuelve un animal de la finca.
func (uc *UseCase) GetAnimal(ctx context.Context, farmID, animalID string) (*entity.Animal, error) {
	return uc.ownedAnimal(farmID, animalID)
}

// ListAnimals lista los animales de la finca, filtrando por estado si se indica.
func (uc *UseCase) ListAnimals(ctx context.Context, farmID, state string, limit, offset int) ([]*entity.Animal, error) {
	switch state {
	case "", entity.AnimalStateActive, entity.AnimalStateSold, entity.AnimalStateDead:
	default:
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.animalRepo.ListByFarm(farmID, state, limit, offset)
}

// ownedPasture valida que el potrero exista y pertenezca a la finca.
func (uc *UseCase) ownedPasture(farmID, pastureID string) error {
	p, err := uc.pastureRepo.GetByID(pastureID)
	if err != nil || p == nil {
		return domain.ErrNotFound
	}
	if p.FarmID != farmID {
		return domain.ErrNotFound
	}
	return nil
}
