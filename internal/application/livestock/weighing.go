package livestock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// AddWeighing registra un pesaje de un animal activo de la finca.
func (uc *UseCase) AddWeighing(ctx context.Context, farmID string, in dto.AddWeighingRequest) (*entity.Weighing, error) {
	if in.AnimalID == "" || !in.WeightKg.GreaterThan(decimal.Zero) {
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
	weighing := &entity.Weighing{
		ID:        uuid.New().String(),
		AnimalID:  animal.ID,
		Date:      date,
		WeightKg:  in.WeightKg,
		Note:      in.Note,
		CreatedAt: now,
	}
	if err := uc.weighingRepo.Create(weighing); err != nil {
		return nil, err
	}
	return weighing, nil
}

// ListWeighings lista los pesajes de un animal de la finca.
func (uc *UseCase) ListWeighings(ctx context.Context, farmID, animalID string) ([]*entity.Weighing, error) {
	if _, err := uc.ownedAnimal(farmID, animalID); err != nil {
		return nil, err
	}
	return uc.weighingRepo.ListByAnimal(animalID)
}

// DeleteWeighing elimina un pesaje, verificando que el animal pertenezca a la finca.
func (uc *UseCase) DeleteWeighing(ctx context.Context, farmID, weighingID string) error {
	weighing, err := uc.weighingRepo.GetByID(weighingID)
	if err != nil {
		return err
	}
	if weighing == nil {
		return domain.ErrNotFound
	}
	if _, err := uc.ownedAnimal(farmID, weighing.AnimalID); err != nil {
		return err
	}
	return uc.weighingRepo.Delete(weighing.ID)
}
