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

// RegisterTreatment registra una aplicación sanitaria. Si referencia un insumo
// con cantidad, consume stock (con validación de saldo); si tiene costo,
// registra el gasto etiquetado (TREATMENT, id). Una transacción.
func (uc *UseCase) RegisterTreatment(ctx context.Context, farmID, userID string, in dto.RegisterTreatmentRequest) (*entity.Treatment, error) {
	if in.TreatmentTypeID == "" || in.Cost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	treatmentType, err := uc.catalogRepo.GetTreatmentType(in.TreatmentTypeID)
	if err != nil {
		return nil, err
	}
	if treatmentType == nil {
		return nil, domain.ErrNotFound
	}
	var animal *entity.Animal
	if in.AnimalID != nil {
		animal, err = uc.ownedAnimal(farmID, *in.AnimalID)
		if err != nil {
			return nil, err
		}
		if !animal.IsActive() {
			return nil, domain.ErrInvalidState
		}
	}
	var item *entity.SupplyItem
	if in.SupplyItemID != nil {
		if in.Quantity == nil || !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		var err error
		item, err = uc.ownedItem(farmID, *in.SupplyItemID)
		if err != nil {
			return nil, err
		}
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	treatment := &entity.Treatment{
		ID:              uuid.New().String(),
		FarmID:          farmID,
		AnimalID:        in.AnimalID,
		TreatmentTypeID: in.TreatmentTypeID,
		SupplyItemID:    in.SupplyItemID,
		Quantity:        in.Quantity,
		Cost:            in.Cost,
		Date:            date,
		Note:            in.Note,
		CreatedAt:       now,
		CreatedBy:       userID,
	}

	err = uc.txRunner.RunTreatment(ctx, func(
		treatmentRepo repository.TreatmentRepository,
		movRepo repository.StockMovementRepository,
		expenseRepo repository.ExpenseRepository,
	) error {
		if err := treatmentRepo.Create(treatment); err != nil {
			return err
		}
		if item != nil {
			// El consumo se anexa sin gasto propio: el costo del tratamiento
			// lo cubre el asiento (TREATMENT, id).
			if _, err := uc.inventory.RegisterConsumptionInTx(
				movRepo, farmID, item, nil, *in.Quantity, userID, now,
				"Tratamiento "+treatment.ID,
			); err != nil {
				return err
			}
		}
		if treatment.Cost.GreaterThan(decimal.Zero) {
			itemName := ""
			if item != nil {
				itemName = item.Name
			}
			if _, err := uc.finance.RegisterExpenseTreatmentInTx(
				expenseRepo, farmID, treatment, itemName, treatmentType.Name, userID,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return treatment, nil
}

// DeleteTreatment deshace un tratamiento: revierte el gasto etiquetado,
// compensa el consumo de insumo con un ajuste positivo firmado por el usuario
// que deshace y borra el registro.
func (uc *UseCase) DeleteTreatment(ctx context.Context, farmID, userID, treatmentID string) error {
	treatment, err := uc.treatmentRepo.GetByID(treatmentID)
	if err != nil {
		return err
	}
	if treatment == nil || treatment.FarmID != farmID {
		return domain.ErrNotFound
	}
	var item *entity.SupplyItem
	if treatment.SupplyItemID != nil {
		item, err = uc.ownedItem(farmID, *treatment.SupplyItemID)
		if err != nil {
			return err
		}
	}
	origin, err := domfinance.NewOriginRef(domfinance.OriginTreatment, treatment.ID)
	if err != nil {
		return err
	}
	now := time.Now()

	return uc.txRunner.RunTreatment(ctx, func(
		treatmentRepo repository.TreatmentRepository,
		movRepo repository.StockMovementRepository,
		expenseRepo repository.ExpenseRepository,
	) error {
		if err := uc.finance.ReverseExpenseByOriginInTx(expenseRepo, origin); err != nil {
			return err
		}
		if item != nil && treatment.Quantity != nil {
			if _, err := uc.inventory.RegisterAdjustmentInTx(
				movRepo, farmID, item, nil, *treatment.Quantity, userID, now,
				"Reversión tratamiento "+treatment.ID,
			); err != nil {
				return err
			}
		}
		return treatmentRepo.Delete(treatment.ID)
	})
}

// ListTreatments lista los tratamientos de la finca.
func (uc *UseCase) ListTreatments(ctx context.Context, farmID string, limit, offset int) ([]*entity.Treatment, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.treatmentRepo.ListByFarm(farmID, limit, offset)
}
