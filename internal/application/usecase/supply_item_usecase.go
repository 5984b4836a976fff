package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

// SupplyItemUseCase casos de uso CRUD para insumos. El stock no se edita aquí:
// se deriva sumando los movimientos del libro.
type SupplyItemUseCase struct {
	itemRepo     repository.SupplyItemRepository
	batchRepo    repository.BatchRepository
	movementRepo repository.StockMovementRepository
}

// NewSupplyItemUseCase construye el caso de uso.
func NewSupplyItemUseCase(
	itemRepo repository.SupplyItemRepository,
	batchRepo repository.BatchRepository,
	movementRepo repository.StockMovementRepository,
) *SupplyItemUseCase {
	return &SupplyItemUseCase{itemRepo: itemRepo, batchRepo: batchRepo, movementRepo: movementRepo}
}

// Create crea un insumo. El nombre es único por finca.
func (uc *SupplyItemUseCase) Create(farmID string, in dto.CreateSupplyItemRequest) (*dto.SupplyItemResponse, error) {
	if in.Name == "" || in.CategoryID == "" || in.UnitID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinimumStock.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.itemRepo.GetByFarmAndName(farmID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.SupplyItem{
		ID:           uuid.New().String(),
		FarmID:       farmID,
		CategoryID:   in.CategoryID,
		Name:         in.Name,
		UnitID:       in.UnitID,
		MinimumStock: in.MinimumStock,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toSupplyItemResponse(item, nil), nil
}

// Update actualiza un insumo de la finca.
func (uc *SupplyItemUseCase) Update(farmID, id string, in dto.UpdateSupplyItemRequest) (*dto.SupplyItemResponse, error) {
	item, err := uc.ownedItem(farmID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" && in.Name != item.Name {
		existing, err := uc.itemRepo.GetByFarmAndName(farmID, in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		item.Name = in.Name
	}
	if in.CategoryID != "" {
		item.CategoryID = in.CategoryID
	}
	if in.UnitID != "" {
		item.UnitID = in.UnitID
	}
	if in.MinimumStock.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item.MinimumStock = in.MinimumStock
	if in.Active != nil {
		item.Active = *in.Active
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toSupplyItemResponse(item, nil), nil
}

// GetByID obtiene un insumo de la finca con su stock derivado.
func (uc *SupplyItemUseCase) GetByID(farmID, id string) (*dto.SupplyItemResponse, error) {
	item, err := uc.ownedItem(farmID, id)
	if err != nil {
		return nil, err
	}
	stock, err := uc.movementRepo.SumForItem(farmID, item.ID, nil)
	if err != nil {
		return nil, err
	}
	return toSupplyItemResponse(item, &stock), nil
}

// List lista los insumos de la finca con su stock derivado (suma por insumo,
// todas las dimensiones de lote).
func (uc *SupplyItemUseCase) List(farmID string, activeOnly bool) ([]*dto.SupplyItemResponse, error) {
	items, err := uc.itemRepo.ListByFarm(farmID, activeOnly)
	if err != nil {
		return nil, err
	}
	stocks, err := uc.movementRepo.SumByItem(farmID, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplyItemResponse, 0, len(items))
	for _, item := range items {
		stock := stocks[item.ID]
		out = append(out, toSupplyItemResponse(item, &stock))
	}
	return out, nil
}

// ListBatches lista los lotes de un insumo de la finca.
func (uc *SupplyItemUseCase) ListBatches(farmID, itemID string) ([]*dto.BatchResponse, error) {
	item, err := uc.ownedItem(farmID, itemID)
	if err != nil {
		return nil, err
	}
	batches, err := uc.batchRepo.ListByItem(item.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, &dto.BatchResponse{
			ID:             b.ID,
			Code:           b.Code,
			ExpirationDate: b.ExpirationDate,
		})
	}
	return out, nil
}

func (uc *SupplyItemUseCase) ownedItem(farmID, id string) (*entity.SupplyItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.FarmID != farmID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func toSupplyItemResponse(item *entity.SupplyItem, stock *decimal.Decimal) *dto.SupplyItemResponse {
	return &dto.SupplyItemResponse{
		ID:           item.ID,
		CategoryID:   item.CategoryID,
		Name:         item.Name,
		UnitID:       item.UnitID,
		MinimumStock: item.MinimumStock,
		Active:       item.Active,
		Stock:        stock,
	}
}
