package livestock

import (
	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
	"github.com/jhoicas/AgroGestion-api/pkg/logger"
)

// UseCase orquesta los eventos de dominio del ganado: alta y venta de
// animales, mortalidad, tratamientos y pesajes. Cada evento valida la
// precondición de estado, muta la entidad y registra/revierte el asiento
// financiero automático en una sola transacción.
type UseCase struct {
	txRunner      TxRunner
	animalRepo    repository.AnimalRepository
	mortalityRepo repository.MortalityRepository
	treatmentRepo repository.TreatmentRepository
	weighingRepo  repository.WeighingRepository
	itemRepo      repository.SupplyItemRepository
	pastureRepo   repository.PastureRepository
	catalogRepo   repository.CatalogRepository
	finance       FinancePort
	inventory     InventoryPort
	log           *logger.Logger
}

// NewUseCase construye el orquestador de eventos de ganado.
func NewUseCase(
	txRunner TxRunner,
	animalRepo repository.AnimalRepository,
	mortalityRepo repository.MortalityRepository,
	treatmentRepo repository.TreatmentRepository,
	weighingRepo repository.WeighingRepository,
	itemRepo repository.SupplyItemRepository,
	pastureRepo repository.PastureRepository,
	catalogRepo repository.CatalogRepository,
	finance FinancePort,
	inventory InventoryPort,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		animalRepo:    animalRepo,
		mortalityRepo: mortalityRepo,
		treatmentRepo: treatmentRepo,
		weighingRepo:  weighingRepo,
		itemRepo:      itemRepo,
		pastureRepo:   pastureRepo,
		catalogRepo:   catalogRepo,
		finance:       finance,
		inventory:     inventory,
		log:           log,
	}
}

// ownedAnimal valida que el animal exista y pertenezca a la finca.
func (uc *UseCase) ownedAnimal(farmID, animalID string) (*entity.Animal, error) {
	animal, err := uc.animalRepo.GetByID(animalID)
	if err != nil || animal == nil {
		return nil, domain.ErrNotFound
	}
	if animal.FarmID != farmID {
		return nil, domain.ErrNotFound
	}
	return animal, nil
}

// ownedItem valida que el insumo exista y pertenezca a la finca.
func (uc *UseCase) ownedItem(farmID, itemID string) (*entity.SupplyItem, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil || item == nil {
		return nil, domain.ErrNotFound
	}
	if item.FarmID != farmID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
