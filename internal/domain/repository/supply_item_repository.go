package repository

import (
	"time"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// SupplyItemRepository define el puerto de persistencia para insumos.
type SupplyItemRepository interface {
	Create(item *entity.SupplyItem) error
	Update(item *entity.SupplyItem) error
	GetByID(id string) (*entity.SupplyItem, error)
	GetByFarmAndName(farmID, name string) (*entity.SupplyItem, error)
	ListByFarm(farmID string, activeOnly bool) ([]*entity.SupplyItem, error)
}

// BatchRepository define el puerto de persistencia para lotes de insumos.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	// FindByItemAndCode busca un lote reutilizable por (insumo, código).
	FindByItemAndCode(supplyItemID, code string) (*entity.Batch, error)
	// FindByItemAndExpiration busca un lote sin código por (insumo, vencimiento).
	FindByItemAndExpiration(supplyItemID string, expiration time.Time) (*entity.Batch, error)
	ListByItem(supplyItemID string) ([]*entity.Batch, error)
}
