package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de movimientos.
// El libro es append-only: no hay Update; Delete solo existe como acción
// compensatoria al eliminar el evento de dominio que originó el movimiento.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// Delete elimina un movimiento como compensación (ej. borrar un tratamiento).
	Delete(id string) error
	// SumByItem suma las cantidades con signo por insumo para una finca
	// (y lote si se indica). Insumo ausente del mapa = stock cero.
	SumByItem(farmID string, batchID *string) (map[string]decimal.Decimal, error)
	// SumForItem suma las cantidades con signo de un insumo concreto.
	SumForItem(farmID, supplyItemID string, batchID *string) (decimal.Decimal, error)
	// ListPurchases devuelve los movimientos de compra del insumo (para costo promedio).
	ListPurchases(supplyItemID string) ([]*entity.StockMovement, error)
	ListByItem(farmID, supplyItemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// LockStockKey toma un advisory lock transaccional sobre la llave
	// (finca, insumo, lote) para serializar escritores concurrentes que validan
	// stock. Solo tiene efecto sobre una instancia atada a una transacción.
	LockStockKey(farmID, supplyItemID string, batchID *string) error
}
