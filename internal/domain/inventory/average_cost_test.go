package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func purchase(qty, unitCost string, day int) *entity.StockMovement {
	uc := dec(unitCost)
	return &entity.StockMovement{
		Kind:     entity.MovementKindPurchase,
		Quantity: dec(qty),
		UnitCost: &uc,
		Date:     time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
	}
}

// Promedio ponderado clásico: 10 kg a $2000 y 30 kg a $2400 dan
// (20000 + 72000) / 40 = $2300.
func TestAverageCost_PromedioPonderado(t *testing.T) {
	avg := inventory.AverageCost([]*entity.StockMovement{
		purchase("10", "2000", 1),
		purchase("30", "2400", 2),
	})
	assert.True(t, dec("2300").Equal(avg), "esperado 2300, obtenido %s", avg)
}

func TestAverageCost_SinComprasEsCero(t *testing.T) {
	avg := inventory.AverageCost(nil)
	assert.True(t, avg.IsZero())
}

// Las compras sin costo unitario registrado no participan del promedio.
func TestAverageCost_IgnoraComprasSinCosto(t *testing.T) {
	sinCosto := &entity.StockMovement{
		Kind:     entity.MovementKindPurchase,
		Quantity: dec("100"),
		Date:     time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	}
	avg := inventory.AverageCost([]*entity.StockMovement{
		purchase("10", "500", 1),
		sinCosto,
	})
	assert.True(t, dec("500").Equal(avg), "esperado 500, obtenido %s", avg)
}

// Los movimientos que no son compra (consumos, ajustes) tampoco participan,
// aunque el caller los incluya por error.
func TestAverageCost_IgnoraMovimientosNoCompra(t *testing.T) {
	uc := dec("999")
	consumo := &entity.StockMovement{
		Kind:     entity.MovementKindConsumption,
		Quantity: dec("-5"),
		UnitCost: &uc,
		Date:     time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
	}
	avg := inventory.AverageCost([]*entity.StockMovement{
		purchase("20", "100", 1),
		consumo,
	})
	assert.True(t, dec("100").Equal(avg))
}
