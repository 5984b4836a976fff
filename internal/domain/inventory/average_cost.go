package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// AverageCost implementa el costo promedio ponderado de un insumo (servicio de dominio).
// Se deriva únicamente de movimientos de compra con costo unitario registrado:
// Σ(Cantidad × CostoUnitario) / Σ(Cantidad). Devuelve 0 si no hay compras válidas.
func AverageCost(movements []*entity.StockMovement) decimal.Decimal {
	var totalQty, totalCost decimal.Decimal
	for _, m := range movements {
		if m.Kind != entity.MovementKindPurchase || m.UnitCost == nil {
			continue
		}
		if !m.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		totalQty = totalQty.Add(m.Quantity)
		totalCost = totalCost.Add(m.Quantity.Mul(*m.UnitCost))
	}
	if totalQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return totalCost.Div(totalQty)
}
