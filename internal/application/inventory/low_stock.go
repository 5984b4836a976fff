package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
)

// LowStock devuelve los insumos activos de la finca cuyo stock derivado está
// por debajo del mínimo configurado, con la cantidad sugerida de pedido
// (stock ideal = 1.5 × mínimo), ordenados por severidad del faltante.
func (uc *UseCase) LowStock(ctx context.Context, farmID string) ([]dto.LowStockItemDTO, error) {
	items, err := uc.itemRepo.ListByFarm(farmID, true)
	if err != nil {
		return nil, err
	}
	stocks, err := uc.movementRepo.SumByItem(farmID, nil)
	if err != nil {
		return nil, err
	}

	ideal := decimal.NewFromFloat(1.5)
	out := make([]dto.LowStockItemDTO, 0)
	for _, item := range items {
		if !item.MinimumStock.GreaterThan(decimal.Zero) {
			continue
		}
		stock := stocks[item.ID] // ausencia de llave = cero
		if stock.GreaterThanOrEqual(item.MinimumStock) {
			continue
		}
		suggested := item.MinimumStock.Mul(ideal).Sub(stock)
		out = append(out, dto.LowStockItemDTO{
			SupplyItemID: item.ID,
			Name:         item.Name,
			Stock:        stock,
			MinimumStock: item.MinimumStock,
			SuggestedQty: suggested,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		// Mayor faltante relativo primero
		di := out[i].MinimumStock.Sub(out[i].Stock).Div(out[i].MinimumStock)
		dj := out[j].MinimumStock.Sub(out[j].Stock).Div(out[j].MinimumStock)
		return di.GreaterThan(dj)
	})
	return out, nil
}
