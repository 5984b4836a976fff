package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AgroGestion-api/internal/application/apptest"
	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	appfinance "github.com/jhoicas/AgroGestion-api/internal/application/finance"
	"github.com/jhoicas/AgroGestion-api/internal/application/inventory"
	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	domfinance "github.com/jhoicas/AgroGestion-api/internal/domain/finance"
	"github.com/jhoicas/AgroGestion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testFarmID  = "farm-0000-0000-0000-000000000001"
	otherFarmID = "farm-0000-0000-0000-000000000002"
	testUserID  = "user-0000-0000-0000-000000000001"
	testItemID  = "item-0000-0000-0000-000000000001"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newEngine arma el motor de inventario sobre dobles en memoria, con el caso
// de uso financiero real detrás del puerto (los asientos automáticos se
// prueban de punta a punta).
func newEngine(t *testing.T) (*inventory.UseCase, *apptest.Store) {
	t.Helper()
	st := apptest.NewStore()
	st.SeedCategories(
		[2]string{entity.CategoryLedgerExpense, appfinance.CategorySupplyPurchase},
		[2]string{entity.CategoryLedgerExpense, appfinance.CategoryFeeding},
	)
	st.Farms[testFarmID] = entity.Farm{ID: testFarmID, Name: "La Esperanza"}
	st.Farms[otherFarmID] = entity.Farm{ID: otherFarmID, Name: "El Recreo"}
	st.Items[testItemID] = entity.SupplyItem{
		ID:           testItemID,
		FarmID:       testFarmID,
		Name:         "Concentrado lechero",
		MinimumStock: dec("20"),
		Active:       true,
	}

	financeUC := appfinance.NewUseCase(
		apptest.NewCatalogRepo(st),
		apptest.NewStockMovementRepo(st),
		apptest.NewExpenseRepo(st),
		apptest.NewIncomeRepo(st),
		logger.Nop(),
	)
	uc := inventory.NewUseCase(
		apptest.NewTxRunner(st),
		apptest.NewSupplyItemRepo(st),
		apptest.NewStockMovementRepo(st),
		apptest.NewBatchRepo(st),
		apptest.NewFarmRepo(st),
		financeUC,
	)
	return uc, st
}

// mustEntry registra una entrada válida o aborta el test.
func mustEntry(t *testing.T, uc *inventory.UseCase, qty, unitCost string) *entity.StockMovement {
	t.Helper()
	cost := dec(unitCost)
	mov, err := uc.RegisterEntry(context.Background(), testFarmID, testUserID, dto.RegisterEntryRequest{
		SupplyItemID: testItemID,
		Quantity:     dec(qty),
		UnitCost:     &cost,
	})
	require.NoError(t, err)
	return mov
}

func stockOf(t *testing.T, st *apptest.Store, farmID string, batchID *string) decimal.Decimal {
	t.Helper()
	total, err := apptest.NewStockMovementRepo(st).SumForItem(farmID, testItemID, batchID)
	require.NoError(t, err)
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterEntry_CreaMovimientoYGastoEtiquetado(t *testing.T) {
	uc, st := newEngine(t)

	mov := mustEntry(t, uc, "10", "2000")

	assert.Equal(t, entity.MovementKindPurchase, mov.Kind)
	assert.True(t, dec("10").Equal(stockOf(t, st, testFarmID, nil)))

	origin, err := domfinance.NewOriginRef(domfinance.OriginInventory, mov.ID)
	require.NoError(t, err)
	exp, err := apptest.NewExpenseRepo(st).GetByOrigin(origin)
	require.NoError(t, err)
	require.NotNil(t, exp, "la compra con costo debe generar su gasto automático")
	assert.True(t, exp.Automatic)
	assert.True(t, dec("20000").Equal(exp.Amount), "monto = cantidad × costo unitario")
	assert.Equal(t, testFarmID, exp.FarmID)
}

func TestRegisterEntry_SinCostoNoGeneraGasto(t *testing.T) {
	uc, st := newEngine(t)

	_, err := uc.RegisterEntry(context.Background(), testFarmID, testUserID, dto.RegisterEntryRequest{
		SupplyItemID: testItemID,
		Quantity:     dec("5"),
	})
	require.NoError(t, err)
	assert.Empty(t, st.Expenses, "entrada sin costo unitario no toca el libro de gastos")
	assert.Len(t, st.Movements, 1)
}

func TestRegisterEntry_CantidadNoPositivaFalla(t *testing.T) {
	uc, _ := newEngine(t)

	for _, qty := range []string{"0", "-3"} {
		_, err := uc.RegisterEntry(context.Background(), testFarmID, testUserID, dto.RegisterEntryRequest{
			SupplyItemID: testItemID,
			Quantity:     dec(qty),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %s", qty)
	}
}

func TestRegisterEntry_InsumoDeOtraFincaEsNotFound(t *testing.T) {
	uc, _ := newEngine(t)

	_, err := uc.RegisterEntry(context.Background(), otherFarmID, testUserID, dto.RegisterEntryRequest{
		SupplyItemID: testItemID,
		Quantity:     dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el tenant no puede ver insumos ajenos")
}

// El lote se crea perezosamente la primera vez que aparece el código y se
// reutiliza en las entradas siguientes.
func TestRegisterEntry_LotePorCodigoSeCreaYReutiliza(t *testing.T) {
	uc, st := newEngine(t)
	code := "L-2026-03"

	m1, err := uc.RegisterEntry(context.Background(), testFarmID, testUserID, dto.RegisterEntryRequest{
		SupplyItemID: testItemID,
		Quantity:     dec("10"),
		BatchCode:    &code,
	})
	require.NoError(t, err)
	m2, err := uc.RegisterEntry(context.Background(), testFarmID, testUserID, dto.RegisterEntryRequest{
		SupplyItemID: testItemID,
		Quantity:     dec("4"),
		BatchCode:    &code,
	})
	require.NoError(t, err)

	require.NotNil(t, m1.BatchID)
	require.NotNil(t, m2.BatchID)
	assert.Equal(t, *m1.BatchID, *m2.BatchID, "mismo código ⇒ mismo lote")
	assert.Len(t, st.Batches, 1)
	assert.True(t, dec("14").Equal(stockOf(t, st, testFarmID, m1.BatchID)))
}

// Si el gasto automático falla, el movimiento no debe quedar escrito:
// todo o nada.
func TestRegisterEntry_FalloDelGastoRevierteTodo(t *testing.T) {
	uc, st := newEngine(t)
	st.ExpenseCreateErr = errors.New("deadlock simulado")

	cost := dec("100")
	_, err := uc.RegisterEntry(context.Background(), testFarmID, testUserID, dto.RegisterEntryRequest{
		SupplyItemID: testItemID,
		Quantity:     dec("10"),
		UnitCost:     &cost,
	})
	require.Error(t, err)
	assert.Empty(t, st.Movements, "la transacción debe descartar el movimiento")
	assert.Empty(t, st.Expenses)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterConsumption_DescuentaYValoraAlPromedio(t *testing.T) {
	uc, st := newEngine(t)
	// Promedio ponderado: (10×2000 + 30×2400) / 40 = 2300
	mustEntry(t, uc, "10", "2000")
	mustEntry(t, uc, "30", "2400")

	mov, err := uc.RegisterConsumption(context.Background(), testFarmID, testUserID, dto.RegisterConsumptionRequest{
		SupplyItemID: testItemID,
		Quantity:     dec("5"),
		Note:         "ración tarde",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementKindConsumption, mov.Kind)
	assert.True(t, dec("-5").Equal(mov.Quantity), "el consumo se anexa negado")
	assert.True(t, dec("35").Equal(stockOf(t, st, testFarmID, nil)))

	origin, err := domfinance.NewOriginRef(domfinance.OriginInventory, mov.ID)
	require.NoError(t, err)
	exp, err := apptest.NewExpenseRepo(st).GetByOrigin(origin)
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.True(t, dec("11500").Equal(exp.Amount), "5 × 2300 esperado, obtenido %s", exp.Amount)
}

func TestRegisterConsumption_StockInsuficiente(t *testing.T) {
	uc, st := newEngine(t)
	mustEntry(t, uc, "10", "2000")

	_, err := uc.RegisterConsumption(context.Background(), testFarmID, testUserID, dto.RegisterConsumptionRequest{
		SupplyItemID: testItemID,
		Quantity:     dec("15"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Len(t, st.Movements, 1, "el consumo rechazado no deja rastro en el libro")
	assert.True(t, dec("10").Equal(stockOf(t, st, testFarmID, nil)))
}

// La validación de stock respeta el alcance del lote: que el insumo tenga
// saldo total no habilita consumir de un lote casi vacío.
func TestRegisterConsumption_StockPorLote(t *testing.T) {
	uc, _ := newEngine(t)
	codeA, codeB := "A", "B"
	costA := dec("100")

	mA, err := uc.RegisterEntry(context.Background(), testFarmID, testUserID, dto.RegisterEntryRequest{
		SupplyItemID: testItemID, Quantity: dec("10"), UnitCost: &costA, BatchCode: &codeA,
	})
	require.NoError(t, err)
	mB, err := uc.RegisterEntry(context.Background(), testFarmID, testUserID, dto.RegisterEntryRequest{
		SupplyItemID: testItemID, Quantity: dec("2"), UnitCost: &costA, BatchCode: &codeB,
	})
	require.NoError(t, err)

	_, err = uc.RegisterConsumption(context.Background(), testFarmID, testUserID, dto.RegisterConsumptionRequest{
		SupplyItemID: testItemID, Quantity: dec("5"), BatchID: mB.BatchID,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "el lote B solo tiene 2")

	_, err = uc.RegisterConsumption(context.Background(), testFarmID, testUserID, dto.RegisterConsumptionRequest{
		SupplyItemID: testItemID, Quantity: dec("5"), BatchID: mA.BatchID,
	})
	assert.NoError(t, err, "el lote A sí alcanza")
}

// Insumo cuyas entradas no tuvieron costo unitario: el promedio ponderado es
// cero y un gasto de monto cero no cabe en el libro (CHECK amount > 0), así
// que el asiento se omite y el consumo se confirma igual que con la categoría
// ausente.
func TestRegisterConsumption_SinComprasValoradasOmiteElGasto(t *testing.T) {
	uc, st := newEngine(t)
	_, err := uc.RegisterEntry(context.Background(), testFarmID, testUserID, dto.RegisterEntryRequest{
		SupplyItemID: testItemID,
		Quantity:     dec("10"),
	})
	require.NoError(t, err)

	mov, err := uc.RegisterConsumption(context.Background(), testFarmID, testUserID, dto.RegisterConsumptionRequest{
		SupplyItemID: testItemID,
		Quantity:     dec("4"),
	})
	require.NoError(t, err, "el consumo con stock suficiente no debe fallar por falta de valoración")
	require.NotNil(t, mov)
	assert.True(t, dec("6").Equal(stockOf(t, st, testFarmID, nil)))
	assert.Empty(t, st.Expenses, "promedio cero ⇒ sin asiento automático")
}

// Categoría semilla ausente: el gasto automático se omite pero el movimiento
// de dominio se confirma igual (fallo blando).
func TestRegisterConsumption_CategoriaAusenteOmiteElGasto(t *testing.T) {
	uc, st := newEngine(t)
	mustEntry(t, uc, "10", "2000")
	st.Categories = nil

	mov, err := uc.RegisterConsumption(context.Background(), testFarmID, testUserID, dto.RegisterConsumptionRequest{
		SupplyItemID: testItemID,
		Quantity:     dec("3"),
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.True(t, dec("7").Equal(stockOf(t, st, testFarmID, nil)))

	origin, _ := domfinance.NewOriginRef(domfinance.OriginInventory, mov.ID)
	exp, err := apptest.NewExpenseRepo(st).GetByOrigin(origin)
	require.NoError(t, err)
	assert.Nil(t, exp, "sin categoría no hay asiento, pero tampoco rollback")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes y traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterAdjustment_CeroEsInvalido(t *testing.T) {
	uc, _ := newEngine(t)

	_, err := uc.RegisterAdjustment(context.Background(), testFarmID, testUserID, dto.RegisterAdjustmentRequest{
		SupplyItemID:   testItemID,
		SignedQuantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterAdjustment_PositivoYNegativo(t *testing.T) {
	uc, st := newEngine(t)

	up, err := uc.RegisterAdjustment(context.Background(), testFarmID, testUserID, dto.RegisterAdjustmentRequest{
		SupplyItemID:   testItemID,
		SignedQuantity: dec("8"),
		Note:           "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementKindAdjustmentIn, up.Kind)

	down, err := uc.RegisterAdjustment(context.Background(), testFarmID, testUserID, dto.RegisterAdjustmentRequest{
		SupplyItemID:   testItemID,
		SignedQuantity: dec("-3"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementKindAdjustmentOut, down.Kind)
	assert.True(t, dec("-3").Equal(down.Quantity))
	assert.True(t, dec("5").Equal(stockOf(t, st, testFarmID, nil)))
}

func TestRegisterAdjustment_NegativoRevalidaStock(t *testing.T) {
	uc, _ := newEngine(t)
	mustEntry(t, uc, "4", "100")

	_, err := uc.RegisterAdjustment(context.Background(), testFarmID, testUserID, dto.RegisterAdjustmentRequest{
		SupplyItemID:   testItemID,
		SignedQuantity: dec("-10"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestTransfer_MueveStockEntreFincas(t *testing.T) {
	uc, st := newEngine(t)
	mustEntry(t, uc, "10", "100")

	err := uc.Transfer(context.Background(), testFarmID, testUserID, dto.TransferRequest{
		SupplyItemID: testItemID,
		FarmTo:       otherFarmID,
		Quantity:     dec("4"),
	})
	require.NoError(t, err)

	assert.True(t, dec("6").Equal(stockOf(t, st, testFarmID, nil)))
	assert.True(t, dec("4").Equal(stockOf(t, st, otherFarmID, nil)))
}

func TestTransfer_MismaFincaEsInvalido(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.Transfer(context.Background(), testFarmID, testUserID, dto.TransferRequest{
		SupplyItemID: testItemID,
		FarmTo:       testFarmID,
		Quantity:     dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_FincaDestinoInexistenteEsNotFound(t *testing.T) {
	uc, st := newEngine(t)
	mustEntry(t, uc, "10", "100")

	err := uc.Transfer(context.Background(), testFarmID, testUserID, dto.TransferRequest{
		SupplyItemID: testItemID,
		FarmTo:       "farm-0000-0000-0000-000000000099",
		Quantity:     dec("4"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, dec("10").Equal(stockOf(t, st, testFarmID, nil)), "la pierna de salida no debe existir")
}

func TestTransfer_SinStockNoEscribeNinguna(t *testing.T) {
	uc, st := newEngine(t)
	mustEntry(t, uc, "3", "100")

	err := uc.Transfer(context.Background(), testFarmID, testUserID, dto.TransferRequest{
		SupplyItemID: testItemID,
		FarmTo:       otherFarmID,
		Quantity:     dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, stockOf(t, st, otherFarmID, nil).IsZero(), "la pierna de entrada no debe existir")
	assert.True(t, dec("3").Equal(stockOf(t, st, testFarmID, nil)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock derivado y alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStockByItem_InsumoSinMovimientosNoAparece(t *testing.T) {
	uc, _ := newEngine(t)

	stocks, err := uc.GetStockByItem(context.Background(), testFarmID, nil)
	require.NoError(t, err)
	_, ok := stocks[testItemID]
	assert.False(t, ok, "ausencia de llave = stock cero")
}

func TestLowStock_SugierePedidoPorFaltante(t *testing.T) {
	uc, _ := newEngine(t)
	// Mínimo 20, stock 8 ⇒ faltante; sugerido = 20×1.5 − 8 = 22
	mustEntry(t, uc, "8", "100")

	alerts, err := uc.LowStock(context.Background(), testFarmID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, testItemID, alerts[0].SupplyItemID)
	assert.True(t, dec("8").Equal(alerts[0].Stock))
	assert.True(t, dec("22").Equal(alerts[0].SuggestedQty))
}

func TestLowStock_StockSobreElMinimoNoAlerta(t *testing.T) {
	uc, _ := newEngine(t)
	mustEntry(t, uc, "25", "100")

	alerts, err := uc.LowStock(context.Background(), testFarmID)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

// ListMovements exige que el insumo pertenezca a la finca del caller.
func TestListMovements_FiltraPorTenant(t *testing.T) {
	uc, _ := newEngine(t)
	mustEntry(t, uc, "10", "100")

	movs, err := uc.ListMovements(context.Background(), testFarmID, testItemID, nil, nil, 50, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)

	_, err = uc.ListMovements(context.Background(), otherFarmID, testItemID, nil, nil, 50, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El rango de fechas del listado es inclusivo por ambos extremos.
func TestListMovements_RangoDeFechas(t *testing.T) {
	uc, _ := newEngine(t)
	old := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	_, err := uc.RegisterEntry(context.Background(), testFarmID, testUserID, dto.RegisterEntryRequest{
		SupplyItemID: testItemID,
		Quantity:     dec("5"),
		Date:         &old,
	})
	require.NoError(t, err)
	mustEntry(t, uc, "3", "100") // fecha = ahora

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	movs, err := uc.ListMovements(context.Background(), testFarmID, testItemID, &from, &to, 50, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Date.Equal(old))
}
