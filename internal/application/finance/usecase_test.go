package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AgroGestion-api/internal/application/apptest"
	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	appfinance "github.com/jhoicas/AgroGestion-api/internal/application/finance"
	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	domfinance "github.com/jhoicas/AgroGestion-api/internal/domain/finance"
	"github.com/jhoicas/AgroGestion-api/pkg/logger"
)

const (
	testFarmID  = "farm-0000-0000-0000-000000000001"
	otherFarmID = "farm-0000-0000-0000-000000000002"
	testUserID  = "user-0000-0000-0000-000000000001"
	testItemID  = "item-0000-0000-0000-000000000001"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newFinance(t *testing.T) (*appfinance.UseCase, *apptest.Store) {
	t.Helper()
	st := apptest.NewStore()
	st.SeedCategories(
		[2]string{entity.CategoryLedgerExpense, appfinance.CategorySupplyPurchase},
		[2]string{entity.CategoryLedgerExpense, appfinance.CategoryFeeding},
		[2]string{entity.CategoryLedgerExpense, appfinance.CategoryHealth},
		[2]string{entity.CategoryLedgerExpense, appfinance.CategoryAnimalPurchase},
		[2]string{entity.CategoryLedgerExpense, appfinance.CategoryMortalityLoss},
		[2]string{entity.CategoryLedgerIncome, appfinance.CategoryAnimalSale},
	)
	uc := appfinance.NewUseCase(
		apptest.NewCatalogRepo(st),
		apptest.NewStockMovementRepo(st),
		apptest.NewExpenseRepo(st),
		apptest.NewIncomeRepo(st),
		logger.Nop(),
	)
	return uc, st
}

func testItem() *entity.SupplyItem {
	return &entity.SupplyItem{ID: testItemID, FarmID: testFarmID, Name: "Melaza"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Asientos automáticos: etiquetado 1:1 y reversión
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterExpensePurchase_EtiquetaUnicaPorMovimiento(t *testing.T) {
	uc, st := newFinance(t)
	expRepo := apptest.NewExpenseRepo(st)

	exp, err := uc.RegisterExpensePurchaseInTx(
		expRepo, testFarmID, testItem(), dec("10"), dec("2000"), time.Now(), "mov-1", testUserID,
	)
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.True(t, exp.Automatic)
	require.NotNil(t, exp.Origin)
	assert.Equal(t, domfinance.OriginInventory, exp.Origin.Module)
	assert.Equal(t, "mov-1", exp.Origin.ReferenceID)

	// Un segundo asiento para el mismo movimiento viola la unicidad
	// (módulo, referencia) del libro.
	_, err = uc.RegisterExpensePurchaseInTx(
		expRepo, testFarmID, testItem(), dec("10"), dec("2000"), time.Now(), "mov-1", testUserID,
	)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestReverseExpenseByOrigin_EliminaYEsIdempotente(t *testing.T) {
	uc, st := newFinance(t)
	expRepo := apptest.NewExpenseRepo(st)

	_, err := uc.RegisterExpensePurchaseInTx(
		expRepo, testFarmID, testItem(), dec("4"), dec("500"), time.Now(), "mov-9", testUserID,
	)
	require.NoError(t, err)

	origin, err := domfinance.NewOriginRef(domfinance.OriginInventory, "mov-9")
	require.NoError(t, err)

	require.NoError(t, uc.ReverseExpenseByOriginInTx(expRepo, origin))
	assert.Empty(t, st.Expenses)

	// Segunda reversión: no hay asiento que borrar y aun así no es error.
	assert.NoError(t, uc.ReverseExpenseByOriginInTx(expRepo, origin))
}

func TestRegisterIncomeSale_YReversion(t *testing.T) {
	uc, st := newFinance(t)
	incRepo := apptest.NewIncomeRepo(st)
	animal := &entity.Animal{ID: "animal-1", FarmID: testFarmID, Tag: "A-001"}
	peso := dec("430")

	inc, err := uc.RegisterIncomeAnimalSaleInTx(
		incRepo, testFarmID, animal, dec("2500000"), time.Now(), &peso, testUserID,
	)
	require.NoError(t, err)
	require.NotNil(t, inc)
	assert.True(t, inc.Automatic)
	assert.Contains(t, inc.Description, "430", "el peso de venta queda en la descripción")

	origin, err := domfinance.NewOriginRef(domfinance.OriginAnimal, animal.ID)
	require.NoError(t, err)
	require.NoError(t, uc.ReverseIncomeByOriginInTx(incRepo, origin))
	assert.Empty(t, st.Incomes)
}

// Categoría semilla ausente: (nil, nil) y el libro queda intacto.
func TestRegisterExpense_CategoriaAusenteDevuelveNil(t *testing.T) {
	uc, st := newFinance(t)
	st.Categories = nil
	expRepo := apptest.NewExpenseRepo(st)

	exp, err := uc.RegisterExpensePurchaseInTx(
		expRepo, testFarmID, testItem(), dec("1"), dec("100"), time.Now(), "mov-2", testUserID,
	)
	require.NoError(t, err)
	assert.Nil(t, exp)
	assert.Empty(t, st.Expenses)
}

// Consumo de un insumo que solo tiene entradas sin costo: el promedio es cero
// y un monto cero no cabe en el libro de gastos, así que el asiento se omite
// sin abortar la transacción del caller.
func TestRegisterExpenseConsumption_PromedioCeroOmiteElAsiento(t *testing.T) {
	uc, st := newFinance(t)
	st.Movements["m1"] = entity.StockMovement{
		ID: "m1", FarmID: testFarmID, SupplyItemID: testItemID,
		Kind: entity.MovementKindPurchase, Quantity: dec("10"),
		Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	expRepo := apptest.NewExpenseRepo(st)

	exp, err := uc.RegisterExpenseConsumptionInTx(
		context.Background(), expRepo, testFarmID, testItem(), dec("4"), time.Now(), "mov-3", testUserID, "",
	)
	require.NoError(t, err)
	assert.Nil(t, exp)
	assert.Empty(t, st.Expenses)
}

func TestComputeAverageCost_DesdeElLibro(t *testing.T) {
	uc, st := newFinance(t)
	cost1, cost2 := dec("2000"), dec("2400")
	st.Movements["m1"] = entity.StockMovement{
		ID: "m1", FarmID: testFarmID, SupplyItemID: testItemID,
		Kind: entity.MovementKindPurchase, Quantity: dec("10"), UnitCost: &cost1,
		Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	st.Movements["m2"] = entity.StockMovement{
		ID: "m2", FarmID: testFarmID, SupplyItemID: testItemID,
		Kind: entity.MovementKindPurchase, Quantity: dec("30"), UnitCost: &cost2,
		Date: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
	}

	avg, err := uc.ComputeAverageCost(context.Background(), testItemID)
	require.NoError(t, err)
	assert.True(t, dec("2300").Equal(avg), "esperado 2300, obtenido %s", avg)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asientos manuales: CRUD y protección de los automáticos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateExpense_Manual(t *testing.T) {
	uc, st := newFinance(t)

	exp, err := uc.CreateExpense(context.Background(), testFarmID, testUserID, dto.CreateExpenseRequest{
		CategoryID:  "cat-manual",
		Amount:      dec("50000"),
		Description: "Arreglo de cerca",
	})
	require.NoError(t, err)
	assert.False(t, exp.Automatic)
	assert.Nil(t, exp.Origin)
	assert.Len(t, st.Expenses, 1)
}

func TestCreateExpense_MontoNoPositivoFalla(t *testing.T) {
	uc, _ := newFinance(t)

	_, err := uc.CreateExpense(context.Background(), testFarmID, testUserID, dto.CreateExpenseRequest{
		CategoryID: "cat-manual",
		Amount:     decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Los asientos automáticos no se editan ni se borran por la vía manual: su
// ciclo de vida pertenece al evento de dominio que los creó.
func TestUpdateExpense_AutomaticoEsConflicto(t *testing.T) {
	uc, st := newFinance(t)
	exp, err := uc.RegisterExpensePurchaseInTx(
		apptest.NewExpenseRepo(st), testFarmID, testItem(), dec("2"), dec("100"), time.Now(), "mov-3", testUserID,
	)
	require.NoError(t, err)

	_, err = uc.UpdateExpense(context.Background(), testFarmID, exp.ID, dto.UpdateExpenseRequest{
		Amount: dec("999"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = uc.DeleteExpense(context.Background(), testFarmID, exp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, st.Expenses, 1, "el asiento automático debe seguir intacto")
}

func TestUpdateExpense_DeOtraFincaEsNotFound(t *testing.T) {
	uc, _ := newFinance(t)
	exp, err := uc.CreateExpense(context.Background(), testFarmID, testUserID, dto.CreateExpenseRequest{
		CategoryID: "cat-manual",
		Amount:     dec("100"),
	})
	require.NoError(t, err)

	_, err = uc.UpdateExpense(context.Background(), otherFarmID, exp.ID, dto.UpdateExpenseRequest{
		Amount: dec("200"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteIncome_ManualYAutomatico(t *testing.T) {
	uc, st := newFinance(t)

	manual, err := uc.CreateIncome(context.Background(), testFarmID, testUserID, dto.CreateIncomeRequest{
		CategoryID:  "cat-venta-leche",
		Amount:      dec("120000"),
		Description: "Venta de leche semana 12",
	})
	require.NoError(t, err)

	animal := &entity.Animal{ID: "animal-2", FarmID: testFarmID, Tag: "A-002"}
	auto, err := uc.RegisterIncomeAnimalSaleInTx(
		apptest.NewIncomeRepo(st), testFarmID, animal, dec("1000000"), time.Now(), nil, testUserID,
	)
	require.NoError(t, err)

	require.NoError(t, uc.DeleteIncome(context.Background(), testFarmID, manual.ID))
	assert.ErrorIs(t, uc.DeleteIncome(context.Background(), testFarmID, auto.ID), domain.ErrConflict)
}

func TestListExpenses_FiltraPorFincaYRango(t *testing.T) {
	uc, _ := newFinance(t)
	enero := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	marzo := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, c := range []struct {
		farm string
		date time.Time
	}{
		{testFarmID, enero},
		{testFarmID, marzo},
		{otherFarmID, enero},
	} {
		d := c.date
		_, err := uc.CreateExpense(context.Background(), c.farm, testUserID, dto.CreateExpenseRequest{
			CategoryID: "cat-manual",
			Amount:     dec("100"),
			Date:       &d,
		})
		require.NoError(t, err)
	}

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	out, err := uc.ListExpenses(context.Background(), testFarmID, &from, &to, 50, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Date.Equal(enero))
}
