package livestock_test

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
	appinventory "github.com/jhoicas/AgroGestion-api/internal/application/inventory"
	"github.com/jhoicas/AgroGestion-api/internal/application/livestock"
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
	testTypeID  = "ttype-0000-0000-0000-000000000001"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newLivestock arma el orquestador de eventos de ganado con los casos de uso
// financiero e inventario reales detrás de sus puertos, todo sobre el mismo
// Store en memoria.
func newLivestock(t *testing.T) (*livestock.UseCase, *apptest.Store) {
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
	st.TreatmentTypes[testTypeID] = entity.TreatmentType{ID: testTypeID, Name: "Vacunación"}
	st.Items[testItemID] = entity.SupplyItem{
		ID:     testItemID,
		FarmID: testFarmID,
		Name:   "Ivermectina",
		Active: true,
	}

	financeUC := appfinance.NewUseCase(
		apptest.NewCatalogRepo(st),
		apptest.NewStockMovementRepo(st),
		apptest.NewExpenseRepo(st),
		apptest.NewIncomeRepo(st),
		logger.Nop(),
	)
	inventoryUC := appinventory.NewUseCase(
		apptest.NewTxRunner(st),
		apptest.NewSupplyItemRepo(st),
		apptest.NewStockMovementRepo(st),
		apptest.NewBatchRepo(st),
		apptest.NewFarmRepo(st),
		financeUC,
	)
	uc := livestock.NewUseCase(
		apptest.NewTxRunner(st),
		apptest.NewAnimalRepo(st),
		apptest.NewMortalityRepo(st),
		apptest.NewTreatmentRepo(st),
		apptest.NewWeighingRepo(st),
		apptest.NewSupplyItemRepo(st),
		apptest.NewPastureRepo(st),
		apptest.NewCatalogRepo(st),
		financeUC,
		inventoryUC,
		logger.Nop(),
	)
	return uc, st
}

// mustAnimal da de alta un animal activo sin costo de compra.
func mustAnimal(t *testing.T, uc *livestock.UseCase, tag string) *entity.Animal {
	t.Helper()
	a, err := uc.CreateAnimal(context.Background(), testFarmID, testUserID, dto.CreateAnimalRequest{
		Tag: tag,
		Sex: entity.AnimalSexFemale,
	})
	require.NoError(t, err)
	return a
}

// seedStock inserta stock inicial del insumo de sanidad directamente en el libro.
func seedStock(st *apptest.Store, qty string) {
	cost := dec("1500")
	st.Movements["seed-mov"] = entity.StockMovement{
		ID:           "seed-mov",
		FarmID:       testFarmID,
		SupplyItemID: testItemID,
		Kind:         entity.MovementKindPurchase,
		Quantity:     dec(qty),
		UnitCost:     &cost,
		Date:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func expenseByOrigin(t *testing.T, st *apptest.Store, module domfinance.OriginModule, ref string) *entity.Expense {
	t.Helper()
	origin, err := domfinance.NewOriginRef(module, ref)
	require.NoError(t, err)
	exp, err := apptest.NewExpenseRepo(st).GetByOrigin(origin)
	require.NoError(t, err)
	return exp
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta y venta de animales
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateAnimal_ConPesoYCostoDeCompra(t *testing.T) {
	uc, st := newLivestock(t)
	peso, costo := dec("32"), dec("1800000")

	a, err := uc.CreateAnimal(context.Background(), testFarmID, testUserID, dto.CreateAnimalRequest{
		Tag:          "A-001",
		Sex:          entity.AnimalSexMale,
		BirthWeight:  &peso,
		PurchaseCost: &costo,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AnimalStateActive, a.State)

	weighings, err := uc.ListWeighings(context.Background(), testFarmID, a.ID)
	require.NoError(t, err)
	require.Len(t, weighings, 1, "el peso de nacimiento genera el pesaje inicial")
	assert.True(t, peso.Equal(weighings[0].WeightKg))

	exp := expenseByOrigin(t, st, domfinance.OriginAnimal, a.ID)
	require.NotNil(t, exp, "el costo de compra genera el gasto etiquetado")
	assert.True(t, costo.Equal(exp.Amount))
}

func TestCreateAnimal_CaravanaDuplicadaFalla(t *testing.T) {
	uc, _ := newLivestock(t)
	mustAnimal(t, uc, "A-001")

	_, err := uc.CreateAnimal(context.Background(), testFarmID, testUserID, dto.CreateAnimalRequest{
		Tag: "A-001",
		Sex: entity.AnimalSexMale,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Un fallo al consultar la caravana se propaga: no debe tratarse como
// "sin duplicado" y seguir con el alta.
func TestCreateAnimal_FalloDeConsultaDeCaravanaSePropaga(t *testing.T) {
	uc, st := newLivestock(t)
	lookupErr := errors.New("conexión perdida")
	st.AnimalFindErr = lookupErr

	_, err := uc.CreateAnimal(context.Background(), testFarmID, testUserID, dto.CreateAnimalRequest{
		Tag: "A-002",
		Sex: entity.AnimalSexMale,
	})
	assert.ErrorIs(t, err, lookupErr)
	assert.Empty(t, st.Animals)
}

func TestCreateAnimal_SexoInvalidoFalla(t *testing.T) {
	uc, _ := newLivestock(t)

	_, err := uc.CreateAnimal(context.Background(), testFarmID, testUserID, dto.CreateAnimalRequest{
		Tag: "A-002",
		Sex: "X",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Si el gasto de compra falla, el animal y su pesaje no deben existir.
func TestCreateAnimal_FalloDelGastoRevierteTodo(t *testing.T) {
	uc, st := newLivestock(t)
	st.ExpenseCreateErr = errors.New("deadlock simulado")
	costo := dec("1000000")

	_, err := uc.CreateAnimal(context.Background(), testFarmID, testUserID, dto.CreateAnimalRequest{
		Tag:          "A-003",
		Sex:          entity.AnimalSexFemale,
		PurchaseCost: &costo,
	})
	require.Error(t, err)
	assert.Empty(t, st.Animals)
	assert.Empty(t, st.Weighings)
}

func TestSellAnimal_CambiaEstadoYRegistraIngreso(t *testing.T) {
	uc, st := newLivestock(t)
	a := mustAnimal(t, uc, "A-010")

	sold, err := uc.SellAnimal(context.Background(), testFarmID, testUserID, a.ID, dto.SellAnimalRequest{
		Price: dec("2500000"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AnimalStateSold, sold.State)
	require.NotNil(t, sold.SalePrice)
	assert.True(t, dec("2500000").Equal(*sold.SalePrice))

	origin, err := domfinance.NewOriginRef(domfinance.OriginAnimal, a.ID)
	require.NoError(t, err)
	inc, err := apptest.NewIncomeRepo(st).GetByOrigin(origin)
	require.NoError(t, err)
	require.NotNil(t, inc, "la venta genera el ingreso etiquetado")
	assert.True(t, dec("2500000").Equal(inc.Amount))
}

func TestSellAnimal_NoActivoEsEstadoInvalido(t *testing.T) {
	uc, st := newLivestock(t)
	a := mustAnimal(t, uc, "A-011")
	_, err := uc.SellAnimal(context.Background(), testFarmID, testUserID, a.ID, dto.SellAnimalRequest{
		Price: dec("100"),
	})
	require.NoError(t, err)

	// Segunda venta del mismo animal: ya está SOLD.
	_, err = uc.SellAnimal(context.Background(), testFarmID, testUserID, a.ID, dto.SellAnimalRequest{
		Price: dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Len(t, st.Incomes, 1, "no debe duplicarse el ingreso")
}

// Si el ingreso falla, el animal debe seguir ACTIVE.
func TestSellAnimal_FalloDelIngresoRevierteElEstado(t *testing.T) {
	uc, st := newLivestock(t)
	a := mustAnimal(t, uc, "A-012")
	st.IncomeCreateErr = errors.New("deadlock simulado")

	_, err := uc.SellAnimal(context.Background(), testFarmID, testUserID, a.ID, dto.SellAnimalRequest{
		Price: dec("900000"),
	})
	require.Error(t, err)
	assert.Equal(t, entity.AnimalStateActive, st.Animals[a.ID].State)
}

func TestDeleteAnimal_RevierteGastoYPesajes(t *testing.T) {
	uc, st := newLivestock(t)
	peso, costo := dec("30"), dec("500000")
	a, err := uc.CreateAnimal(context.Background(), testFarmID, testUserID, dto.CreateAnimalRequest{
		Tag:          "A-020",
		Sex:          entity.AnimalSexMale,
		BirthWeight:  &peso,
		PurchaseCost: &costo,
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteAnimal(context.Background(), testFarmID, a.ID))
	assert.Empty(t, st.Animals)
	assert.Empty(t, st.Weighings)
	assert.Empty(t, st.Expenses, "el gasto de compra debe revertirse con el animal")
}

func TestDeleteAnimal_VendidoNoSePuedeEliminar(t *testing.T) {
	uc, _ := newLivestock(t)
	a := mustAnimal(t, uc, "A-021")
	_, err := uc.SellAnimal(context.Background(), testFarmID, testUserID, a.ID, dto.SellAnimalRequest{
		Price: dec("100"),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.DeleteAnimal(context.Background(), testFarmID, a.ID), domain.ErrInvalidState)
}

func TestAssignLot_PotreroDeOtraFincaEsNotFound(t *testing.T) {
	uc, st := newLivestock(t)
	a := mustAnimal(t, uc, "A-030")
	st.Pastures["p1"] = entity.Pasture{ID: "p1", FarmID: otherFarmID, Name: "La Loma", Active: true}

	lot := "p1"
	_, err := uc.AssignLot(context.Background(), testFarmID, a.ID, &lot)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignLot_AsignaYQuita(t *testing.T) {
	uc, st := newLivestock(t)
	a := mustAnimal(t, uc, "A-031")
	st.Pastures["p2"] = entity.Pasture{ID: "p2", FarmID: testFarmID, Name: "El Plan", Active: true}

	lot := "p2"
	updated, err := uc.AssignLot(context.Background(), testFarmID, a.ID, &lot)
	require.NoError(t, err)
	require.NotNil(t, updated.LotID)
	assert.Equal(t, "p2", *updated.LotID)

	updated, err = uc.AssignLot(context.Background(), testFarmID, a.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.LotID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mortalidad
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMortality_MarcaDeadYRegistraPerdida(t *testing.T) {
	uc, st := newLivestock(t)
	costo := dec("700000")
	a, err := uc.CreateAnimal(context.Background(), testFarmID, testUserID, dto.CreateAnimalRequest{
		Tag:          "A-040",
		Sex:          entity.AnimalSexFemale,
		PurchaseCost: &costo,
	})
	require.NoError(t, err)

	m, err := uc.RegisterMortality(context.Background(), testFarmID, testUserID, dto.RegisterMortalityRequest{
		AnimalID: a.ID,
		Cause:    "Timpanismo",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AnimalStateDead, st.Animals[a.ID].State)

	exp := expenseByOrigin(t, st, domfinance.OriginMortality, m.ID)
	require.NotNil(t, exp, "la baja de un animal con costo registra la pérdida")
	assert.True(t, costo.Equal(exp.Amount))
}

func TestRegisterMortality_SinCostoNoRegistraPerdida(t *testing.T) {
	uc, st := newLivestock(t)
	a := mustAnimal(t, uc, "A-041")

	m, err := uc.RegisterMortality(context.Background(), testFarmID, testUserID, dto.RegisterMortalityRequest{
		AnimalID: a.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, expenseByOrigin(t, st, domfinance.OriginMortality, m.ID))
}

func TestRegisterMortality_AnimalNoActivoFalla(t *testing.T) {
	uc, _ := newLivestock(t)
	a := mustAnimal(t, uc, "A-042")
	_, err := uc.RegisterMortality(context.Background(), testFarmID, testUserID, dto.RegisterMortalityRequest{
		AnimalID: a.ID,
	})
	require.NoError(t, err)

	// Segunda baja del mismo animal: ya está DEAD.
	_, err = uc.RegisterMortality(context.Background(), testFarmID, testUserID, dto.RegisterMortalityRequest{
		AnimalID: a.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Deshacer la baja revierte el animal a ACTIVE, elimina la pérdida y borra el
// registro, simétricamente a su creación.
func TestDeleteMortality_ReversionSimetrica(t *testing.T) {
	uc, st := newLivestock(t)
	costo := dec("400000")
	a, err := uc.CreateAnimal(context.Background(), testFarmID, testUserID, dto.CreateAnimalRequest{
		Tag:          "A-043",
		Sex:          entity.AnimalSexMale,
		PurchaseCost: &costo,
	})
	require.NoError(t, err)
	m, err := uc.RegisterMortality(context.Background(), testFarmID, testUserID, dto.RegisterMortalityRequest{
		AnimalID: a.ID,
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteMortality(context.Background(), testFarmID, m.ID))

	assert.Equal(t, entity.AnimalStateActive, st.Animals[a.ID].State)
	assert.Empty(t, st.Mortalities)
	assert.Nil(t, expenseByOrigin(t, st, domfinance.OriginMortality, m.ID), "la pérdida debe eliminarse")
	assert.NotNil(t, expenseByOrigin(t, st, domfinance.OriginAnimal, a.ID), "el gasto de compra no se toca")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tratamientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterTreatment_ConsumeStockYRegistraGasto(t *testing.T) {
	uc, st := newLivestock(t)
	a := mustAnimal(t, uc, "A-050")
	seedStock(st, "10")
	qty := dec("2")

	tr, err := uc.RegisterTreatment(context.Background(), testFarmID, testUserID, dto.RegisterTreatmentRequest{
		AnimalID:        &a.ID,
		TreatmentTypeID: testTypeID,
		SupplyItemID:    strPtr(testItemID),
		Quantity:        &qty,
		Cost:            dec("45000"),
	})
	require.NoError(t, err)

	stock, err := apptest.NewStockMovementRepo(st).SumForItem(testFarmID, testItemID, nil)
	require.NoError(t, err)
	assert.True(t, dec("8").Equal(stock), "el tratamiento consume el insumo")

	exp := expenseByOrigin(t, st, domfinance.OriginTreatment, tr.ID)
	require.NotNil(t, exp)
	assert.True(t, dec("45000").Equal(exp.Amount))
	assert.Contains(t, exp.Description, "Vacunación")
}

// Stock insuficiente aborta el tratamiento completo: ni registro, ni
// movimiento, ni gasto.
func TestRegisterTreatment_SinStockNoDejaRastro(t *testing.T) {
	uc, st := newLivestock(t)
	a := mustAnimal(t, uc, "A-051")
	seedStock(st, "1")
	qty := dec("5")

	_, err := uc.RegisterTreatment(context.Background(), testFarmID, testUserID, dto.RegisterTreatmentRequest{
		AnimalID:        &a.ID,
		TreatmentTypeID: testTypeID,
		SupplyItemID:    strPtr(testItemID),
		Quantity:        &qty,
		Cost:            dec("45000"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, st.Treatments)
	assert.Empty(t, st.Expenses)
	assert.Len(t, st.Movements, 1, "solo la compra sembrada")
}

func TestRegisterTreatment_CostoCeroSinGasto(t *testing.T) {
	uc, st := newLivestock(t)
	a := mustAnimal(t, uc, "A-052")

	tr, err := uc.RegisterTreatment(context.Background(), testFarmID, testUserID, dto.RegisterTreatmentRequest{
		AnimalID:        &a.ID,
		TreatmentTypeID: testTypeID,
		Cost:            decimal.Zero,
	})
	require.NoError(t, err)
	assert.Nil(t, expenseByOrigin(t, st, domfinance.OriginTreatment, tr.ID))
}

func TestRegisterTreatment_TipoDesconocidoEsNotFound(t *testing.T) {
	uc, _ := newLivestock(t)

	_, err := uc.RegisterTreatment(context.Background(), testFarmID, testUserID, dto.RegisterTreatmentRequest{
		TreatmentTypeID: "ttype-inexistente",
		Cost:            dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Tratamiento colectivo: sin animal también es válido.
func TestRegisterTreatment_ColectivoSinAnimal(t *testing.T) {
	uc, st := newLivestock(t)

	tr, err := uc.RegisterTreatment(context.Background(), testFarmID, testUserID, dto.RegisterTreatmentRequest{
		TreatmentTypeID: testTypeID,
		Cost:            dec("120000"),
		Note:            "Baño del lote completo",
	})
	require.NoError(t, err)
	assert.Nil(t, tr.AnimalID)
	assert.NotNil(t, expenseByOrigin(t, st, domfinance.OriginTreatment, tr.ID))
}

func TestDeleteTreatment_CompensaConsumoYGasto(t *testing.T) {
	uc, st := newLivestock(t)
	a := mustAnimal(t, uc, "A-053")
	seedStock(st, "10")
	qty := dec("3")

	tr, err := uc.RegisterTreatment(context.Background(), testFarmID, testUserID, dto.RegisterTreatmentRequest{
		AnimalID:        &a.ID,
		TreatmentTypeID: testTypeID,
		SupplyItemID:    strPtr(testItemID),
		Quantity:        &qty,
		Cost:            dec("30000"),
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteTreatment(context.Background(), testFarmID, testUserID, tr.ID))

	assert.Empty(t, st.Treatments)
	assert.Nil(t, expenseByOrigin(t, st, domfinance.OriginTreatment, tr.ID))

	stock, err := apptest.NewStockMovementRepo(st).SumForItem(testFarmID, testItemID, nil)
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(stock), "el ajuste de compensación restaura el stock")
}

// El ajuste de compensación queda firmado por quien deshace el tratamiento,
// no por un autor vacío (created_by es NOT NULL en el esquema).
func TestDeleteTreatment_AjusteFirmadoPorElUsuario(t *testing.T) {
	uc, st := newLivestock(t)
	a := mustAnimal(t, uc, "A-054")
	seedStock(st, "10")
	qty := dec("2")

	tr, err := uc.RegisterTreatment(context.Background(), testFarmID, testUserID, dto.RegisterTreatmentRequest{
		AnimalID:        &a.ID,
		TreatmentTypeID: testTypeID,
		SupplyItemID:    strPtr(testItemID),
		Quantity:        &qty,
		Cost:            dec("10000"),
	})
	require.NoError(t, err)

	deleter := "user-0000-0000-0000-000000000002"
	require.NoError(t, uc.DeleteTreatment(context.Background(), testFarmID, deleter, tr.ID))

	var adjustment *entity.StockMovement
	for _, m := range st.Movements {
		if m.Kind == entity.MovementKindAdjustmentIn {
			m := m
			adjustment = &m
		}
	}
	require.NotNil(t, adjustment, "debe existir el ajuste de compensación")
	assert.Equal(t, deleter, adjustment.CreatedBy)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pesajes
// ──────────────────────────────────────────────────────────────────────────────

func TestAddWeighing_Valida(t *testing.T) {
	uc, _ := newLivestock(t)
	a := mustAnimal(t, uc, "A-060")

	w, err := uc.AddWeighing(context.Background(), testFarmID, dto.AddWeighingRequest{
		AnimalID: a.ID,
		WeightKg: dec("280"),
	})
	require.NoError(t, err)
	assert.True(t, dec("280").Equal(w.WeightKg))

	_, err = uc.AddWeighing(context.Background(), testFarmID, dto.AddWeighingRequest{
		AnimalID: a.ID,
		WeightKg: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddWeighing_AnimalDeOtraFincaEsNotFound(t *testing.T) {
	uc, _ := newLivestock(t)
	a := mustAnimal(t, uc, "A-061")

	_, err := uc.AddWeighing(context.Background(), otherFarmID, dto.AddWeighingRequest{
		AnimalID: a.ID,
		WeightKg: dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteWeighing(t *testing.T) {
	uc, st := newLivestock(t)
	a := mustAnimal(t, uc, "A-062")
	w, err := uc.AddWeighing(context.Background(), testFarmID, dto.AddWeighingRequest{
		AnimalID: a.ID,
		WeightKg: dec("150"),
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteWeighing(context.Background(), testFarmID, w.ID))
	assert.Empty(t, st.Weighings)

	assert.ErrorIs(t, uc.DeleteWeighing(context.Background(), testFarmID, w.ID), domain.ErrNotFound)
}

func strPtr(s string) *string { return &s }
