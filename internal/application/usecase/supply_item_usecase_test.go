package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AgroGestion-api/internal/application/apptest"
	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/application/usecase"
	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

const (
	testFarmID  = "farm-0000-0000-0000-000000000001"
	otherFarmID = "farm-0000-0000-0000-000000000002"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newSupplyItems(t *testing.T) (*usecase.SupplyItemUseCase, *apptest.Store) {
	t.Helper()
	st := apptest.NewStore()
	uc := usecase.NewSupplyItemUseCase(
		apptest.NewSupplyItemRepo(st),
		apptest.NewBatchRepo(st),
		apptest.NewStockMovementRepo(st),
	)
	return uc, st
}

func validItem(name string) dto.CreateSupplyItemRequest {
	return dto.CreateSupplyItemRequest{
		CategoryID:   "scat-1",
		Name:         name,
		UnitID:       "unit-kg",
		MinimumStock: dec("10"),
	}
}

func TestSupplyItemCreate_NombreUnicoPorFinca(t *testing.T) {
	uc, _ := newSupplyItems(t)

	item, err := uc.Create(testFarmID, validItem("Sal mineralizada"))
	require.NoError(t, err)
	assert.True(t, item.Active, "el insumo nace activo")

	_, err = uc.Create(testFarmID, validItem("Sal mineralizada"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo nombre en otra finca sí es válido.
	_, err = uc.Create(otherFarmID, validItem("Sal mineralizada"))
	assert.NoError(t, err)
}

func TestSupplyItemCreate_CamposObligatorios(t *testing.T) {
	uc, _ := newSupplyItems(t)

	in := validItem("")
	_, err := uc.Create(testFarmID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validItem("Abono")
	in.MinimumStock = dec("-1")
	_, err = uc.Create(testFarmID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// GetByID incluye el stock derivado del libro de movimientos.
func TestSupplyItemGetByID_IncluyeStockDerivado(t *testing.T) {
	uc, st := newSupplyItems(t)
	item, err := uc.Create(testFarmID, validItem("Melaza"))
	require.NoError(t, err)

	st.Movements["m1"] = entity.StockMovement{
		ID: "m1", FarmID: testFarmID, SupplyItemID: item.ID,
		Kind: entity.MovementKindPurchase, Quantity: dec("40"),
		Date: time.Now(),
	}
	st.Movements["m2"] = entity.StockMovement{
		ID: "m2", FarmID: testFarmID, SupplyItemID: item.ID,
		Kind: entity.MovementKindConsumption, Quantity: dec("-15"),
		Date: time.Now(),
	}

	got, err := uc.GetByID(testFarmID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Stock)
	assert.True(t, dec("25").Equal(*got.Stock))
}

func TestSupplyItemGetByID_OtraFincaEsNotFound(t *testing.T) {
	uc, _ := newSupplyItems(t)
	item, err := uc.Create(testFarmID, validItem("Urea"))
	require.NoError(t, err)

	_, err = uc.GetByID(otherFarmID, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplyItemUpdate_RenombreDuplicadoFalla(t *testing.T) {
	uc, _ := newSupplyItems(t)
	_, err := uc.Create(testFarmID, validItem("Alimento A"))
	require.NoError(t, err)
	b, err := uc.Create(testFarmID, validItem("Alimento B"))
	require.NoError(t, err)

	_, err = uc.Update(testFarmID, b.ID, dto.UpdateSupplyItemRequest{
		Name:         "Alimento A",
		MinimumStock: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSupplyItemUpdate_Desactivar(t *testing.T) {
	uc, _ := newSupplyItems(t)
	item, err := uc.Create(testFarmID, validItem("Garrapaticida"))
	require.NoError(t, err)

	inactive := false
	got, err := uc.Update(testFarmID, item.ID, dto.UpdateSupplyItemRequest{
		MinimumStock: dec("5"),
		Active:       &inactive,
	})
	require.NoError(t, err)
	assert.False(t, got.Active)

	// El listado de activos ya no lo incluye.
	activos, err := uc.List(testFarmID, true)
	require.NoError(t, err)
	assert.Empty(t, activos)
}

func TestSupplyItemListBatches_SoloDelInsumo(t *testing.T) {
	uc, st := newSupplyItems(t)
	item, err := uc.Create(testFarmID, validItem("Vacuna aftosa"))
	require.NoError(t, err)

	code := "L-77"
	st.Batches["b1"] = entity.Batch{ID: "b1", SupplyItemID: item.ID, Code: &code}
	st.Batches["b2"] = entity.Batch{ID: "b2", SupplyItemID: "otro-insumo"}

	batches, err := uc.ListBatches(testFarmID, item.ID)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "b1", batches[0].ID)
}
