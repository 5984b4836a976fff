package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	domfinance "github.com/jhoicas/AgroGestion-api/internal/domain/finance"
	dominventory "github.com/jhoicas/AgroGestion-api/internal/domain/inventory"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
	"github.com/jhoicas/AgroGestion-api/pkg/logger"
)

// Nombres de categorías semilla que usan los asientos automáticos.
// Si la categoría no existe en el catálogo, el asiento se omite (fallo blando)
// dejando rastro en el log; la transacción de dominio no se aborta por eso.
const (
	CategorySupplyPurchase = "Compra de Insumos"
	CategoryFeeding        = "Alimentación"
	CategoryHealth         = "Sanidad"
	CategoryAnimalPurchase = "Compra de Animales"
	CategoryMortalityLoss  = "Pérdidas por Mortalidad"
	CategoryAnimalSale     = "Venta de Animales"
)

// UseCase crea y revierte asientos financieros automáticos en nombre de los
// eventos de dominio, y administra los asientos manuales.
//
// Los métodos *InTx reciben el repositorio atado a la transacción del caller:
// el asiento automático se confirma o se revierte junto con la mutación de
// dominio que lo origina. La única excepción es la categoría ausente del
// catálogo semilla, que se trata como omisión registrada en el log.
type UseCase struct {
	catalogRepo  repository.CatalogRepository
	movementRepo repository.StockMovementRepository
	expenseRepo  repository.ExpenseRepository
	incomeRepo   repository.IncomeRepository
	log          *logger.Logger
}

// NewUseCase construye el caso de uso con repositorios atados al pool.
func NewUseCase(
	catalogRepo repository.CatalogRepository,
	movementRepo repository.StockMovementRepository,
	expenseRepo repository.ExpenseRepository,
	incomeRepo repository.IncomeRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		movementRepo: movementRepo,
		expenseRepo:  expenseRepo,
		incomeRepo:   incomeRepo,
		log:          log,
	}
}

// resolveCategoryID busca la categoría por libro y nombre. Devuelve "" si no
// existe (datos semilla mal configurados): el caller omite el asiento.
func (uc *UseCase) resolveCategoryID(ledger, name string) (string, error) {
	cat, err := uc.catalogRepo.FindFinanceCategory(ledger, name)
	if err != nil {
		return "", fmt.Errorf("resolver categoría %q: %w", name, err)
	}
	if cat == nil {
		return "", nil
	}
	return cat.ID, nil
}

// ComputeAverageCost calcula el costo promedio ponderado de un insumo a partir
// de sus movimientos de compra con costo unitario. Devuelve 0 si no hay ninguno.
func (uc *UseCase) ComputeAverageCost(ctx context.Context, supplyItemID string) (decimal.Decimal, error) {
	purchases, err := uc.movementRepo.ListPurchases(supplyItemID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("listar compras del insumo: %w", err)
	}
	return dominventory.AverageCost(purchases), nil
}

// RegisterExpensePurchaseInTx registra el gasto de una compra de insumo,
// etiquetado (INVENTORY, movementID). Monto = cantidad × costo unitario.
// Devuelve nil sin error si la categoría semilla no existe (asiento omitido).
func (uc *UseCase) RegisterExpensePurchaseInTx(
	expRepo repository.ExpenseRepository,
	farmID string,
	item *entity.SupplyItem,
	qty, unitCost decimal.Decimal,
	date time.Time,
	movementID, userID string,
) (*entity.Expense, error) {
	categoryID, err := uc.resolveCategoryID(entity.CategoryLedgerExpense, CategorySupplyPurchase)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		uc.log.Warn().Str("categoria", CategorySupplyPurchase).Str("movimiento", movementID).
			Msg("categoría semilla ausente, gasto automático omitido")
		return nil, nil
	}
	origin, err := domfinance.NewOriginRef(domfinance.OriginInventory, movementID)
	if err != nil {
		return nil, err
	}
	exp := &entity.Expense{
		ID:           uuid.New().String(),
		FarmID:       farmID,
		CategoryID:   categoryID,
		Date:         date,
		Amount:       qty.Mul(unitCost),
		Description:  fmt.Sprintf("Compra de %s (%s x %s)", item.Name, qty.String(), unitCost.String()),
		SupplyItemID: &item.ID,
		Automatic:    true,
		Origin:       &origin,
		CreatedAt:    time.Now(),
		CreatedBy:    userID,
	}
	if err := expRepo.Create(exp); err != nil {
		return nil, fmt.Errorf("crear gasto de compra: %w", err)
	}
	return exp, nil
}

// RegisterExpenseConsumptionInTx registra el gasto de un consumo de insumo,
// valorado al costo promedio ponderado y etiquetado (INVENTORY, movementID).
// Si el insumo no tiene compras valoradas el promedio es cero y el asiento se
// omite igual que con la categoría ausente: el esquema no admite montos cero.
func (uc *UseCase) RegisterExpenseConsumptionInTx(
	ctx context.Context,
	expRepo repository.ExpenseRepository,
	farmID string,
	item *entity.SupplyItem,
	qty decimal.Decimal,
	date time.Time,
	movementID, userID, note string,
) (*entity.Expense, error) {
	categoryID, err := uc.resolveCategoryID(entity.CategoryLedgerExpense, CategoryFeeding)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		uc.log.Warn().Str("categoria", CategoryFeeding).Str("movimiento", movementID).
			Msg("categoría semilla ausente, gasto automático omitido")
		return nil, nil
	}
	avgCost, err := uc.ComputeAverageCost(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	amount := qty.Mul(avgCost)
	if !amount.GreaterThan(decimal.Zero) {
		uc.log.Warn().Str("insumo", item.ID).Str("movimiento", movementID).
			Msg("insumo sin compras valoradas, gasto de consumo omitido")
		return nil, nil
	}
	origin, err := domfinance.NewOriginRef(domfinance.OriginInventory, movementID)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("Consumo de %s (%s)", item.Name, qty.String())
	if note != "" {
		desc += ": " + note
	}
	exp := &entity.Expense{
		ID:           uuid.New().String(),
		FarmID:       farmID,
		CategoryID:   categoryID,
		Date:         date,
		Amount:       amount,
		Description:  desc,
		SupplyItemID: &item.ID,
		Automatic:    true,
		Origin:       &origin,
		CreatedAt:    time.Now(),
		CreatedBy:    userID,
	}
	if err := expRepo.Create(exp); err != nil {
		return nil, fmt.Errorf("crear gasto de consumo: %w", err)
	}
	return exp, nil
}

// RegisterExpenseTreatmentInTx registra el gasto de un tratamiento sanitario,
// etiquetado (TREATMENT, treatmentID).
func (uc *UseCase) RegisterExpenseTreatmentInTx(
	expRepo repository.ExpenseRepository,
	farmID string,
	treatment *entity.Treatment,
	itemName, typeName, userID string,
) (*entity.Expense, error) {
	categoryID, err := uc.resolveCategoryID(entity.CategoryLedgerExpense, CategoryHealth)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		uc.log.Warn().Str("categoria", CategoryHealth).Str("tratamiento", treatment.ID).
			Msg("categoría semilla ausente, gasto automático omitido")
		return nil, nil
	}
	origin, err := domfinance.NewOriginRef(domfinance.OriginTreatment, treatment.ID)
	if err != nil {
		return nil, err
	}
	desc := typeName
	if itemName != "" {
		desc += " con " + itemName
	}
	exp := &entity.Expense{
		ID:           uuid.New().String(),
		FarmID:       farmID,
		CategoryID:   categoryID,
		Date:         treatment.Date,
		Amount:       treatment.Cost,
		Description:  desc,
		AnimalID:     treatment.AnimalID,
		SupplyItemID: treatment.SupplyItemID,
		Automatic:    true,
		Origin:       &origin,
		CreatedAt:    time.Now(),
		CreatedBy:    userID,
	}
	if err := expRepo.Create(exp); err != nil {
		return nil, fmt.Errorf("crear gasto de tratamiento: %w", err)
	}
	return exp, nil
}

// RegisterExpenseAnimalPurchaseInTx registra el gasto de compra de un animal,
// etiquetado (ANIMAL, animalID).
func (uc *UseCase) RegisterExpenseAnimalPurchaseInTx(
	expRepo repository.ExpenseRepository,
	farmID string,
	animal *entity.Animal,
	cost decimal.Decimal,
	date time.Time,
	userID string,
) (*entity.Expense, error) {
	categoryID, err := uc.resolveCategoryID(entity.CategoryLedgerExpense, CategoryAnimalPurchase)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		uc.log.Warn().Str("categoria", CategoryAnimalPurchase).Str("animal", animal.ID).
			Msg("categoría semilla ausente, gasto automático omitido")
		return nil, nil
	}
	origin, err := domfinance.NewOriginRef(domfinance.OriginAnimal, animal.ID)
	if err != nil {
		return nil, err
	}
	exp := &entity.Expense{
		ID:          uuid.New().String(),
		FarmID:      farmID,
		CategoryID:  categoryID,
		Date:        date,
		Amount:      cost,
		Description: fmt.Sprintf("Compra del animal %s", animal.Tag),
		AnimalID:    &animal.ID,
		Automatic:   true,
		Origin:      &origin,
		CreatedAt:   time.Now(),
		CreatedBy:   userID,
	}
	if err := expRepo.Create(exp); err != nil {
		return nil, fmt.Errorf("crear gasto de compra de animal: %w", err)
	}
	return exp, nil
}

// RegisterExpenseMortalityInTx registra la pérdida por mortalidad de un animal
// con costo de compra, etiquetada (MORTALITY, mortalityID).
func (uc *UseCase) RegisterExpenseMortalityInTx(
	expRepo repository.ExpenseRepository,
	farmID string,
	animal *entity.Animal,
	mortalityID string,
	cost decimal.Decimal,
	date time.Time,
	userID string,
) (*entity.Expense, error) {
	categoryID, err := uc.resolveCategoryID(entity.CategoryLedgerExpense, CategoryMortalityLoss)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		uc.log.Warn().Str("categoria", CategoryMortalityLoss).Str("mortalidad", mortalityID).
			Msg("categoría semilla ausente, gasto automático omitido")
		return nil, nil
	}
	origin, err := domfinance.NewOriginRef(domfinance.OriginMortality, mortalityID)
	if err != nil {
		return nil, err
	}
	exp := &entity.Expense{
		ID:          uuid.New().String(),
		FarmID:      farmID,
		CategoryID:  categoryID,
		Date:        date,
		Amount:      cost,
		Description: fmt.Sprintf("Pérdida por mortalidad del animal %s", animal.Tag),
		AnimalID:    &animal.ID,
		Automatic:   true,
		Origin:      &origin,
		CreatedAt:   time.Now(),
		CreatedBy:   userID,
	}
	if err := expRepo.Create(exp); err != nil {
		return nil, fmt.Errorf("crear gasto de mortalidad: %w", err)
	}
	return exp, nil
}

// RegisterIncomeAnimalSaleInTx registra el ingreso por venta de un animal,
// etiquetado (ANIMAL, animalID).
func (uc *UseCase) RegisterIncomeAnimalSaleInTx(
	incRepo repository.IncomeRepository,
	farmID string,
	animal *entity.Animal,
	price decimal.Decimal,
	date time.Time,
	saleWeight *decimal.Decimal,
	userID string,
) (*entity.Income, error) {
	categoryID, err := uc.resolveCategoryID(entity.CategoryLedgerIncome, CategoryAnimalSale)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		uc.log.Warn().Str("categoria", CategoryAnimalSale).Str("animal", animal.ID).
			Msg("categoría semilla ausente, ingreso automático omitido")
		return nil, nil
	}
	origin, err := domfinance.NewOriginRef(domfinance.OriginAnimal, animal.ID)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("Venta del animal %s", animal.Tag)
	if saleWeight != nil {
		desc += fmt.Sprintf(" (%s kg)", saleWeight.String())
	}
	inc := &entity.Income{
		ID:          uuid.New().String(),
		FarmID:      farmID,
		CategoryID:  categoryID,
		Date:        date,
		Amount:      price,
		Description: desc,
		AnimalID:    &animal.ID,
		Automatic:   true,
		Origin:      &origin,
		CreatedAt:   time.Now(),
		CreatedBy:   userID,
	}
	if err := incRepo.Create(inc); err != nil {
		return nil, fmt.Errorf("crear ingreso de venta: %w", err)
	}
	return inc, nil
}

// ReverseExpenseByOriginInTx elimina el asiento automático de gastos etiquetado
// con la referencia. No-op si no existe (reversión idempotente).
func (uc *UseCase) ReverseExpenseByOriginInTx(expRepo repository.ExpenseRepository, origin domfinance.OriginRef) error {
	n, err := expRepo.DeleteByOrigin(origin)
	if err != nil {
		return fmt.Errorf("revertir gasto %s: %w", origin, err)
	}
	if n == 0 {
		uc.log.Debug().Stringer("origen", origin).Msg("reversión de gasto sin asiento que eliminar")
	}
	return nil
}

// ReverseIncomeByOriginInTx elimina el asiento automático de ingresos etiquetado
// con la referencia. No-op si no existe.
func (uc *UseCase) ReverseIncomeByOriginInTx(incRepo repository.IncomeRepository, origin domfinance.OriginRef) error {
	n, err := incRepo.DeleteByOrigin(origin)
	if err != nil {
		return fmt.Errorf("revertir ingreso %s: %w", origin, err)
	}
	if n == 0 {
		uc.log.Debug().Stringer("origen", origin).Msg("reversión de ingreso sin asiento que eliminar")
	}
	return nil
}
