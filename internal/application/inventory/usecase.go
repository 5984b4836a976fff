package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

// UseCase es el motor de inventario de insumos: valida propiedad y stock
// disponible y anexa movimientos inmutables al libro (entrada, consumo,
// ajuste, traslado). El stock nunca se materializa: se deriva sumando el libro.
//
// Los escritores que validan stock se serializan con un advisory lock
// transaccional sobre la llave (finca, insumo, lote); sin él, dos consumos
// concurrentes sobre un stock casi vacío podrían pasar ambos la validación.
type UseCase struct {
	txRunner     TxRunner
	itemRepo     repository.SupplyItemRepository
	movementRepo repository.StockMovementRepository
	batchRepo    repository.BatchRepository
	farmRepo     repository.FarmRepository
	finance      FinancePort
}

// NewUseCase construye el motor de inventario.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.SupplyItemRepository,
	movementRepo repository.StockMovementRepository,
	batchRepo repository.BatchRepository,
	farmRepo repository.FarmRepository,
	finance FinancePort,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		batchRepo:    batchRepo,
		farmRepo:     farmRepo,
		finance:      finance,
	}
}

// GetStockByItem devuelve el stock derivado por insumo para la finca
// (y lote si se indica). Insumo ausente del mapa = stock cero.
func (uc *UseCase) GetStockByItem(ctx context.Context, farmID string, batchID *string) (map[string]decimal.Decimal, error) {
	return uc.movementRepo.SumByItem(farmID, batchID)
}

// ownedItem valida que el insumo exista y pertenezca a la finca.
func (uc *UseCase) ownedItem(farmID, itemID string) (*entity.SupplyItem, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil || item == nil {
		return nil, domain.ErrNotFound
	}
	if item.FarmID != farmID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// resolveBatch valida el lote indicado o lo busca/crea por código o vencimiento.
// Devuelve nil si el movimiento no lleva lote.
func resolveBatch(batchRepo repository.BatchRepository, item *entity.SupplyItem, in dto.RegisterEntryRequest, now time.Time) (*entity.Batch, error) {
	if in.BatchID != nil {
		batch, err := batchRepo.GetByID(*in.BatchID)
		if err != nil {
			return nil, err
		}
		if batch == nil || batch.SupplyItemID != item.ID {
			return nil, domain.ErrNotFound
		}
		return batch, nil
	}
	if in.BatchCode != nil && *in.BatchCode != "" {
		batch, err := batchRepo.FindByItemAndCode(item.ID, *in.BatchCode)
		if err != nil {
			return nil, err
		}
		if batch != nil {
			return batch, nil
		}
	} else if in.BatchExpiration != nil {
		batch, err := batchRepo.FindByItemAndExpiration(item.ID, *in.BatchExpiration)
		if err != nil {
			return nil, err
		}
		if batch != nil {
			return batch, nil
		}
	} else {
		return nil, nil // movimiento sin lote
	}
	batch := &entity.Batch{
		ID:             uuid.New().String(),
		SupplyItemID:   item.ID,
		Code:           in.BatchCode,
		ExpirationDate: in.BatchExpiration,
		CreatedAt:      now,
	}
	if err := batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// RegisterEntry registra una entrada por compra: resuelve (o crea) el lote,
// anexa el movimiento PURCHASE y, si hay costo unitario, registra el gasto
// etiquetado (INVENTORY, movementID). Todo en una transacción.
func (uc *UseCase) RegisterEntry(ctx context.Context, farmID, userID string, in dto.RegisterEntryRequest) (*entity.StockMovement, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.ownedItem(farmID, in.SupplyItemID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		batchRepo repository.BatchRepository,
		expenseRepo repository.ExpenseRepository,
	) error {
		batch, err := resolveBatch(batchRepo, item, in, now)
		if err != nil {
			return err
		}
		var batchID *string
		if batch != nil {
			batchID = &batch.ID
		}
		mov = &entity.StockMovement{
			ID:           uuid.New().String(),
			FarmID:       farmID,
			SupplyItemID: item.ID,
			BatchID:      batchID,
			Kind:         entity.MovementKindPurchase,
			Quantity:     in.Quantity,
			UnitCost:     in.UnitCost,
			Date:         date,
			Note:         in.Note,
			CreatedAt:    now,
			CreatedBy:    userID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if in.UnitCost != nil && in.UnitCost.GreaterThan(decimal.Zero) {
			if _, err := uc.finance.RegisterExpensePurchaseInTx(
				expenseRepo, farmID, item, in.Quantity, *in.UnitCost, date, mov.ID, userID,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterConsumption registra un consumo: valida stock suficiente (con el
// lock de la llave tomado) y anexa el movimiento CONSUMPTION con cantidad
// negativa más el gasto valorado al costo promedio. Una transacción.
func (uc *UseCase) RegisterConsumption(ctx context.Context, farmID, userID string, in dto.RegisterConsumptionRequest) (*entity.StockMovement, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.ownedItem(farmID, in.SupplyItemID)
	if err != nil {
		return nil, err
	}
	if err := uc.ownedBatch(item, in.BatchID); err != nil {
		return nil, err
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		_ repository.BatchRepository,
		expenseRepo repository.ExpenseRepository,
	) error {
		var err error
		mov, err = appendOutbound(movRepo, outboundParams{
			farmID:  farmID,
			item:    item,
			batchID: in.BatchID,
			kind:    entity.MovementKindConsumption,
			qty:     in.Quantity,
			date:    date,
			note:    in.Note,
			userID:  userID,
			now:     now,
		})
		if err != nil {
			return err
		}
		_, err = uc.finance.RegisterExpenseConsumptionInTx(
			ctx, expenseRepo, farmID, item, in.Quantity, date, mov.ID, userID, in.Note,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterAdjustment registra un ajuste con signo. Cero es inválido; los
// negativos revalidan stock igual que un consumo.
func (uc *UseCase) RegisterAdjustment(ctx context.Context, farmID, userID string, in dto.RegisterAdjustmentRequest) (*entity.StockMovement, error) {
	if in.SignedQuantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.ownedItem(farmID, in.SupplyItemID)
	if err != nil {
		return nil, err
	}
	if err := uc.ownedBatch(item, in.BatchID); err != nil {
		return nil, err
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		_ repository.BatchRepository,
		_ repository.ExpenseRepository,
	) error {
		if in.SignedQuantity.GreaterThan(decimal.Zero) {
			mov = &entity.StockMovement{
				ID:           uuid.New().String(),
				FarmID:       farmID,
				SupplyItemID: item.ID,
				BatchID:      in.BatchID,
				Kind:         entity.MovementKindAdjustmentIn,
				Quantity:     in.SignedQuantity,
				Date:         date,
				Note:         in.Note,
				CreatedAt:    now,
				CreatedBy:    userID,
			}
			return movRepo.Create(mov)
		}
		var err error
		mov, err = appendOutbound(movRepo, outboundParams{
			farmID:  farmID,
			item:    item,
			batchID: in.BatchID,
			kind:    entity.MovementKindAdjustmentOut,
			qty:     in.SignedQuantity.Neg(),
			date:    date,
			note:    in.Note,
			userID:  userID,
			now:     now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Transfer traslada stock entre dos fincas: un ADJUSTMENT_OUT negativo en la
// finca origen y un ADJUSTMENT_IN positivo en la destino, como unidad atómica.
// El insumo debe pertenecer a la finca origen y tener stock suficiente allí;
// la finca destino debe existir.
func (uc *UseCase) Transfer(ctx context.Context, farmFrom, userID string, in dto.TransferRequest) error {
	if !in.Quantity.GreaterThan(decimal.Zero) || in.FarmTo == "" || in.FarmTo == farmFrom {
		return domain.ErrInvalidInput
	}
	item, err := uc.ownedItem(farmFrom, in.SupplyItemID)
	if err != nil {
		return err
	}
	dest, err := uc.farmRepo.GetByID(in.FarmTo)
	if err != nil {
		return err
	}
	if dest == nil {
		return domain.ErrNotFound
	}
	if err := uc.ownedBatch(item, in.BatchFromID); err != nil {
		return err
	}
	if err := uc.ownedBatch(item, in.BatchToID); err != nil {
		return err
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		_ repository.BatchRepository,
		_ repository.ExpenseRepository,
	) error {
		if _, err := appendOutbound(movRepo, outboundParams{
			farmID:  farmFrom,
			item:    item,
			batchID: in.BatchFromID,
			kind:    entity.MovementKindAdjustmentOut,
			qty:     in.Quantity,
			date:    date,
			note:    in.Note,
			userID:  userID,
			now:     now,
		}); err != nil {
			return err
		}
		inMov := &entity.StockMovement{
			ID:           uuid.New().String(),
			FarmID:       in.FarmTo,
			SupplyItemID: item.ID,
			BatchID:      in.BatchToID,
			Kind:         entity.MovementKindAdjustmentIn,
			Quantity:     in.Quantity,
			Date:         date,
			Note:         in.Note,
			CreatedAt:    now,
			CreatedBy:    userID,
		}
		return movRepo.Create(inMov)
	})
}

// ownedBatch valida que el lote (si se indica) pertenezca al insumo.
func (uc *UseCase) ownedBatch(item *entity.SupplyItem, batchID *string) error {
	if batchID == nil {
		return nil
	}
	batch, err := uc.batchRepo.GetByID(*batchID)
	if err != nil {
		return err
	}
	if batch == nil || batch.SupplyItemID != item.ID {
		return domain.ErrNotFound
	}
	return nil
}

// outboundParams parámetros de una salida validada contra stock.
type outboundParams struct {
	farmID  string
	item    *entity.SupplyItem
	batchID *string
	kind    string
	qty     decimal.Decimal // positiva; se anexa negada
	date    time.Time
	note    string
	userID  string
	now     time.Time
}

// appendOutbound toma el lock de la llave de stock, revalida el saldo derivado
// y anexa el movimiento negado. Debe ejecutarse con un movRepo atado a la
// transacción del caller.
func appendOutbound(movRepo repository.StockMovementRepository, p outboundParams) (*entity.StockMovement, error) {
	if err := movRepo.LockStockKey(p.farmID, p.item.ID, p.batchID); err != nil {
		return nil, err
	}
	stock, err := movRepo.SumForItem(p.farmID, p.item.ID, p.batchID)
	if err != nil {
		return nil, err
	}
	if stock.LessThan(p.qty) {
		return nil, domain.ErrInsufficientStock
	}
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		FarmID:       p.farmID,
		SupplyItemID: p.item.ID,
		BatchID:      p.batchID,
		Kind:         p.kind,
		Quantity:     p.qty.Neg(),
		Date:         p.date,
		Note:         p.note,
		CreatedAt:    p.now,
		CreatedBy:    p.userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterConsumptionInTx anexa un consumo usando el movRepo de la transacción
// del caller (integración tratamientos-inventario). No registra gasto de
// consumo: el costo del evento que consume lo cubre su propio asiento.
func (uc *UseCase) RegisterConsumptionInTx(
	movRepo repository.StockMovementRepository,
	farmID string,
	item *entity.SupplyItem,
	batchID *string,
	qty decimal.Decimal,
	userID string,
	now time.Time,
	note string,
) (*entity.StockMovement, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	return appendOutbound(movRepo, outboundParams{
		farmID:  farmID,
		item:    item,
		batchID: batchID,
		kind:    entity.MovementKindConsumption,
		qty:     qty,
		date:    now,
		note:    note,
		userID:  userID,
		now:     now,
	})
}

// RegisterAdjustmentInTx anexa un ajuste positivo de compensación usando el
// movRepo de la transacción del caller (reversión de un consumo previo).
func (uc *UseCase) RegisterAdjustmentInTx(
	movRepo repository.StockMovementRepository,
	farmID string,
	item *entity.SupplyItem,
	batchID *string,
	qty decimal.Decimal,
	userID string,
	now time.Time,
	note string,
) (*entity.StockMovement, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		FarmID:       farmID,
		SupplyItemID: item.ID,
		BatchID:      batchID,
		Kind:         entity.MovementKindAdjustmentIn,
		Quantity:     qty,
		Date:         now,
		Note:         note,
		CreatedAt:    now,
		CreatedBy:    userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ListMovements lista los movimientos de un insumo de la finca.
func (uc *UseCase) ListMovements(ctx context.Context, farmID, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if _, err := uc.ownedItem(farmID, itemID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.movementRepo.ListByItem(farmID, itemID, from, to, limit, offset)
}
