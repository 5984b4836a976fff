package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). El libro es append-only: no hay UPDATE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const stockMovementColumns = `id, farm_id, supply_item_id, batch_id, kind, quantity, unit_cost, date, note, created_at, created_by`

// Create persiste un movimiento del libro.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + stockMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.FarmID, movement.SupplyItemID, movement.BatchID,
		movement.Kind, movement.Quantity, movement.UnitCost, movement.Date,
		movement.Note, movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanStockMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// Delete elimina un movimiento (solo como compensación del evento que lo originó).
func (r *StockMovementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock movement: %w", err)
	}
	return nil
}

// SumByItem suma las cantidades con signo por insumo para una finca
// (y lote si se indica). Insumo ausente del mapa = stock cero.
func (r *StockMovementRepo) SumByItem(farmID string, batchID *string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT supply_item_id, COALESCE(SUM(quantity), 0)
		FROM stock_movements WHERE farm_id = $1`
	args := []any{farmID}
	if batchID != nil {
		query += ` AND batch_id = $2`
		args = append(args, *batchID)
	}
	query += ` GROUP BY supply_item_id`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("sum by item: %w", err)
	}
	defer rows.Close()
	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var itemID string
		var total decimal.Decimal
		if err := rows.Scan(&itemID, &total); err != nil {
			return nil, fmt.Errorf("scan sum: %w", err)
		}
		sums[itemID] = total
	}
	return sums, rows.Err()
}

// SumForItem suma las cantidades con signo de un insumo concreto.
func (r *StockMovementRepo) SumForItem(farmID, supplyItemID string, batchID *string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements WHERE farm_id = $1 AND supply_item_id = $2`
	args := []any{farmID, supplyItemID}
	if batchID != nil {
		query += ` AND batch_id = $3`
		args = append(args, *batchID)
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum for item: %w", err)
	}
	return total, nil
}

// ListPurchases devuelve los movimientos de compra del insumo (para costo promedio).
func (r *StockMovementRepo) ListPurchases(supplyItemID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + `
		FROM stock_movements
		WHERE supply_item_id = $1 AND kind = $2
		ORDER BY date ASC`
	rows, err := r.q.Query(context.Background(), query, supplyItemID, entity.MovementKindPurchase)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	return collectStockMovements(rows)
}

// ListByItem lista los movimientos de un insumo en un rango de fechas.
func (r *StockMovementRepo) ListByItem(farmID, supplyItemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + `
		FROM stock_movements WHERE farm_id = $1 AND supply_item_id = $2`
	args := []any{farmID, supplyItemID}
	pos := 3
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by item: %w", err)
	}
	defer rows.Close()
	return collectStockMovements(rows)
}

// LockStockKey toma un advisory lock transaccional sobre la llave
// (finca, insumo, lote). Serializa a los escritores concurrentes que validan
// stock antes de escribir; se libera solo al terminar la transacción.
func (r *StockMovementRepo) LockStockKey(farmID, supplyItemID string, batchID *string) error {
	key := farmID + "/" + supplyItemID
	if batchID != nil {
		key += "/" + *batchID
	}
	_, err := r.q.Exec(context.Background(),
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key)
	if err != nil {
		return fmt.Errorf("lock stock key: %w", err)
	}
	return nil
}

func scanStockMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.FarmID, &m.SupplyItemID, &m.BatchID, &m.Kind,
		&m.Quantity, &m.UnitCost, &m.Date, &m.Note, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectStockMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanStockMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
