package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, supply_item_id, code, expiration_date, created_at`

// Create persiste un lote.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `INSERT INTO batches (` + batchColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.SupplyItemID, batch.Code, batch.ExpirationDate, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	batch, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return batch, nil
}

// FindByItemAndCode busca un lote reutilizable por (insumo, código).
func (r *BatchRepo) FindByItemAndCode(supplyItemID, code string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE supply_item_id = $1 AND code = $2`
	batch, err := scanBatch(r.q.QueryRow(context.Background(), query, supplyItemID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find batch by code: %w", err)
	}
	return batch, nil
}

// FindByItemAndExpiration busca un lote sin código por (insumo, vencimiento).
func (r *BatchRepo) FindByItemAndExpiration(supplyItemID string, expiration time.Time) (*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches WHERE supply_item_id = $1 AND code IS NULL AND expiration_date = $2`
	batch, err := scanBatch(r.q.QueryRow(context.Background(), query, supplyItemID, expiration))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find batch by expiration: %w", err)
	}
	return batch, nil
}

// ListByItem lista los lotes de un insumo.
func (r *BatchRepo) ListByItem(supplyItemID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches WHERE supply_item_id = $1
		ORDER BY expiration_date ASC NULLS LAST, created_at ASC`
	rows, err := r.q.Query(context.Background(), query, supplyItemID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, batch)
	}
	return list, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(&b.ID, &b.SupplyItemID, &b.Code, &b.ExpirationDate, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
