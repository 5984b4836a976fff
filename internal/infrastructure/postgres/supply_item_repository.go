package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

var _ repository.SupplyItemRepository = (*SupplyItemRepo)(nil)

// SupplyItemRepo implementación de SupplyItemRepository sobre PostgreSQL (usable con pool o tx).
type SupplyItemRepo struct {
	q Querier
}

// NewSupplyItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyItemRepository(q Querier) *SupplyItemRepo {
	return &SupplyItemRepo{q: q}
}

const supplyItemColumns = `id, farm_id, category_id, name, unit_id, minimum_stock, active, created_at, updated_at`

// Create persiste un insumo. El nombre es único por finca.
func (r *SupplyItemRepo) Create(item *entity.SupplyItem) error {
	query := `
		INSERT INTO supply_items (` + supplyItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.FarmID, item.CategoryID, item.Name, item.UnitID,
		item.MinimumStock, item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supply item: %w", err)
	}
	return nil
}

// Update actualiza un insumo.
func (r *SupplyItemRepo) Update(item *entity.SupplyItem) error {
	query := `
		UPDATE supply_items
		SET category_id = $2, name = $3, unit_id = $4, minimum_stock = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CategoryID, item.Name, item.UnitID,
		item.MinimumStock, item.Active, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supply item: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *SupplyItemRepo) GetByID(id string) (*entity.SupplyItem, error) {
	query := `SELECT ` + supplyItemColumns + ` FROM supply_items WHERE id = $1`
	item, err := scanSupplyItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply item: %w", err)
	}
	return item, nil
}

// GetByFarmAndName busca un insumo por nombre dentro de la finca.
func (r *SupplyItemRepo) GetByFarmAndName(farmID, name string) (*entity.SupplyItem, error) {
	query := `SELECT ` + supplyItemColumns + ` FROM supply_items WHERE farm_id = $1 AND name = $2`
	item, err := scanSupplyItem(r.q.QueryRow(context.Background(), query, farmID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply item by name: %w", err)
	}
	return item, nil
}

// ListByFarm lista los insumos de la finca, opcionalmente solo los activos.
func (r *SupplyItemRepo) ListByFarm(farmID string, activeOnly bool) ([]*entity.SupplyItem, error) {
	query := `SELECT ` + supplyItemColumns + ` FROM supply_items WHERE farm_id = $1`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, farmID)
	if err != nil {
		return nil, fmt.Errorf("list supply items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplyItem
	for rows.Next() {
		item, err := scanSupplyItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supply item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanSupplyItem(row pgx.Row) (*entity.SupplyItem, error) {
	var item entity.SupplyItem
	err := row.Scan(
		&item.ID, &item.FarmID, &item.CategoryID, &item.Name, &item.UnitID,
		&item.MinimumStock, &item.Active, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
