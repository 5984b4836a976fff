package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

var _ repository.FarmRepository = (*FarmRepo)(nil)

// FarmRepo implementación de FarmRepository sobre PostgreSQL (usable con pool o tx).
type FarmRepo struct {
	q Querier
}

// NewFarmRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFarmRepository(q Querier) *FarmRepo {
	return &FarmRepo{q: q}
}

const farmColumns = `id, name, location, owner_name, created_at, updated_at`

// Create persiste una finca.
func (r *FarmRepo) Create(farm *entity.Farm) error {
	query := `INSERT INTO farms (` + farmColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		farm.ID, farm.Name, farm.Location, farm.OwnerName, farm.CreatedAt, farm.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert farm: %w", err)
	}
	return nil
}

// Update actualiza una finca.
func (r *FarmRepo) Update(farm *entity.Farm) error {
	query := `
		UPDATE farms
		SET name = $2, location = $3, owner_name = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		farm.ID, farm.Name, farm.Location, farm.OwnerName, farm.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update farm: %w", err)
	}
	return nil
}

// GetByID obtiene una finca por ID.
func (r *FarmRepo) GetByID(id string) (*entity.Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms WHERE id = $1`
	var f entity.Farm
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.Name, &f.Location, &f.OwnerName, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get farm: %w", err)
	}
	return &f, nil
}

// List lista todas las fincas.
func (r *FarmRepo) List() ([]*entity.Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	defer rows.Close()
	var list []*entity.Farm
	for rows.Next() {
		var f entity.Farm
		if err := rows.Scan(&f.ID, &f.Name, &f.Location, &f.OwnerName, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan farm: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
