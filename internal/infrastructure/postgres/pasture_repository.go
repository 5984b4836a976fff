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

var _ repository.PastureRepository = (*PastureRepo)(nil)

// PastureRepo implementación de PastureRepository sobre PostgreSQL (usable con pool o tx).
type PastureRepo struct {
	q Querier
}

// NewPastureRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPastureRepository(q Querier) *PastureRepo {
	return &PastureRepo{q: q}
}

const pastureColumns = `id, farm_id, name, area_ha, active, created_at, updated_at`

// Create persiste un potrero.
func (r *PastureRepo) Create(pasture *entity.Pasture) error {
	query := `INSERT INTO pastures (` + pastureColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		pasture.ID, pasture.FarmID, pasture.Name, pasture.AreaHa, pasture.Active,
		pasture.CreatedAt, pasture.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pasture: %w", err)
	}
	return nil
}

// Update actualiza un potrero.
func (r *PastureRepo) Update(pasture *entity.Pasture) error {
	query := `
		UPDATE pastures
		SET name = $2, area_ha = $3, active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		pasture.ID, pasture.Name, pasture.AreaHa, pasture.Active, pasture.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pasture: %w", err)
	}
	return nil
}

// GetByID obtiene un potrero por ID.
func (r *PastureRepo) GetByID(id string) (*entity.Pasture, error) {
	query := `SELECT ` + pastureColumns + ` FROM pastures WHERE id = $1`
	var p entity.Pasture
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.FarmID, &p.Name, &p.AreaHa, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pasture: %w", err)
	}
	return &p, nil
}

// ListByFarm lista los potreros de la finca, opcionalmente solo los activos.
func (r *PastureRepo) ListByFarm(farmID string, activeOnly bool) ([]*entity.Pasture, error) {
	query := `SELECT ` + pastureColumns + ` FROM pastures WHERE farm_id = $1`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, farmID)
	if err != nil {
		return nil, fmt.Errorf("list pastures: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pasture
	for rows.Next() {
		var p entity.Pasture
		if err := rows.Scan(&p.ID, &p.FarmID, &p.Name, &p.AreaHa, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pasture: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
