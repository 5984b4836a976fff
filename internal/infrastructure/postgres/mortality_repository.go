package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

var _ repository.MortalityRepository = (*MortalityRepo)(nil)

// MortalityRepo implementación de MortalityRepository sobre PostgreSQL (usable con pool o tx).
type MortalityRepo struct {
	q Querier
}

// NewMortalityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMortalityRepository(q Querier) *MortalityRepo {
	return &MortalityRepo{q: q}
}

const mortalityColumns = `id, animal_id, date, cause, note, created_at, created_by`

// Create persiste un registro de mortalidad.
func (r *MortalityRepo) Create(mortality *entity.Mortality) error {
	query := `INSERT INTO mortalities (` + mortalityColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		mortality.ID, mortality.AnimalID, mortality.Date, mortality.Cause,
		mortality.Note, mortality.CreatedAt, mortality.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert mortality: %w", err)
	}
	return nil
}

// Delete elimina un registro de mortalidad.
func (r *MortalityRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM mortalities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete mortality: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *MortalityRepo) GetByID(id string) (*entity.Mortality, error) {
	query := `SELECT ` + mortalityColumns + ` FROM mortalities WHERE id = $1`
	var m entity.Mortality
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.AnimalID, &m.Date, &m.Cause, &m.Note, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mortality: %w", err)
	}
	return &m, nil
}

// ListByFarm lista los registros de mortalidad de la finca (vía el animal).
func (r *MortalityRepo) ListByFarm(farmID string, limit, offset int) ([]*entity.Mortality, error) {
	query := `
		SELECT m.id, m.animal_id, m.date, m.cause, m.note, m.created_at, m.created_by
		FROM mortalities m
		JOIN animals a ON a.id = m.animal_id
		WHERE a.farm_id = $1
		ORDER BY m.date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, farmID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list mortalities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Mortality
	for rows.Next() {
		var m entity.Mortality
		if err := rows.Scan(&m.ID, &m.AnimalID, &m.Date, &m.Cause, &m.Note, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan mortality: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
