package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

var _ repository.WeighingRepository = (*WeighingRepo)(nil)

// WeighingRepo implementación de WeighingRepository sobre PostgreSQL (usable con pool o tx).
type WeighingRepo struct {
	q Querier
}

// NewWeighingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWeighingRepository(q Querier) *WeighingRepo {
	return &WeighingRepo{q: q}
}

const weighingColumns = `id, animal_id, date, weight_kg, note, created_at`

// Create persiste un pesaje.
func (r *WeighingRepo) Create(weighing *entity.Weighing) error {
	query := `INSERT INTO weighings (` + weighingColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		weighing.ID, weighing.AnimalID, weighing.Date, weighing.WeightKg,
		weighing.Note, weighing.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert weighing: %w", err)
	}
	return nil
}

// Delete elimina un pesaje.
func (r *WeighingRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM weighings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete weighing: %w", err)
	}
	return nil
}

// GetByID obtiene un pesaje por ID.
func (r *WeighingRepo) GetByID(id string) (*entity.Weighing, error) {
	query := `SELECT ` + weighingColumns + ` FROM weighings WHERE id = $1`
	var w entity.Weighing
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.AnimalID, &w.Date, &w.WeightKg, &w.Note, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get weighing: %w", err)
	}
	return &w, nil
}

// ListByAnimal lista los pesajes de un animal, del más reciente al más antiguo.
func (r *WeighingRepo) ListByAnimal(animalID string) ([]*entity.Weighing, error) {
	query := `
		SELECT ` + weighingColumns + `
		FROM weighings WHERE animal_id = $1
		ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), query, animalID)
	if err != nil {
		return nil, fmt.Errorf("list weighings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Weighing
	for rows.Next() {
		var w entity.Weighing
		if err := rows.Scan(&w.ID, &w.AnimalID, &w.Date, &w.WeightKg, &w.Note, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan weighing: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// DeleteByAnimal elimina todos los pesajes de un animal (al borrar el animal).
func (r *WeighingRepo) DeleteByAnimal(animalID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM weighings WHERE animal_id = $1`, animalID)
	if err != nil {
		return fmt.Errorf("delete weighings by animal: %w", err)
	}
	return nil
}
