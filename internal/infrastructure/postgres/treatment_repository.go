package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

var _ repository.TreatmentRepository = (*TreatmentRepo)(nil)

// TreatmentRepo implementación de TreatmentRepository sobre PostgreSQL (usable con pool o tx).
type TreatmentRepo struct {
	q Querier
}

// NewTreatmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTreatmentRepository(q Querier) *TreatmentRepo {
	return &TreatmentRepo{q: q}
}

const treatmentColumns = `id, farm_id, animal_id, treatment_type_id, supply_item_id, quantity, cost, date, note, created_at, created_by`

// Create persiste un tratamiento.
func (r *TreatmentRepo) Create(treatment *entity.Treatment) error {
	query := `
		INSERT INTO treatments (` + treatmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		treatment.ID, treatment.FarmID, treatment.AnimalID, treatment.TreatmentTypeID,
		treatment.SupplyItemID, treatment.Quantity, treatment.Cost, treatment.Date,
		treatment.Note, treatment.CreatedAt, treatment.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert treatment: %w", err)
	}
	return nil
}

// Delete elimina un tratamiento.
func (r *TreatmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete treatment: %w", err)
	}
	return nil
}

// GetByID obtiene un tratamiento por ID.
func (r *TreatmentRepo) GetByID(id string) (*entity.Treatment, error) {
	query := `SELECT ` + treatmentColumns + ` FROM treatments WHERE id = $1`
	var t entity.Treatment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.FarmID, &t.AnimalID, &t.TreatmentTypeID, &t.SupplyItemID,
		&t.Quantity, &t.Cost, &t.Date, &t.Note, &t.CreatedAt, &t.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get treatment: %w", err)
	}
	return &t, nil
}

// ListByFarm lista los tratamientos de la finca.
func (r *TreatmentRepo) ListByFarm(farmID string, limit, offset int) ([]*entity.Treatment, error) {
	query := `
		SELECT ` + treatmentColumns + `
		FROM treatments WHERE farm_id = $1
		ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, farmID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Treatment
	for rows.Next() {
		var t entity.Treatment
		err := rows.Scan(
			&t.ID, &t.FarmID, &t.AnimalID, &t.TreatmentTypeID, &t.SupplyItemID,
			&t.Quantity, &t.Cost, &t.Date, &t.Note, &t.CreatedAt, &t.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("scan treatment: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
