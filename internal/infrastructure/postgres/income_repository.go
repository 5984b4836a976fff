package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/finance"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

var _ repository.IncomeRepository = (*IncomeRepo)(nil)

// IncomeRepo implementación del libro de ingresos sobre PostgreSQL (usable con pool o tx).
type IncomeRepo struct {
	q Querier
}

// NewIncomeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIncomeRepository(q Querier) *IncomeRepo {
	return &IncomeRepo{q: q}
}

const incomeColumns = `id, farm_id, category_id, date, amount, description, animal_id, automatic, origin_module, origin_reference_id, created_at, created_by`

// Create persiste un asiento de ingreso.
func (r *IncomeRepo) Create(income *entity.Income) error {
	query := `
		INSERT INTO incomes (` + incomeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	var originModule, originRef *string
	if income.Origin != nil {
		m := string(income.Origin.Module)
		originModule, originRef = &m, &income.Origin.ReferenceID
	}
	_, err := r.q.Exec(context.Background(), query,
		income.ID, income.FarmID, income.CategoryID, income.Date, income.Amount,
		income.Description, income.AnimalID, income.Automatic,
		originModule, originRef, income.CreatedAt, income.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert income: %w", err)
	}
	return nil
}

// Update actualiza un asiento manual.
func (r *IncomeRepo) Update(income *entity.Income) error {
	query := `
		UPDATE incomes
		SET category_id = $2, date = $3, amount = $4, description = $5, animal_id = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		income.ID, income.CategoryID, income.Date, income.Amount,
		income.Description, income.AnimalID,
	)
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	return nil
}

// Delete elimina un asiento por ID.
func (r *IncomeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM incomes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *IncomeRepo) GetByID(id string) (*entity.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE id = $1`
	income, err := scanIncome(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get income: %w", err)
	}
	return income, nil
}

// GetByOrigin devuelve el único asiento automático etiquetado con la referencia.
func (r *IncomeRepo) GetByOrigin(origin finance.OriginRef) (*entity.Income, error) {
	query := `
		SELECT ` + incomeColumns + `
		FROM incomes WHERE automatic AND origin_module = $1 AND origin_reference_id = $2`
	income, err := scanIncome(r.q.QueryRow(context.Background(), query, string(origin.Module), origin.ReferenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get income by origin: %w", err)
	}
	return income, nil
}

// DeleteByOrigin elimina el asiento etiquetado; devuelve filas borradas (0 o 1).
func (r *IncomeRepo) DeleteByOrigin(origin finance.OriginRef) (int64, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM incomes WHERE automatic AND origin_module = $1 AND origin_reference_id = $2`,
		string(origin.Module), origin.ReferenceID)
	if err != nil {
		return 0, fmt.Errorf("delete income by origin: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListByFarm lista los asientos de la finca en un rango de fechas.
func (r *IncomeRepo) ListByFarm(farmID string, from, to *time.Time, limit, offset int) ([]*entity.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE farm_id = $1`
	args := []any{farmID}
	pos := 2
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
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Income
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		list = append(list, income)
	}
	return list, rows.Err()
}

func scanIncome(row pgx.Row) (*entity.Income, error) {
	var in entity.Income
	var originModule, originRef *string
	err := row.Scan(
		&in.ID, &in.FarmID, &in.CategoryID, &in.Date, &in.Amount, &in.Description,
		&in.AnimalID, &in.Automatic, &originModule, &originRef, &in.CreatedAt, &in.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if originModule != nil && originRef != nil {
		in.Origin = &finance.OriginRef{Module: finance.OriginModule(*originModule), ReferenceID: *originRef}
	}
	return &in, nil
}
