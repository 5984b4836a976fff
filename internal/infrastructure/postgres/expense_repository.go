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

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación del libro de gastos sobre PostgreSQL (usable con pool o tx).
// El etiquetado (origin_module, origin_reference_id) tiene un índice único
// parcial sobre asientos automáticos: a lo sumo un asiento por evento.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, farm_id, category_id, date, amount, description, animal_id, supply_item_id, pasture_id, automatic, origin_module, origin_reference_id, created_at, created_by`

// Create persiste un asiento de gasto.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	var originModule, originRef *string
	if expense.Origin != nil {
		m := string(expense.Origin.Module)
		originModule, originRef = &m, &expense.Origin.ReferenceID
	}
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.FarmID, expense.CategoryID, expense.Date, expense.Amount,
		expense.Description, expense.AnimalID, expense.SupplyItemID, expense.PastureID,
		expense.Automatic, originModule, originRef, expense.CreatedAt, expense.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// Update actualiza un asiento manual.
func (r *ExpenseRepo) Update(expense *entity.Expense) error {
	query := `
		UPDATE expenses
		SET category_id = $2, date = $3, amount = $4, description = $5,
		    animal_id = $6, supply_item_id = $7, pasture_id = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.CategoryID, expense.Date, expense.Amount,
		expense.Description, expense.AnimalID, expense.SupplyItemID, expense.PastureID,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// Delete elimina un asiento por ID.
func (r *ExpenseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	expense, err := scanExpense(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return expense, nil
}

// GetByOrigin devuelve el único asiento automático etiquetado con la referencia.
func (r *ExpenseRepo) GetByOrigin(origin finance.OriginRef) (*entity.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses WHERE automatic AND origin_module = $1 AND origin_reference_id = $2`
	expense, err := scanExpense(r.q.QueryRow(context.Background(), query, string(origin.Module), origin.ReferenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense by origin: %w", err)
	}
	return expense, nil
}

// DeleteByOrigin elimina el asiento etiquetado; devuelve filas borradas (0 o 1).
func (r *ExpenseRepo) DeleteByOrigin(origin finance.OriginRef) (int64, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM expenses WHERE automatic AND origin_module = $1 AND origin_reference_id = $2`,
		string(origin.Module), origin.ReferenceID)
	if err != nil {
		return 0, fmt.Errorf("delete expense by origin: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListByFarm lista los asientos de la finca en un rango de fechas.
func (r *ExpenseRepo) ListByFarm(farmID string, from, to *time.Time, limit, offset int) ([]*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE farm_id = $1`
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
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, expense)
	}
	return list, rows.Err()
}

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var e entity.Expense
	var originModule, originRef *string
	err := row.Scan(
		&e.ID, &e.FarmID, &e.CategoryID, &e.Date, &e.Amount, &e.Description,
		&e.AnimalID, &e.SupplyItemID, &e.PastureID, &e.Automatic,
		&originModule, &originRef, &e.CreatedAt, &e.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if originModule != nil && originRef != nil {
		e.Origin = &finance.OriginRef{Module: finance.OriginModule(*originModule), ReferenceID: *originRef}
	}
	return &e, nil
}
