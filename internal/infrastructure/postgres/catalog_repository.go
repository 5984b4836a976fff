package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo consulta los catálogos de referencia globales (datos semilla).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// FindFinanceCategory busca una categoría por libro (EXPENSE|INCOME) y nombre.
// Devuelve (nil, nil) si no existe: los llamadores la tratan como fallo blando.
func (r *CatalogRepo) FindFinanceCategory(ledger, name string) (*entity.FinanceCategory, error) {
	query := `SELECT id, ledger, name FROM finance_categories WHERE ledger = $1 AND name = $2`
	var c entity.FinanceCategory
	err := r.q.QueryRow(context.Background(), query, ledger, name).Scan(&c.ID, &c.Ledger, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find finance category: %w", err)
	}
	return &c, nil
}

// ListFinanceCategories lista las categorías de un libro.
func (r *CatalogRepo) ListFinanceCategories(ledger string) ([]*entity.FinanceCategory, error) {
	query := `SELECT id, ledger, name FROM finance_categories WHERE ledger = $1 ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, ledger)
	if err != nil {
		return nil, fmt.Errorf("list finance categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinanceCategory
	for rows.Next() {
		var c entity.FinanceCategory
		if err := rows.Scan(&c.ID, &c.Ledger, &c.Name); err != nil {
			return nil, fmt.Errorf("scan finance category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ListUnits lista las unidades de medida.
func (r *CatalogRepo) ListUnits() ([]*entity.Unit, error) {
	query := `SELECT id, name, symbol FROM units ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Symbol); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// GetTreatmentType obtiene un tipo de tratamiento por ID.
func (r *CatalogRepo) GetTreatmentType(id string) (*entity.TreatmentType, error) {
	query := `SELECT id, name FROM treatment_types WHERE id = $1`
	var t entity.TreatmentType
	err := r.q.QueryRow(context.Background(), query, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get treatment type: %w", err)
	}
	return &t, nil
}

// ListTreatmentTypes lista los tipos de tratamiento sanitario.
func (r *CatalogRepo) ListTreatmentTypes() ([]*entity.TreatmentType, error) {
	return listNamed[entity.TreatmentType](r.q, `SELECT id, name FROM treatment_types ORDER BY name ASC`,
		func(id, name string) *entity.TreatmentType { return &entity.TreatmentType{ID: id, Name: name} })
}

// ListBreeds lista las razas de ganado.
func (r *CatalogRepo) ListBreeds() ([]*entity.Breed, error) {
	return listNamed[entity.Breed](r.q, `SELECT id, name FROM breeds ORDER BY name ASC`,
		func(id, name string) *entity.Breed { return &entity.Breed{ID: id, Name: name} })
}

// ListSupplyCategories lista las categorías de insumo.
func (r *CatalogRepo) ListSupplyCategories() ([]*entity.SupplyCategory, error) {
	return listNamed[entity.SupplyCategory](r.q, `SELECT id, name FROM supply_categories ORDER BY name ASC`,
		func(id, name string) *entity.SupplyCategory { return &entity.SupplyCategory{ID: id, Name: name} })
}

// listNamed consulta catálogos simples (id, name).
func listNamed[T any](q Querier, query string, build func(id, name string) *T) ([]*T, error) {
	rows, err := q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()
	var list []*T
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		list = append(list, build(id, name))
	}
	return list, rows.Err()
}
