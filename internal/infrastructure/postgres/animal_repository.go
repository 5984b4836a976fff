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

var _ repository.AnimalRepository = (*AnimalRepo)(nil)

// AnimalRepo implementación de AnimalRepository sobre PostgreSQL (usable con pool o tx).
type AnimalRepo struct {
	q Querier
}

// NewAnimalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnimalRepository(q Querier) *AnimalRepo {
	return &AnimalRepo{q: q}
}

const animalColumns = `id, farm_id, tag, name, sex, breed_id, birth_date, birth_weight, purchase_cost, state, sale_date, sale_price, mother_id, father_id, lot_id, created_at, updated_at`

// Create persiste un animal. La caravana es única por finca.
func (r *AnimalRepo) Create(animal *entity.Animal) error {
	query := `
		INSERT INTO animals (` + animalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		animal.ID, animal.FarmID, animal.Tag, animal.Name, animal.Sex, animal.BreedID,
		animal.BirthDate, animal.BirthWeight, animal.PurchaseCost, animal.State,
		animal.SaleDate, animal.SalePrice, animal.MotherID, animal.FatherID, animal.LotID,
		animal.CreatedAt, animal.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert animal: %w", err)
	}
	return nil
}

// Update actualiza un animal (estado, venta, asignación de potrero...).
func (r *AnimalRepo) Update(animal *entity.Animal) error {
	query := `
		UPDATE animals
		SET tag = $2, name = $3, sex = $4, breed_id = $5, birth_date = $6, birth_weight = $7,
		    purchase_cost = $8, state = $9, sale_date = $10, sale_price = $11,
		    mother_id = $12, father_id = $13, lot_id = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		animal.ID, animal.Tag, animal.Name, animal.Sex, animal.BreedID,
		animal.BirthDate, animal.BirthWeight, animal.PurchaseCost, animal.State,
		animal.SaleDate, animal.SalePrice, animal.MotherID, animal.FatherID, animal.LotID,
		animal.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update animal: %w", err)
	}
	return nil
}

// Delete elimina un animal.
func (r *AnimalRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete animal: %w", err)
	}
	return nil
}

// GetByID obtiene un animal por ID.
func (r *AnimalRepo) GetByID(id string) (*entity.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE id = $1`
	animal, err := scanAnimal(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get animal: %w", err)
	}
	return animal, nil
}

// GetByFarmAndTag busca un animal por caravana dentro de la finca.
func (r *AnimalRepo) GetByFarmAndTag(farmID, tag string) (*entity.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE farm_id = $1 AND tag = $2`
	animal, err := scanAnimal(r.q.QueryRow(context.Background(), query, farmID, tag))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get animal by tag: %w", err)
	}
	return animal, nil
}

// ListByFarm lista los animales de la finca, filtrando por estado si state != "".
func (r *AnimalRepo) ListByFarm(farmID, state string, limit, offset int) ([]*entity.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE farm_id = $1`
	args := []any{farmID}
	pos := 2
	if state != "" {
		query += fmt.Sprintf(" AND state = $%d", pos)
		args = append(args, state)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY tag ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Animal
	for rows.Next() {
		animal, err := scanAnimal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan animal: %w", err)
		}
		list = append(list, animal)
	}
	return list, rows.Err()
}

func scanAnimal(row pgx.Row) (*entity.Animal, error) {
	var a entity.Animal
	err := row.Scan(
		&a.ID, &a.FarmID, &a.Tag, &a.Name, &a.Sex, &a.BreedID, &a.BirthDate,
		&a.BirthWeight, &a.PurchaseCost, &a.State, &a.SaleDate, &a.SalePrice,
		&a.MotherID, &a.FatherID, &a.LotID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
