package repository

import "github.com/jhoicas/AgroGestion-api/internal/domain/entity"

// AnimalRepository define el puerto de persistencia para animales.
type AnimalRepository interface {
	Create(animal *entity.Animal) error
	Update(animal *entity.Animal) error
	Delete(id string) error
	GetByID(id string) (*entity.Animal, error)
	GetByFarmAndTag(farmID, tag string) (*entity.Animal, error)
	// ListByFarm filtra por estado si state != "".
	ListByFarm(farmID, state string, limit, offset int) ([]*entity.Animal, error)
}

// MortalityRepository define el puerto de persistencia para registros de mortalidad.
// La pertenencia a la finca se valida a través del animal referenciado.
type MortalityRepository interface {
	Create(mortality *entity.Mortality) error
	Delete(id string) error
	GetByID(id string) (*entity.Mortality, error)
	ListByFarm(farmID string, limit, offset int) ([]*entity.Mortality, error)
}

// TreatmentRepository define el puerto de persistencia para tratamientos.
type TreatmentRepository interface {
	Create(treatment *entity.Treatment) error
	Delete(id string) error
	GetByID(id string) (*entity.Treatment, error)
	ListByFarm(farmID string, limit, offset int) ([]*entity.Treatment, error)
}

// WeighingRepository define el puerto de persistencia para pesajes.
type WeighingRepository interface {
	Create(weighing *entity.Weighing) error
	Delete(id string) error
	GetByID(id string) (*entity.Weighing, error)
	ListByAnimal(animalID string) ([]*entity.Weighing, error)
	// DeleteByAnimal elimina todos los pesajes de un animal (al borrar el animal).
	DeleteByAnimal(animalID string) error
}

// PastureRepository define el puerto de persistencia para potreros.
type PastureRepository interface {
	Create(pasture *entity.Pasture) error
	Update(pasture *entity.Pasture) error
	GetByID(id string) (*entity.Pasture, error)
	ListByFarm(farmID string, activeOnly bool) ([]*entity.Pasture, error)
}

// FarmRepository define el puerto de persistencia para fincas (raíz tenant).
type FarmRepository interface {
	Create(farm *entity.Farm) error
	Update(farm *entity.Farm) error
	GetByID(id string) (*entity.Farm, error)
	List() ([]*entity.Farm, error)
}
