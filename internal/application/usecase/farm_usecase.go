package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

// FarmUseCase casos de uso para fincas (raíz multi-tenant). El alta de fincas
// es una operación de administración, no filtra por tenant.
type FarmUseCase struct {
	repo repository.FarmRepository
}

// NewFarmUseCase construye el caso de uso.
func NewFarmUseCase(repo repository.FarmRepository) *FarmUseCase {
	return &FarmUseCase{repo: repo}
}

// Create crea una finca.
func (uc *FarmUseCase) Create(in dto.CreateFarmRequest) (*dto.FarmResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	farm := &entity.Farm{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		OwnerName: in.OwnerName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(farm); err != nil {
		return nil, err
	}
	return toFarmResponse(farm), nil
}

// Update actualiza los datos de una finca.
func (uc *FarmUseCase) Update(id string, in dto.UpdateFarmRequest) (*dto.FarmResponse, error) {
	farm, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if farm == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		farm.Name = in.Name
	}
	if in.Location != "" {
		farm.Location = in.Location
	}
	if in.OwnerName != "" {
		farm.OwnerName = in.OwnerName
	}
	farm.UpdatedAt = time.Now()
	if err := uc.repo.Update(farm); err != nil {
		return nil, err
	}
	return toFarmResponse(farm), nil
}

// GetByID obtiene una finca.
func (uc *FarmUseCase) GetByID(id string) (*dto.FarmResponse, error) {
	farm, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if farm == nil {
		return nil, domain.ErrNotFound
	}
	return toFarmResponse(farm), nil
}

// List lista todas las fincas.
func (uc *FarmUseCase) List() ([]*dto.FarmResponse, error) {
	farms, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FarmResponse, 0, len(farms))
	for _, f := range farms {
		out = append(out, toFarmResponse(f))
	}
	return out, nil
}

func toFarmResponse(f *entity.Farm) *dto.FarmResponse {
	return &dto.FarmResponse{
		ID:        f.ID,
		Name:      f.Name,
		Location:  f.Location,
		OwnerName: f.OwnerName,
	}
}
