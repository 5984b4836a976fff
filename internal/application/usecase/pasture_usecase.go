package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

// PastureUseCase casos de uso CRUD para potreros.
type PastureUseCase struct {
	repo repository.PastureRepository
}

// NewPastureUseCase construye el caso de uso.
func NewPastureUseCase(repo repository.PastureRepository) *PastureUseCase {
	return &PastureUseCase{repo: repo}
}

// Create crea un potrero.
func (uc *PastureUseCase) Create(farmID string, in dto.CreatePastureRequest) (*dto.PastureResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.AreaHa != nil && !in.AreaHa.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	pasture := &entity.Pasture{
		ID:        uuid.New().String(),
		FarmID:    farmID,
		Name:      in.Name,
		AreaHa:    in.AreaHa,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(pasture); err != nil {
		return nil, err
	}
	return toPastureResponse(pasture), nil
}

// Update actualiza un potrero de la finca.
func (uc *PastureUseCase) Update(farmID, id string, in dto.UpdatePastureRequest) (*dto.PastureResponse, error) {
	pasture, err := uc.ownedPasture(farmID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		pasture.Name = in.Name
	}
	if in.AreaHa != nil {
		if !in.AreaHa.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		pasture.AreaHa = in.AreaHa
	}
	if in.Active != nil {
		pasture.Active = *in.Active
	}
	pasture.UpdatedAt = time.Now()
	if err := uc.repo.Update(pasture); err != nil {
		return nil, err
	}
	return toPastureResponse(pasture), nil
}

// GetByID obtiene un potrero de la finca.
func (uc *PastureUseCase) GetByID(farmID, id string) (*dto.PastureResponse, error) {
	pasture, err := uc.ownedPasture(farmID, id)
	if err != nil {
		return nil, err
	}
	return toPastureResponse(pasture), nil
}

// List lista los potreros de la finca.
func (uc *PastureUseCase) List(farmID string, activeOnly bool) ([]*dto.PastureResponse, error) {
	pastures, err := uc.repo.ListByFarm(farmID, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PastureResponse, 0, len(pastures))
	for _, p := range pastures {
		out = append(out, toPastureResponse(p))
	}
	return out, nil
}

func (uc *PastureUseCase) ownedPasture(farmID, id string) (*entity.Pasture, error) {
	pasture, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pasture == nil || pasture.FarmID != farmID {
		return nil, domain.ErrNotFound
	}
	return pasture, nil
}

func toPastureResponse(p *entity.Pasture) *dto.PastureResponse {
	return &dto.PastureResponse{
		ID:     p.ID,
		Name:   p.Name,
		AreaHa: p.AreaHa,
		Active: p.Active,
	}
}
