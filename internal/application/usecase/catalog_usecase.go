package usecase

import (
	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/repository"
)

// CatalogUseCase expone los catálogos de referencia globales (solo lectura,
// datos semilla compartidos entre fincas).
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// FinanceCategories lista las categorías de un libro (EXPENSE | INCOME).
func (uc *CatalogUseCase) FinanceCategories(ledger string) ([]*dto.FinanceCategoryResponse, error) {
	if ledger != entity.CategoryLedgerExpense && ledger != entity.CategoryLedgerIncome {
		return nil, domain.ErrInvalidInput
	}
	categories, err := uc.repo.ListFinanceCategories(ledger)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FinanceCategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, &dto.FinanceCategoryResponse{ID: c.ID, Ledger: c.Ledger, Name: c.Name})
	}
	return out, nil
}

// Units lista las unidades de medida.
func (uc *CatalogUseCase) Units() ([]*dto.UnitResponse, error) {
	units, err := uc.repo.ListUnits()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, &dto.UnitResponse{ID: u.ID, Name: u.Name, Symbol: u.Symbol})
	}
	return out, nil
}

// TreatmentTypes lista los tipos de tratamiento sanitario.
func (uc *CatalogUseCase) TreatmentTypes() ([]*dto.CatalogEntryResponse, error) {
	types, err := uc.repo.ListTreatmentTypes()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CatalogEntryResponse, 0, len(types))
	for _, t := range types {
		out = append(out, &dto.CatalogEntryResponse{ID: t.ID, Name: t.Name})
	}
	return out, nil
}

// Breeds lista las razas de ganado.
func (uc *CatalogUseCase) Breeds() ([]*dto.CatalogEntryResponse, error) {
	breeds, err := uc.repo.ListBreeds()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CatalogEntryResponse, 0, len(breeds))
	for _, b := range breeds {
		out = append(out, &dto.CatalogEntryResponse{ID: b.ID, Name: b.Name})
	}
	return out, nil
}

// SupplyCategories lista las categorías de insumo.
func (uc *CatalogUseCase) SupplyCategories() ([]*dto.CatalogEntryResponse, error) {
	categories, err := uc.repo.ListSupplyCategories()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CatalogEntryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, &dto.CatalogEntryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}
