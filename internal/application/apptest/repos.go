package apptest

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AgroGestion-api/internal/domain"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
	"github.com/jhoicas/AgroGestion-api/internal/domain/finance"
)

// ──────────────────────────────────────────────────────────────────────────────
// Insumos y lotes
// ──────────────────────────────────────────────────────────────────────────────

// SupplyItemRepo doble en memoria del repositorio de insumos.
type SupplyItemRepo struct{ s *Store }

// NewSupplyItemRepo crea el doble sobre el Store.
func NewSupplyItemRepo(s *Store) *SupplyItemRepo { return &SupplyItemRepo{s: s} }

func (r *SupplyItemRepo) Create(item *entity.SupplyItem) error {
	r.s.Items[item.ID] = *item
	return nil
}

func (r *SupplyItemRepo) Update(item *entity.SupplyItem) error {
	if _, ok := r.s.Items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Items[item.ID] = *item
	return nil
}

func (r *SupplyItemRepo) GetByID(id string) (*entity.SupplyItem, error) {
	if v, ok := r.s.Items[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *SupplyItemRepo) GetByFarmAndName(farmID, name string) (*entity.SupplyItem, error) {
	for _, v := range r.s.Items {
		if v.FarmID == farmID && v.Name == name {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *SupplyItemRepo) ListByFarm(farmID string, activeOnly bool) ([]*entity.SupplyItem, error) {
	var out []*entity.SupplyItem
	for _, v := range r.s.Items {
		if v.FarmID != farmID || (activeOnly && !v.Active) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// BatchRepo doble en memoria del repositorio de lotes.
type BatchRepo struct{ s *Store }

// NewBatchRepo crea el doble sobre el Store.
func NewBatchRepo(s *Store) *BatchRepo { return &BatchRepo{s: s} }

func (r *BatchRepo) Create(batch *entity.Batch) error {
	r.s.Batches[batch.ID] = *batch
	return nil
}

func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	if v, ok := r.s.Batches[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *BatchRepo) FindByItemAndCode(supplyItemID, code string) (*entity.Batch, error) {
	for _, v := range r.s.Batches {
		if v.SupplyItemID == supplyItemID && v.Code != nil && *v.Code == code {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *BatchRepo) FindByItemAndExpiration(supplyItemID string, expiration time.Time) (*entity.Batch, error) {
	for _, v := range r.s.Batches {
		if v.SupplyItemID == supplyItemID && v.Code == nil &&
			v.ExpirationDate != nil && v.ExpirationDate.Equal(expiration) {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *BatchRepo) ListByItem(supplyItemID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, v := range r.s.Batches {
		if v.SupplyItemID == supplyItemID {
			v := v
			out = append(out, &v)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

// StockMovementRepo doble en memoria del libro de movimientos.
// LockStockKey es un no-op: en memoria no hay concurrencia que serializar.
type StockMovementRepo struct{ s *Store }

// NewStockMovementRepo crea el doble sobre el Store.
func NewStockMovementRepo(s *Store) *StockMovementRepo { return &StockMovementRepo{s: s} }

func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if r.s.MovementCreateErr != nil {
		return r.s.MovementCreateErr
	}
	r.s.Movements[m.ID] = *m
	return nil
}

func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	if v, ok := r.s.Movements[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *StockMovementRepo) Delete(id string) error {
	delete(r.s.Movements, id)
	return nil
}

func (r *StockMovementRepo) SumByItem(farmID string, batchID *string) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	for _, m := range r.s.Movements {
		if m.FarmID != farmID || !matchBatch(m.BatchID, batchID) {
			continue
		}
		out[m.SupplyItemID] = out[m.SupplyItemID].Add(m.Quantity)
	}
	return out, nil
}

func (r *StockMovementRepo) SumForItem(farmID, supplyItemID string, batchID *string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.s.Movements {
		if m.FarmID != farmID || m.SupplyItemID != supplyItemID || !matchBatch(m.BatchID, batchID) {
			continue
		}
		total = total.Add(m.Quantity)
	}
	return total, nil
}

func (r *StockMovementRepo) ListPurchases(supplyItemID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.Movements {
		if m.SupplyItemID == supplyItemID && m.Kind == entity.MovementKindPurchase {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *StockMovementRepo) ListByItem(farmID, supplyItemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.Movements {
		if m.FarmID != farmID || m.SupplyItemID != supplyItemID {
			continue
		}
		if from != nil && m.Date.Before(*from) {
			continue
		}
		if to != nil && m.Date.After(*to) {
			continue
		}
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

func (r *StockMovementRepo) LockStockKey(farmID, supplyItemID string, batchID *string) error {
	return nil
}

// matchBatch replica la semántica SQL: filtrar por lote solo si se indica uno.
func matchBatch(movBatch, want *string) bool {
	if want == nil {
		return true
	}
	return movBatch != nil && *movBatch == *want
}

// ──────────────────────────────────────────────────────────────────────────────
// Libros financieros
// ──────────────────────────────────────────────────────────────────────────────

// ExpenseRepo doble en memoria del libro de gastos. Replica la restricción
// de unicidad parcial sobre (módulo, referencia) de los asientos automáticos.
type ExpenseRepo struct{ s *Store }

// NewExpenseRepo crea el doble sobre el Store.
func NewExpenseRepo(s *Store) *ExpenseRepo { return &ExpenseRepo{s: s} }

func (r *ExpenseRepo) Create(e *entity.Expense) error {
	if r.s.ExpenseCreateErr != nil {
		return r.s.ExpenseCreateErr
	}
	if e.Automatic && e.Origin != nil {
		for _, v := range r.s.Expenses {
			if v.Automatic && v.Origin != nil && *v.Origin == *e.Origin {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.Expenses[e.ID] = *e
	return nil
}

func (r *ExpenseRepo) Update(e *entity.Expense) error {
	if _, ok := r.s.Expenses[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Expenses[e.ID] = *e
	return nil
}

func (r *ExpenseRepo) Delete(id string) error {
	delete(r.s.Expenses, id)
	return nil
}

func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	if v, ok := r.s.Expenses[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *ExpenseRepo) GetByOrigin(origin finance.OriginRef) (*entity.Expense, error) {
	for _, v := range r.s.Expenses {
		if v.Automatic && v.Origin != nil && *v.Origin == origin {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *ExpenseRepo) DeleteByOrigin(origin finance.OriginRef) (int64, error) {
	var n int64
	for id, v := range r.s.Expenses {
		if v.Automatic && v.Origin != nil && *v.Origin == origin {
			delete(r.s.Expenses, id)
			n++
		}
	}
	return n, nil
}

func (r *ExpenseRepo) ListByFarm(farmID string, from, to *time.Time, limit, offset int) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, v := range r.s.Expenses {
		if v.FarmID != farmID {
			continue
		}
		if from != nil && v.Date.Before(*from) {
			continue
		}
		if to != nil && v.Date.After(*to) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

// IncomeRepo doble en memoria del libro de ingresos.
type IncomeRepo struct{ s *Store }

// NewIncomeRepo crea el doble sobre el Store.
func NewIncomeRepo(s *Store) *IncomeRepo { return &IncomeRepo{s: s} }

func (r *IncomeRepo) Create(e *entity.Income) error {
	if r.s.IncomeCreateErr != nil {
		return r.s.IncomeCreateErr
	}
	if e.Automatic && e.Origin != nil {
		for _, v := range r.s.Incomes {
			if v.Automatic && v.Origin != nil && *v.Origin == *e.Origin {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.Incomes[e.ID] = *e
	return nil
}

func (r *IncomeRepo) Update(e *entity.Income) error {
	if _, ok := r.s.Incomes[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Incomes[e.ID] = *e
	return nil
}

func (r *IncomeRepo) Delete(id string) error {
	delete(r.s.Incomes, id)
	return nil
}

func (r *IncomeRepo) GetByID(id string) (*entity.Income, error) {
	if v, ok := r.s.Incomes[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *IncomeRepo) GetByOrigin(origin finance.OriginRef) (*entity.Income, error) {
	for _, v := range r.s.Incomes {
		if v.Automatic && v.Origin != nil && *v.Origin == origin {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *IncomeRepo) DeleteByOrigin(origin finance.OriginRef) (int64, error) {
	var n int64
	for id, v := range r.s.Incomes {
		if v.Automatic && v.Origin != nil && *v.Origin == origin {
			delete(r.s.Incomes, id)
			n++
		}
	}
	return n, nil
}

func (r *IncomeRepo) ListByFarm(farmID string, from, to *time.Time, limit, offset int) ([]*entity.Income, error) {
	var out []*entity.Income
	for _, v := range r.s.Incomes {
		if v.FarmID != farmID {
			continue
		}
		if from != nil && v.Date.Before(*from) {
			continue
		}
		if to != nil && v.Date.After(*to) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Ganado
// ──────────────────────────────────────────────────────────────────────────────

// AnimalRepo doble en memoria del repositorio de animales.
type AnimalRepo struct{ s *Store }

// NewAnimalRepo crea el doble sobre el Store.
func NewAnimalRepo(s *Store) *AnimalRepo { return &AnimalRepo{s: s} }

func (r *AnimalRepo) Create(a *entity.Animal) error {
	r.s.Animals[a.ID] = *a
	return nil
}

func (r *AnimalRepo) Update(a *entity.Animal) error {
	if _, ok := r.s.Animals[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Animals[a.ID] = *a
	return nil
}

func (r *AnimalRepo) Delete(id string) error {
	delete(r.s.Animals, id)
	return nil
}

func (r *AnimalRepo) GetByID(id string) (*entity.Animal, error) {
	if v, ok := r.s.Animals[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *AnimalRepo) GetByFarmAndTag(farmID, tag string) (*entity.Animal, error) {
	if r.s.AnimalFindErr != nil {
		return nil, r.s.AnimalFindErr
	}
	for _, v := range r.s.Animals {
		if v.FarmID == farmID && v.Tag == tag {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *AnimalRepo) ListByFarm(farmID, state string, limit, offset int) ([]*entity.Animal, error) {
	var out []*entity.Animal
	for _, v := range r.s.Animals {
		if v.FarmID != farmID || (state != "" && v.State != state) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return paginate(out, limit, offset), nil
}

// MortalityRepo doble en memoria del repositorio de mortalidad.
type MortalityRepo struct{ s *Store }

// NewMortalityRepo crea el doble sobre el Store.
func NewMortalityRepo(s *Store) *MortalityRepo { return &MortalityRepo{s: s} }

func (r *MortalityRepo) Create(m *entity.Mortality) error {
	r.s.Mortalities[m.ID] = *m
	return nil
}

func (r *MortalityRepo) Delete(id string) error {
	delete(r.s.Mortalities, id)
	return nil
}

func (r *MortalityRepo) GetByID(id string) (*entity.Mortality, error) {
	if v, ok := r.s.Mortalities[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *MortalityRepo) ListByFarm(farmID string, limit, offset int) ([]*entity.Mortality, error) {
	var out []*entity.Mortality
	for _, v := range r.s.Mortalities {
		a, ok := r.s.Animals[v.AnimalID]
		if !ok || a.FarmID != farmID {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

// TreatmentRepo doble en memoria del repositorio de tratamientos.
type TreatmentRepo struct{ s *Store }

// NewTreatmentRepo crea el doble sobre el Store.
func NewTreatmentRepo(s *Store) *TreatmentRepo { return &TreatmentRepo{s: s} }

func (r *TreatmentRepo) Create(t *entity.Treatment) error {
	r.s.Treatments[t.ID] = *t
	return nil
}

func (r *TreatmentRepo) Delete(id string) error {
	delete(r.s.Treatments, id)
	return nil
}

func (r *TreatmentRepo) GetByID(id string) (*entity.Treatment, error) {
	if v, ok := r.s.Treatments[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *TreatmentRepo) ListByFarm(farmID string, limit, offset int) ([]*entity.Treatment, error) {
	var out []*entity.Treatment
	for _, v := range r.s.Treatments {
		if v.FarmID != farmID {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

// WeighingRepo doble en memoria del repositorio de pesajes.
type WeighingRepo struct{ s *Store }

// NewWeighingRepo crea el doble sobre el Store.
func NewWeighingRepo(s *Store) *WeighingRepo { return &WeighingRepo{s: s} }

func (r *WeighingRepo) Create(w *entity.Weighing) error {
	r.s.Weighings[w.ID] = *w
	return nil
}

func (r *WeighingRepo) Delete(id string) error {
	delete(r.s.Weighings, id)
	return nil
}

func (r *WeighingRepo) GetByID(id string) (*entity.Weighing, error) {
	if v, ok := r.s.Weighings[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *WeighingRepo) ListByAnimal(animalID string) ([]*entity.Weighing, error) {
	var out []*entity.Weighing
	for _, v := range r.s.Weighings {
		if v.AnimalID == animalID {
			v := v
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *WeighingRepo) DeleteByAnimal(animalID string) error {
	for id, v := range r.s.Weighings {
		if v.AnimalID == animalID {
			delete(r.s.Weighings, id)
		}
	}
	return nil
}

// PastureRepo doble en memoria del repositorio de potreros.
type PastureRepo struct{ s *Store }

// NewPastureRepo crea el doble sobre el Store.
func NewPastureRepo(s *Store) *PastureRepo { return &PastureRepo{s: s} }

func (r *PastureRepo) Create(p *entity.Pasture) error {
	r.s.Pastures[p.ID] = *p
	return nil
}

func (r *PastureRepo) Update(p *entity.Pasture) error {
	if _, ok := r.s.Pastures[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Pastures[p.ID] = *p
	return nil
}

func (r *PastureRepo) GetByID(id string) (*entity.Pasture, error) {
	if v, ok := r.s.Pastures[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *PastureRepo) ListByFarm(farmID string, activeOnly bool) ([]*entity.Pasture, error) {
	var out []*entity.Pasture
	for _, v := range r.s.Pastures {
		if v.FarmID != farmID || (activeOnly && !v.Active) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// FarmRepo doble en memoria del repositorio de fincas.
type FarmRepo struct{ s *Store }

// NewFarmRepo crea el doble sobre el Store.
func NewFarmRepo(s *Store) *FarmRepo { return &FarmRepo{s: s} }

func (r *FarmRepo) Create(f *entity.Farm) error {
	r.s.Farms[f.ID] = *f
	return nil
}

func (r *FarmRepo) Update(f *entity.Farm) error {
	if _, ok := r.s.Farms[f.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Farms[f.ID] = *f
	return nil
}

func (r *FarmRepo) GetByID(id string) (*entity.Farm, error) {
	if v, ok := r.s.Farms[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *FarmRepo) List() ([]*entity.Farm, error) {
	var out []*entity.Farm
	for _, v := range r.s.Farms {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogos
// ──────────────────────────────────────────────────────────────────────────────

// CatalogRepo doble en memoria de los catálogos de referencia.
type CatalogRepo struct{ s *Store }

// NewCatalogRepo crea el doble sobre el Store.
func NewCatalogRepo(s *Store) *CatalogRepo { return &CatalogRepo{s: s} }

func (r *CatalogRepo) FindFinanceCategory(ledger, name string) (*entity.FinanceCategory, error) {
	for _, c := range r.s.Categories {
		if c.Ledger == ledger && c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CatalogRepo) ListFinanceCategories(ledger string) ([]*entity.FinanceCategory, error) {
	var out []*entity.FinanceCategory
	for _, c := range r.s.Categories {
		if c.Ledger == ledger {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *CatalogRepo) ListUnits() ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, u := range r.s.Units {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

func (r *CatalogRepo) GetTreatmentType(id string) (*entity.TreatmentType, error) {
	if v, ok := r.s.TreatmentTypes[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *CatalogRepo) ListTreatmentTypes() ([]*entity.TreatmentType, error) {
	var out []*entity.TreatmentType
	for _, v := range r.s.TreatmentTypes {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CatalogRepo) ListBreeds() ([]*entity.Breed, error) {
	var out []*entity.Breed
	for _, b := range r.s.Breeds {
		b := b
		out = append(out, &b)
	}
	return out, nil
}

func (r *CatalogRepo) ListSupplyCategories() ([]*entity.SupplyCategory, error) {
	var out []*entity.SupplyCategory
	for _, c := range r.s.SupplyCats {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func paginate[T any](in []*T, limit, offset int) []*T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && len(in) > limit {
		in = in[:limit]
	}
	return in
}
