package inventory_test

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria para los tests del motor
// ──────────────────────────────────────────────────────────────────────────────

// memStore implementa InventoryRepository y MovementRepository sobre mapas.
// Reproduce el contrato del repositorio real: los Get devuelven nil si la
// fila no existe, Insert asigna id y los ForUpdate registran el orden de
// bloqueo para poder verificarlo en los tests de traslado.
type memStore struct {
	nextID    int64
	records   map[int64]*entity.InventoryRecord
	movements []*entity.Movement

	// ids de ubicación en el orden en que se pidieron con ForUpdate
	lockOrder []int64

	// errores inyectables para forzar rollback a mitad de transacción
	failOnMovement error
}

func newMemStore() *memStore {
	return &memStore{records: map[int64]*entity.InventoryRecord{}}
}

func (s *memStore) findByPair(productID, locationID int64) *entity.InventoryRecord {
	for _, rec := range s.records {
		if rec.ProductID == productID && rec.LocationID == locationID {
			return rec
		}
	}
	return nil
}

func copyRecord(rec *entity.InventoryRecord) *entity.InventoryRecord {
	if rec == nil {
		return nil
	}
	cp := *rec
	if rec.ReorderMin != nil {
		v := *rec.ReorderMin
		cp.ReorderMin = &v
	}
	if rec.ReorderMax != nil {
		v := *rec.ReorderMax
		cp.ReorderMax = &v
	}
	return &cp
}

func (s *memStore) GetByPair(productID, locationID int64) (*entity.InventoryRecord, error) {
	return copyRecord(s.findByPair(productID, locationID)), nil
}

func (s *memStore) GetByPairForUpdate(productID, locationID int64) (*entity.InventoryRecord, error) {
	s.lockOrder = append(s.lockOrder, locationID)
	return copyRecord(s.findByPair(productID, locationID)), nil
}

func (s *memStore) GetByID(id int64) (*entity.InventoryRecord, error) {
	return copyRecord(s.records[id]), nil
}

func (s *memStore) GetByIDForUpdate(id int64) (*entity.InventoryRecord, error) {
	return copyRecord(s.records[id]), nil
}

func (s *memStore) Insert(record *entity.InventoryRecord) error {
	s.nextID++
	record.ID = s.nextID
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	s.records[record.ID] = copyRecord(record)
	return nil
}

func (s *memStore) Update(record *entity.InventoryRecord) error {
	record.UpdatedAt = time.Now()
	s.records[record.ID] = copyRecord(record)
	return nil
}

func (s *memStore) List(filter repository.InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range s.records {
		if filter.ProductID != nil && rec.ProductID != *filter.ProductID {
			continue
		}
		if filter.LocationID != nil && rec.LocationID != *filter.LocationID {
			continue
		}
		out = append(out, copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) Create(movement *entity.Movement) error {
	if s.failOnMovement != nil {
		return s.failOnMovement
	}
	if movement.ID == "" {
		movement.ID = "mov-" + strconv.Itoa(len(s.movements)+1)
	}
	movement.CreatedAt = time.Now()
	cp := *movement
	s.movements = append(s.movements, &cp)
	return nil
}

func (s *memStore) ListMovements(filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, mov := range s.movements {
		if filter.ProductID != nil && mov.ProductID != *filter.ProductID {
			continue
		}
		cp := *mov
		out = append(out, &cp)
	}
	return out, nil
}

// movList adapta memStore a MovementRepository (List choca con el List de
// inventario, por eso el wrapper).
type movList struct{ s *memStore }

func (m movList) Create(movement *entity.Movement) error { return m.s.Create(movement) }
func (m movList) List(filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	return m.s.ListMovements(filter, limit, offset)
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner en memoria con rollback real
// ──────────────────────────────────────────────────────────────────────────────

// memTxRunner toma una copia del estado antes de ejecutar fn y lo restaura
// si fn devuelve error, igual que el Rollback de la transacción real.
type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(repository.InventoryRepository, repository.MovementRepository) error) error {
	snapRecords := make(map[int64]*entity.InventoryRecord, len(r.store.records))
	for id, rec := range r.store.records {
		snapRecords[id] = copyRecord(rec)
	}
	snapMovs := make([]*entity.Movement, len(r.store.movements))
	copy(snapMovs, r.store.movements)
	snapNextID := r.store.nextID

	if err := fn(r.store, movList{r.store}); err != nil {
		r.store.records = snapRecords
		r.store.movements = snapMovs
		r.store.nextID = snapNextID
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios de referencia (productos y ubicaciones)
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct{ products map[int64]*entity.Product }

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id int64) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}
func (r *memProductRepo) Delete(id int64) error { delete(r.products, id); return nil }

type memLocationRepo struct{ locations map[int64]*entity.Location }

func (r *memLocationRepo) Create(l *entity.Location) error { r.locations[l.ID] = l; return nil }
func (r *memLocationRepo) GetByID(id int64) (*entity.Location, error) {
	return r.locations[id], nil
}
func (r *memLocationRepo) Update(l *entity.Location) error { r.locations[l.ID] = l; return nil }
func (r *memLocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.locations {
		out = append(out, l)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func int64p(v int64) *int64 { return &v }

// fixture arma el motor con un producto (id 1) y dos ubicaciones activas
// (id 1 sin tope, id 2 con capacidad 100). Los tests agregan lo que falte.
type fixture struct {
	store     *memStore
	products  *memProductRepo
	locations *memLocationRepo
}

func newFixture() *fixture {
	return &fixture{
		store: newMemStore(),
		products: &memProductRepo{products: map[int64]*entity.Product{
			1: {ID: 1, Name: "Tornillo 3mm", Code: "TOR-003", Price: decimal.NewFromInt(120), Active: true},
		}},
		locations: &memLocationRepo{locations: map[int64]*entity.Location{
			1: {ID: 1, Name: "Bodega central", Active: true},
			2: {ID: 2, Name: "Sucursal norte", Active: true, Capacity: int64p(100)},
		}},
	}
}
