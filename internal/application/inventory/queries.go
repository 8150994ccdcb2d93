package inventory

import (
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// QueryUseCase lecturas de existencias y bitácora fuera de transacción.
// Lecturas repetidas entre mutaciones devuelven el mismo estado confirmado.
type QueryUseCase struct {
	invRepo repository.InventoryRepository
	movRepo repository.MovementRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(invRepo repository.InventoryRepository, movRepo repository.MovementRepository) *QueryUseCase {
	return &QueryUseCase{invRepo: invRepo, movRepo: movRepo}
}

// Get obtiene una fila de existencias por id.
func (uc *QueryUseCase) Get(id int64) (*entity.InventoryRecord, error) {
	rec, err := uc.invRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NotFound("inventario %d no encontrado", id)
	}
	return rec, nil
}

// List lista existencias con filtros opcionales por producto y ubicación.
func (uc *QueryUseCase) List(filter repository.InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error) {
	return uc.invRepo.List(filter, limit, offset)
}

// Movements consulta la bitácora con filtros opcionales.
func (uc *QueryUseCase) Movements(filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.List(filter, limit, offset)
}
