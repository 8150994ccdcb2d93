package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para consultar la bitácora.
type MovementFilter struct {
	ProductID  *int64
	LocationID *int64 // coincide con origen o destino
	Kind       string // vacío = todos
	From       *time.Time
	To         *time.Time
}

// MovementRepository define el puerto de la bitácora. Solo inserción y
// lectura: los movimientos nunca se actualizan ni se borran.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	List(filter MovementFilter, limit, offset int) ([]*entity.Movement, error)
}
