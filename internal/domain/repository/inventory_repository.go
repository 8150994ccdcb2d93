package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// InventoryFilter filtros opcionales para listar existencias.
type InventoryFilter struct {
	ProductID  *int64
	LocationID *int64
}

// InventoryRepository define el puerto para las filas de existencias por
// par (producto, ubicación). Los métodos ForUpdate bloquean la fila
// (SELECT FOR UPDATE) y devuelven nil si no existe; solo tienen sentido
// dentro de una transacción.
type InventoryRepository interface {
	GetByPair(productID, locationID int64) (*entity.InventoryRecord, error)
	GetByPairForUpdate(productID, locationID int64) (*entity.InventoryRecord, error)
	GetByID(id int64) (*entity.InventoryRecord, error)
	GetByIDForUpdate(id int64) (*entity.InventoryRecord, error)
	Insert(record *entity.InventoryRecord) error
	Update(record *entity.InventoryRecord) error
	List(filter InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error)
}
