package entity

import "time"

// InventoryRecord representa la existencia de un producto en una ubicación.
// A lo sumo una fila por par (producto, ubicación); la cantidad nunca es
// negativa y la fila no se elimina al llegar a cero.
type InventoryRecord struct {
	ID         int64
	ProductID  int64
	LocationID int64
	Quantity   int64
	ReorderMin *int64 // umbrales opcionales para reportes; solo se exige min <= max
	ReorderMax *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
