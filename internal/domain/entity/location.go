package entity

import "time"

// Location representa un punto físico de almacenamiento. El motor de
// inventario la trata como referencia de solo lectura: valida existencia,
// el flag activo y la capacidad opcional (tope de unidades por ubicación).
type Location struct {
	ID        int64
	Name      string
	Active    bool
	Capacity  *int64 // nil = sin tope
	CreatedAt time.Time
	UpdatedAt time.Time
}
