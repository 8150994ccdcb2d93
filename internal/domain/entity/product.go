package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible. Para el motor de inventario es
// dato de referencia de solo lectura; el stock vive en InventoryRecord.
type Product struct {
	ID         int64
	CategoryID *int64
	Name       string
	Code       string
	Price      decimal.Decimal
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
