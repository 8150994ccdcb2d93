package dto

import "time"

// AdjustRequest body para POST /api/inventory/adjust.
type AdjustRequest struct {
	ProductID  int64  `json:"product_id"`
	LocationID int64  `json:"location_id"`
	Quantity   int64  `json:"quantity"` // con signo, nunca cero
	Reason     string `json:"reason"`
}

// CreateInventoryRequest body para POST /api/inventory.
type CreateInventoryRequest struct {
	ProductID  int64  `json:"product_id"`
	LocationID int64  `json:"location_id"`
	Quantity   int64  `json:"quantity"`
	ReorderMin *int64 `json:"reorder_min,omitempty"`
	ReorderMax *int64 `json:"reorder_max,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// EditInventoryRequest body para PUT /api/inventory/:id. Quantity se declara
// solo para rechazar explícitamente peticiones que intenten mutar la cantidad
// por esta vía.
type EditInventoryRequest struct {
	ReorderMin *int64 `json:"reorder_min,omitempty"`
	ReorderMax *int64 `json:"reorder_max,omitempty"`
	LocationID *int64 `json:"location_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Quantity   *int64 `json:"quantity,omitempty"`
}

// TransferRequest body para POST /api/inventory/transfer.
type TransferRequest struct {
	ProductID             int64  `json:"product_id"`
	OriginLocationID      int64  `json:"origin_location_id"`
	DestinationLocationID int64  `json:"destination_location_id"`
	Quantity              int64  `json:"quantity"` // > 0
	Reason                string `json:"reason"`
}

// InventoryResponse representación de una fila de existencias.
type InventoryResponse struct {
	ID         int64  `json:"id"`
	ProductID  int64  `json:"product_id"`
	LocationID int64  `json:"location_id"`
	Quantity   int64  `json:"quantity"`
	ReorderMin *int64 `json:"reorder_min,omitempty"`
	ReorderMax *int64 `json:"reorder_max,omitempty"`
}

// AdjustResponse resultado de un ajuste.
type AdjustResponse struct {
	ProductID  int64 `json:"product_id"`
	LocationID int64 `json:"location_id"`
	Quantity   int64 `json:"quantity"` // cantidad resultante
}

// InventoryListResponse listado paginado de existencias.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// MovementResponse entrada de la bitácora en respuestas.
type MovementResponse struct {
	ID                    string    `json:"id"`
	ProductID             int64     `json:"product_id"`
	OriginLocationID      *int64    `json:"origin_location_id,omitempty"`
	DestinationLocationID *int64    `json:"destination_location_id,omitempty"`
	Kind                  string    `json:"kind"`
	Quantity              int64     `json:"quantity"`
	Reason                string    `json:"reason"`
	Actor                 string    `json:"actor"`
	CreatedAt             time.Time `json:"created_at"`
}

// MovementListResponse listado paginado de la bitácora.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
