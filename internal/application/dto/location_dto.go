package dto

import "time"

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name     string `json:"name"`
	Capacity *int64 `json:"capacity,omitempty"` // nil = sin tope
}

// UpdateLocationRequest body para PUT /api/locations/:id.
type UpdateLocationRequest struct {
	Name     *string `json:"name,omitempty"`
	Capacity *int64  `json:"capacity,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// LocationResponse representación de ubicación en respuestas.
type LocationResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	Capacity  *int64    `json:"capacity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse listado paginado de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
