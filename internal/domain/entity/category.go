package entity

import "time"

// Category agrupa productos (CRUD plano, sin invariantes más allá del nombre único).
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
