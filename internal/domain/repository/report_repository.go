package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReportRow fila denormalizada del reporte de existencias.
type StockReportRow struct {
	ProductID    int64
	ProductCode  string
	ProductName  string
	Price        decimal.Decimal
	LocationID   int64
	LocationName string
	Quantity     int64
	ReorderMin   *int64
	ReorderMax   *int64
}

// MovementReportRow fila denormalizada de la bitácora para exportes.
type MovementReportRow struct {
	MovementID      string
	ProductCode     string
	ProductName     string
	OriginName      string // vacío si no aplica
	DestinationName string // vacío si no aplica
	Kind            string
	Quantity        int64
	Reason          string
	Actor           string
	CreatedAt       time.Time
}

// ReportRepository consultas de solo lectura sobre existencias y bitácora.
// No muta estado: agrega sobre las filas que escribe el motor.
type ReportRepository interface {
	Stock(locationID *int64) ([]StockReportRow, error)
	LowStock() ([]StockReportRow, error)
	MovementHistory(filter MovementFilter, limit, offset int) ([]MovementReportRow, error)
}
