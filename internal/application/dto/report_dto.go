package dto

import "github.com/shopspring/decimal"

// StockReportItem fila del reporte de existencias.
type StockReportItem struct {
	ProductID    int64           `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	Price        decimal.Decimal `json:"price"`
	LocationID   int64           `json:"location_id"`
	LocationName string          `json:"location_name"`
	Quantity     int64           `json:"quantity"`
	ReorderMin   *int64          `json:"reorder_min,omitempty"`
	ReorderMax   *int64          `json:"reorder_max,omitempty"`
	BelowMin     bool            `json:"below_min"`
}

// StockReportResponse reporte de existencias.
type StockReportResponse struct {
	Total int               `json:"total"`
	Items []StockReportItem `json:"items"`
}
