package report

import "github.com/jhoicas/almacen-api/internal/domain/repository"

// MovementExporter genera un archivo XLSX con filas de la bitácora.
type MovementExporter interface {
	ExportMovements(rows []repository.MovementReportRow) ([]byte, error)
}

// StockPDFGenerator genera el PDF del reporte de existencias.
type StockPDFGenerator interface {
	GenerateStockReport(rows []repository.StockReportRow) ([]byte, error)
}
