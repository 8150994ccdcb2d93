package report

import (
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase consultas de reporte sobre existencias y bitácora. Solo lectura:
// agrega sobre lo que el motor de inventario ya dejó confirmado.
type UseCase struct {
	repo     repository.ReportRepository
	exporter MovementExporter
	pdfGen   StockPDFGenerator
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(repo repository.ReportRepository, exporter MovementExporter, pdfGen StockPDFGenerator) *UseCase {
	return &UseCase{repo: repo, exporter: exporter, pdfGen: pdfGen}
}

// Stock devuelve el reporte de existencias, opcionalmente filtrado por
// ubicación, marcando las filas por debajo de su umbral mínimo.
func (uc *UseCase) Stock(locationID *int64) (*dto.StockReportResponse, error) {
	rows, err := uc.repo.Stock(locationID)
	if err != nil {
		return nil, err
	}
	return toStockResponse(rows), nil
}

// LowStock devuelve solo las filas por debajo de su reorder_min.
func (uc *UseCase) LowStock() (*dto.StockReportResponse, error) {
	rows, err := uc.repo.LowStock()
	if err != nil {
		return nil, err
	}
	return toStockResponse(rows), nil
}

// ExportMovementsXLSX exporta la bitácora filtrada a un XLSX.
func (uc *UseCase) ExportMovementsXLSX(filter repository.MovementFilter, limit, offset int) ([]byte, error) {
	rows, err := uc.repo.MovementHistory(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportMovements(rows)
}

// StockPDF genera el PDF del reporte de existencias.
func (uc *UseCase) StockPDF(locationID *int64) ([]byte, error) {
	rows, err := uc.repo.Stock(locationID)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateStockReport(rows)
}

func toStockResponse(rows []repository.StockReportRow) *dto.StockReportResponse {
	items := make([]dto.StockReportItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.StockReportItem{
			ProductID:    r.ProductID,
			ProductCode:  r.ProductCode,
			ProductName:  r.ProductName,
			Price:        r.Price,
			LocationID:   r.LocationID,
			LocationName: r.LocationName,
			Quantity:     r.Quantity,
			ReorderMin:   r.ReorderMin,
			ReorderMax:   r.ReorderMax,
			BelowMin:     r.ReorderMin != nil && r.Quantity < *r.ReorderMin,
		})
	}
	return &dto.StockReportResponse{Total: len(items), Items: items}
}
