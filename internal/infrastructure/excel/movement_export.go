// Package excel genera exportes XLSX de la bitácora de movimientos.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ report.MovementExporter = (*MovementExporter)(nil)

// MovementExporter implementa report.MovementExporter usando excelize.
type MovementExporter struct{}

// NewMovementExporter construye el exportador.
func NewMovementExporter() *MovementExporter { return &MovementExporter{} }

// ExportMovements genera un XLSX con una fila por movimiento de la bitácora.
func (e *MovementExporter) ExportMovements(rows []repository.MovementReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id",
		"fecha",
		"producto_codigo",
		"producto_nombre",
		"tipo",
		"cantidad",
		"origen",
		"destino",
		"motivo",
		"usuario",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("encabezado xlsx: %w", err)
	}

	row := 2
	for _, m := range rows {
		cell := fmt.Sprintf("A%d", row)
		values := []interface{}{
			m.MovementID,
			m.CreatedAt.Format("2006-01-02 15:04:05"),
			m.ProductCode,
			m.ProductName,
			m.Kind,
			m.Quantity,
			m.OriginName,
			m.DestinationName,
			m.Reason,
			m.Actor,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("fila xlsx %d: %w", row, err)
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
