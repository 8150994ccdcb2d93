// Package pdf genera la representación PDF del reporte de existencias
// usando Maroto v2: encabezado, tabla producto/ubicación/cantidad y
// marca de filas por debajo del umbral de reorden.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ report.StockPDFGenerator = (*StockReportGenerator)(nil)

// StockReportGenerator implementa report.StockPDFGenerator usando Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) GenerateStockReport(rows []repository.StockReportRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de existencias", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(detailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(rows)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow() core.Row {
	return row.New(10).Add(
		col.New(8).Add(
			text.New("Reporte de existencias", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
		),
		col.New(4).Add(
			text.New(time.Now().Format("2006-01-02 15:04"), props.Text{
				Size: 9, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	bold := props.Text{Size: 9, Style: fontstyle.Bold}
	right := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	return row.New(7).Add(
		col.New(2).Add(text.New("Código", bold)),
		col.New(4).Add(text.New("Producto", bold)),
		col.New(3).Add(text.New("Ubicación", bold)),
		col.New(1).Add(text.New("Cant.", right)),
		col.New(2).Add(text.New("Reorden", right)),
	)
}

func detailRow(r repository.StockReportRow) core.Row {
	normal := props.Text{Size: 8}
	qty := props.Text{Size: 8, Align: align.Right}
	if r.ReorderMin != nil && r.Quantity < *r.ReorderMin {
		qty.Color = colorAlert
		qty.Style = fontstyle.Bold
	}
	reorder := ""
	if r.ReorderMin != nil && r.ReorderMax != nil {
		reorder = fmt.Sprintf("%d / %d", *r.ReorderMin, *r.ReorderMax)
	} else if r.ReorderMin != nil {
		reorder = fmt.Sprintf("%d / -", *r.ReorderMin)
	} else if r.ReorderMax != nil {
		reorder = fmt.Sprintf("- / %d", *r.ReorderMax)
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(r.ProductCode, normal)),
		col.New(4).Add(text.New(r.ProductName, normal)),
		col.New(3).Add(text.New(r.LocationName, normal)),
		col.New(1).Add(text.New(fmt.Sprintf("%d", r.Quantity), qty)),
		col.New(2).Add(text.New(reorder, props.Text{Size: 8, Align: align.Right, Color: colorGray})),
	)
}

func footerRow(total int) core.Row {
	return row.New(6).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%d líneas de existencias", total), props.Text{
				Size: 8, Color: colorGray,
			}),
		),
	)
}
