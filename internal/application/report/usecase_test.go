package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

func int64p(v int64) *int64 { return &v }

// fakeReportRepo devuelve filas fijas; suficiente para probar la agregación.
type fakeReportRepo struct {
	stock    []repository.StockReportRow
	history  []repository.MovementReportRow
	lastLoc  *int64
	lowCalls int
}

func (f *fakeReportRepo) Stock(locationID *int64) ([]repository.StockReportRow, error) {
	f.lastLoc = locationID
	return f.stock, nil
}

func (f *fakeReportRepo) LowStock() ([]repository.StockReportRow, error) {
	f.lowCalls++
	var out []repository.StockReportRow
	for _, r := range f.stock {
		if r.ReorderMin != nil && r.Quantity < *r.ReorderMin {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) MovementHistory(filter repository.MovementFilter, limit, offset int) ([]repository.MovementReportRow, error) {
	return f.history, nil
}

type fakeExporter struct{ rows int }

func (f *fakeExporter) ExportMovements(rows []repository.MovementReportRow) ([]byte, error) {
	f.rows = len(rows)
	return []byte("xlsx"), nil
}

type fakePDF struct{ rows int }

func (f *fakePDF) GenerateStockReport(rows []repository.StockReportRow) ([]byte, error) {
	f.rows = len(rows)
	return []byte("pdf"), nil
}

func sampleStock() []repository.StockReportRow {
	return []repository.StockReportRow{
		{
			ProductID: 1, ProductCode: "TOR-003", ProductName: "Tornillo 3mm",
			Price: decimal.NewFromInt(120), LocationID: 1, LocationName: "Bodega central",
			Quantity: 2, ReorderMin: int64p(5), ReorderMax: int64p(50),
		},
		{
			ProductID: 2, ProductCode: "TUE-010", ProductName: "Tuerca 10mm",
			Price: decimal.NewFromInt(80), LocationID: 1, LocationName: "Bodega central",
			Quantity: 40, ReorderMin: int64p(10),
		},
		{
			ProductID: 3, ProductCode: "ARA-001", ProductName: "Arandela",
			Price: decimal.NewFromInt(15), LocationID: 2, LocationName: "Sucursal norte",
			Quantity: 7, // sin umbrales
		},
	}
}

// Las filas con cantidad por debajo de su reorder_min salen marcadas; las
// que no tienen umbral nunca se marcan.
func TestStock_MarcaFilasBajoMinimo(t *testing.T) {
	repo := &fakeReportRepo{stock: sampleStock()}
	uc := report.NewUseCase(repo, &fakeExporter{}, &fakePDF{})

	out, err := uc.Stock(nil)
	require.NoError(t, err)
	require.Equal(t, 3, out.Total)

	assert.True(t, out.Items[0].BelowMin, "2 < reorder_min 5 debe marcarse")
	assert.False(t, out.Items[1].BelowMin, "40 >= reorder_min 10 no se marca")
	assert.False(t, out.Items[2].BelowMin, "sin umbral nunca se marca")
}

func TestStock_PropagaFiltroDeUbicacion(t *testing.T) {
	repo := &fakeReportRepo{stock: sampleStock()}
	uc := report.NewUseCase(repo, &fakeExporter{}, &fakePDF{})

	_, err := uc.Stock(int64p(2))
	require.NoError(t, err)
	require.NotNil(t, repo.lastLoc)
	assert.Equal(t, int64(2), *repo.lastLoc)
}

func TestLowStock_SoloFilasBajoMinimo(t *testing.T) {
	repo := &fakeReportRepo{stock: sampleStock()}
	uc := report.NewUseCase(repo, &fakeExporter{}, &fakePDF{})

	out, err := uc.LowStock()
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "TOR-003", out.Items[0].ProductCode)
	assert.True(t, out.Items[0].BelowMin)
}

func TestExportMovementsXLSX_PasaLasFilasAlExportador(t *testing.T) {
	repo := &fakeReportRepo{history: []repository.MovementReportRow{
		{MovementID: "a", ProductCode: "TOR-003", Kind: "ADJUST", Quantity: 10},
		{MovementID: "b", ProductCode: "TOR-003", Kind: "TRANSFER", Quantity: 5},
	}}
	exp := &fakeExporter{}
	uc := report.NewUseCase(repo, exp, &fakePDF{})

	data, err := uc.ExportMovementsXLSX(repository.MovementFilter{}, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, 2, exp.rows, "el exportador debe recibir todas las filas")
}

func TestStockPDF_PasaLasFilasAlGenerador(t *testing.T) {
	repo := &fakeReportRepo{stock: sampleStock()}
	pdfGen := &fakePDF{}
	uc := report.NewUseCase(repo, &fakeExporter{}, pdfGen)

	data, err := uc.StockPDF(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), data)
	assert.Equal(t, 3, pdfGen.rows)
}
