package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/report"
)

// ReportHandler maneja las consultas de reporte y los exportes XLSX/PDF.
// Todo es lectura sobre el estado que dejó confirmado el motor de inventario.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Stock godoc
// @Summary      Reporte de existencias
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  int  false  "Filtrar por ubicación"
// @Success      200  {object}  dto.StockReportResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.Stock(queryInt64(c, "location_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Existencias por debajo del umbral mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockReportResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportMovements godoc
// @Summary      Exportar la bitácora a XLSX
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        product_id   query  int     false  "Filtrar por producto"
// @Param        location_id  query  int     false  "Filtrar por ubicación"
// @Param        kind         query  string  false  "ADJUST o TRANSFER"
// @Success      200  {file}  binary
// @Router       /api/reports/movements/export [get]
func (h *ReportHandler) ExportMovements(c *fiber.Ctx) error {
	filter, err := movementFilter(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	// Exporte acotado: a lo sumo las últimas 10000 filas del filtro.
	data, err := h.uc.ExportMovementsXLSX(filter, 10000, 0)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("bitacora_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

// StockPDF godoc
// @Summary      Reporte de existencias en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        location_id  query  int  false  "Filtrar por ubicación"
// @Success      200  {file}  binary
// @Router       /api/reports/stock/pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	data, err := h.uc.StockPDF(queryInt64(c, "location_id"))
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("existencias_%s.pdf", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}
