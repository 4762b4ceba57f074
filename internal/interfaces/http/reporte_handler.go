package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/copypoint/copypoint-api/internal/application/dto"
	"github.com/copypoint/copypoint-api/internal/application/reports"
)

// ReporteHandler maneja la generación de reportes exportados (protegido).
type ReporteHandler struct {
	uc *reports.ReportUseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *reports.ReportUseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// Movimientos godoc
// @Summary      Exportar reporte de movimientos
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde    query  string  true   "RFC 3339"
// @Param        hasta    query  string  true   "RFC 3339"
// @Param        formato  query  string  false  "excel (default) | pdf"
// @Success      200  {object}  dto.ReporteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/movimientos [get]
func (h *ReporteHandler) Movimientos(c *fiber.Ctx) error {
	desde, err := time.Parse(time.RFC3339, c.Query("desde"))
	if err != nil {
		return badBody(c)
	}
	hasta, err := time.Parse(time.RFC3339, c.Query("hasta"))
	if err != nil {
		return badBody(c)
	}
	formato := c.Query("formato", reports.FormatoExcel)
	path, err := h.uc.GenerarReporteMovimientos(c.Context(), desde, hasta, formato, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReporteResponse{Archivo: path})
}

// BajoStock godoc
// @Summary      Exportar reporte de productos bajo stock
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        formato  query  string  false  "excel (default) | pdf"
// @Success      200  {object}  dto.ReporteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/bajo-stock [get]
func (h *ReporteHandler) BajoStock(c *fiber.Ctx) error {
	formato := c.Query("formato", reports.FormatoExcel)
	path, err := h.uc.GenerarReporteBajoStock(c.Context(), formato, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReporteResponse{Archivo: path})
}
