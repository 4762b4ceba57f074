package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/copypoint/copypoint-api/internal/application/dto"
	"github.com/copypoint/copypoint-api/internal/application/sales"
)

// VentaHandler maneja las ventas (protegido).
type VentaHandler struct {
	uc *sales.VentaUseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *sales.VentaUseCase) *VentaHandler {
	return &VentaHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Cabecera, líneas y descuento de stock de productos materiales
//
//	en una sola transacción. Sin stock suficiente, toda la venta se rechaza.
//
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVentaRequest  true  "líneas de la venta"
// @Success      201   {object}  dto.VentaDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lineas := make([]sales.LineaInput, 0, len(in.Lineas))
	for _, l := range in.Lineas {
		lineas = append(lineas, sales.LineaInput{
			IDProducto: l.IDProducto,
			Cantidad:   l.Cantidad,
			Descuento:  l.Descuento,
		})
	}
	venta, err := h.uc.CreateVenta(c.Context(), sales.VentaInput{
		IDCliente:     in.IDCliente,
		Lineas:        lineas,
		Responsable:   GetUsername(c),
		Observaciones: in.Observaciones,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromVentaCompleta(venta))
}

// GetByID godoc
// @Summary      Obtener venta con sus líneas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.VentaDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	venta, err := h.uc.GetVenta(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromVentaCompleta(venta))
}

// List godoc
// @Summary      Listar ventas por rango de fechas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        desde   query  string  false  "RFC 3339 (default: inicio del día)"
// @Param        hasta   query  string  false  "RFC 3339 (default: ahora)"
// @Param        numero  query  string  false  "Buscar por número de factura"
// @Success      200  {array}   dto.VentaDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ventas [get]
func (h *VentaHandler) List(c *fiber.Ctx) error {
	if numero := c.Query("numero"); numero != "" {
		venta, err := h.uc.GetByNumeroFactura(c.Context(), numero)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON([]dto.VentaDTO{dto.FromVentaCompleta(venta)})
	}

	now := time.Now()
	desde := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	hasta := now
	if s := c.Query("desde"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return badBody(c)
		}
		desde = t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return badBody(c)
		}
		hasta = t
	}
	ventas, err := h.uc.ListByDateRange(c.Context(), desde, hasta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromVentas(ventas))
}

// Cancel godoc
// @Summary      Anular venta
// @Description  Registra ajustes compensatorios que restauran el stock y marca
//
//	la venta como CANCELADA.
//
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                  true   "ID de la venta"
// @Param        body  body  dto.CancelVentaRequest  false  "motivo de la anulación"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/cancelar [post]
func (h *VentaHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelVentaRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	if err := h.uc.CancelVenta(c.Context(), c.Params("id"), GetUsername(c), in.Motivo); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta cancelada"})
}
