package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/copypoint/copypoint-api/internal/application/dto"
	"github.com/copypoint/copypoint-api/internal/application/inventory"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

// MovimientoHandler maneja el libro de movimientos de inventario (protegido).
type MovimientoHandler struct {
	register *inventory.RegisterMovementUseCase
	queries  *inventory.MovementQueryUseCase
}

// NewMovimientoHandler construye el handler.
func NewMovimientoHandler(register *inventory.RegisterMovementUseCase, queries *inventory.MovementQueryUseCase) *MovimientoHandler {
	return &MovimientoHandler{register: register, queries: queries}
}

// Register godoc
// @Summary      Registrar movimiento de inventario
// @Description  ENTRADA y VENTA llevan cantidad positiva; AJUSTE admite signo.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovimientoRequest  true  "id_producto, tipo, cantidad"
// @Success      201   {object}  dto.MovimientoDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimientos [post]
func (h *MovimientoHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.register.Register(c.Context(), inventory.MovimientoInput{
		IDProducto:    in.IDProducto,
		Tipo:          in.Tipo,
		Cantidad:      in.Cantidad,
		Responsable:   GetUsername(c),
		Observaciones: in.Observaciones,
		CostoUnitario: in.CostoUnitario,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovimiento(mov))
}

// GetByID godoc
// @Summary      Obtener un movimiento
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovimientoDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [get]
func (h *MovimientoHandler) GetByID(c *fiber.Ctx) error {
	mov, err := h.queries.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMovimiento(mov))
}

// List godoc
// @Summary      Listar movimientos con filtros
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        tipo         query  string  false  "ENTRADA | VENTA | AJUSTE"
// @Param        id_producto  query  string  false  "Filtrar por producto"
// @Param        responsable  query  string  false  "Substring del responsable"
// @Param        desde        query  string  false  "RFC 3339"
// @Param        hasta        query  string  false  "RFC 3339"
// @Param        limit        query  int     false  "Máximo de filas"
// @Success      200  {array}   dto.MovimientoDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimientos [get]
func (h *MovimientoHandler) List(c *fiber.Ctx) error {
	filters := repository.MovimientoFilters{
		Tipo:        c.Query("tipo"),
		IDProducto:  c.Query("id_producto"),
		Responsable: c.Query("responsable"),
		Limit:       c.QueryInt("limit"),
	}
	if desde := c.Query("desde"); desde != "" {
		t, err := time.Parse(time.RFC3339, desde)
		if err != nil {
			return badBody(c)
		}
		filters.Desde = &t
	}
	if hasta := c.Query("hasta"); hasta != "" {
		t, err := time.Parse(time.RFC3339, hasta)
		if err != nil {
			return badBody(c)
		}
		filters.Hasta = &t
	}
	movs, err := h.queries.ListByFilters(c.Context(), filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMovimientos(movs))
}

// ListByProducto godoc
// @Summary      Historial de movimientos de un producto
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        limit  query  int     false  "Máximo de filas"
// @Success      200  {array}   dto.MovimientoDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/movimientos [get]
func (h *MovimientoHandler) ListByProducto(c *fiber.Ctx) error {
	movs, err := h.queries.ListByProducto(c.Context(), c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMovimientos(movs))
}

// Resumen godoc
// @Summary      Resumen de movimientos por tipo
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "RFC 3339"
// @Param        hasta  query  string  false  "RFC 3339"
// @Success      200  {array}   dto.ResumenMovimientosDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimientos/resumen [get]
func (h *MovimientoHandler) Resumen(c *fiber.Ctx) error {
	var desde, hasta *time.Time
	if s := c.Query("desde"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return badBody(c)
		}
		desde = &t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return badBody(c)
		}
		hasta = &t
	}
	resumen, err := h.queries.GetResumen(c.Context(), desde, hasta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromResumen(resumen))
}

// Delete godoc
// @Summary      Eliminar una fila del libro (solo ADMIN)
// @Description  Rompe la trazabilidad; el stock del producto no se recalcula.
// @Tags         movimientos
// @Security     Bearer
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [delete]
func (h *MovimientoHandler) Delete(c *fiber.Ctx) error {
	if err := h.queries.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimiento eliminado"})
}
