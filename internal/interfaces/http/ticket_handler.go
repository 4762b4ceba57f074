package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copypoint/copypoint-api/internal/application/dto"
	"github.com/copypoint/copypoint-api/internal/application/tickets"
)

// TicketHandler maneja la generación y reimpresión de tickets (protegido).
type TicketHandler struct {
	uc *tickets.TicketUseCase
}

// NewTicketHandler construye el handler.
func NewTicketHandler(uc *tickets.TicketUseCase) *TicketHandler {
	return &TicketHandler{uc: uc}
}

// GenerarVenta godoc
// @Summary      Generar ticket de una venta
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      201  {object}  dto.TicketDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/ticket [post]
func (h *TicketHandler) GenerarVenta(c *fiber.Ctx) error {
	ticket, err := h.uc.GenerarTicketVenta(c.Context(), c.Params("id"), GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTicket(ticket))
}

// GenerarMovimiento godoc
// @Summary      Generar comprobante de una entrada o ajuste
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      201  {object}  dto.TicketDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id}/ticket [post]
func (h *TicketHandler) GenerarMovimiento(c *fiber.Ctx) error {
	ticket, err := h.uc.GenerarTicketMovimiento(c.Context(), c.Params("id"), GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTicket(ticket))
}

// Reprint godoc
// @Summary      Reimprimir ticket (marca COPIA)
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ticket"
// @Success      200  {object}  dto.TicketDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/reprint [post]
func (h *TicketHandler) Reprint(c *fiber.Ctx) error {
	ticket, err := h.uc.Reprint(c.Context(), c.Params("id"), GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromTicket(ticket))
}

// List godoc
// @Summary      Listar tickets por tipo
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        tipo    query  string  true   "VENTA | ENTRADA | AJUSTE"
// @Param        limit   query  int     false  "Máximo de filas"
// @Param        numero  query  string  false  "Buscar por número exacto"
// @Success      200  {array}   dto.TicketDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tickets [get]
func (h *TicketHandler) List(c *fiber.Ctx) error {
	if numero := c.Query("numero"); numero != "" {
		ticket, err := h.uc.GetByNumero(c.Context(), numero)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON([]dto.TicketDTO{dto.FromTicket(ticket)})
	}
	list, err := h.uc.ListByTipo(c.Context(), c.Query("tipo"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromTickets(list))
}
