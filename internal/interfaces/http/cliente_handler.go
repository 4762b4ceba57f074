package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copypoint/copypoint-api/internal/application/dto"
	"github.com/copypoint/copypoint-api/internal/application/usecase"
)

// ClienteHandler maneja el padrón de clientes (protegido).
type ClienteHandler struct {
	uc *usecase.ClienteUseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *usecase.ClienteUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClienteRequest  true  "datos del cliente"
// @Success      201   {object}  dto.ClienteDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.ClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cliente, err := h.uc.Create(c.Context(), usecase.ClienteInput{
		Nombre:    in.Nombre,
		RUC:       in.RUC,
		DV:        in.DV,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromCliente(cliente))
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del cliente"
// @Param        body  body  dto.ClienteRequest  true  "datos del cliente"
// @Success      200   {object}  dto.ClienteDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [put]
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	var in dto.ClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cliente, err := h.uc.Update(c.Context(), c.Params("id"), usecase.ClienteInput{
		Nombre:    in.Nombre,
		RUC:       in.RUC,
		DV:        in.DV,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromCliente(cliente))
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClienteDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *ClienteHandler) GetByID(c *fiber.Ctx) error {
	cliente, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromCliente(cliente))
}

// List godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        solo_activos  query  bool    false  "Solo clientes activos"
// @Param        ruc           query  string  false  "Buscar por RUC exacto"
// @Success      200  {array}  dto.ClienteDTO
// @Router       /api/clientes [get]
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	if ruc := c.Query("ruc"); ruc != "" {
		cliente, err := h.uc.GetByRUC(c.Context(), ruc)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON([]dto.ClienteDTO{dto.FromCliente(cliente)})
	}
	clientes, err := h.uc.List(c.Context(), c.QueryBool("solo_activos"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromClientes(clientes))
}

// SetActivo godoc
// @Summary      Activar o desactivar cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  object  true  "{\"activo\": bool}"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id}/activo [patch]
func (h *ClienteHandler) SetActivo(c *fiber.Ctx) error {
	var in struct {
		Activo bool `json:"activo"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetActivo(c.Context(), c.Params("id"), in.Activo); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cliente actualizado"})
}
