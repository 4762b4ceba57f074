package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copypoint/copypoint-api/internal/application/dto"
	"github.com/copypoint/copypoint-api/internal/application/usecase"
)

// UsuarioHandler maneja los usuarios del sistema (solo ADMIN).
type UsuarioHandler struct {
	uc *usecase.UsuarioUseCase
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario (solo ADMIN)
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUsuarioRequest  true  "nombre_usuario, password, rol"
// @Success      201   {object}  dto.UsuarioDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	usuario, err := h.uc.Create(c.Context(), usecase.UsuarioInput{
		NombreUsuario: in.NombreUsuario,
		Password:      in.Password,
		Rol:           in.Rol,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromUsuario(usuario))
}

// List godoc
// @Summary      Listar usuarios (solo ADMIN)
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        rol  query  string  false  "ADMIN | VENDEDOR"
// @Success      200  {array}  dto.UsuarioDTO
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	if rol := c.Query("rol"); rol != "" {
		usuarios, err := h.uc.ListByRol(c.Context(), rol)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.FromUsuarios(usuarios))
	}
	usuarios, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromUsuarios(usuarios))
}

// GetByID godoc
// @Summary      Obtener usuario (solo ADMIN)
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UsuarioDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [get]
func (h *UsuarioHandler) GetByID(c *fiber.Ctx) error {
	usuario, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromUsuario(usuario))
}

// UpdateRol godoc
// @Summary      Cambiar rol de usuario (solo ADMIN)
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  object  true  "{\"rol\": \"ADMIN|VENDEDOR\"}"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/rol [patch]
func (h *UsuarioHandler) UpdateRol(c *fiber.Ctx) error {
	var in struct {
		Rol string `json:"rol"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdateRol(c.Context(), c.Params("id"), in.Rol); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "rol actualizado"})
}

// SetActivo godoc
// @Summary      Activar o desactivar usuario (solo ADMIN)
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  object  true  "{\"activo\": bool}"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/activo [patch]
func (h *UsuarioHandler) SetActivo(c *fiber.Ctx) error {
	var in struct {
		Activo bool `json:"activo"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetActivo(c.Context(), c.Params("id"), in.Activo); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "usuario actualizado"})
}
