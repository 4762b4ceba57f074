package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copypoint/copypoint-api/internal/application/dto"
	"github.com/copypoint/copypoint-api/internal/application/usecase"
)

// CategoriaHandler maneja las categorías del catálogo (protegido).
type CategoriaHandler struct {
	uc *usecase.CategoriaUseCase
}

// NewCategoriaHandler construye el handler.
func NewCategoriaHandler(uc *usecase.CategoriaUseCase) *CategoriaHandler {
	return &CategoriaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoriaRequest  true  "nombre y tipo (MATERIAL | SERVICIO)"
// @Success      201   {object}  dto.CategoriaDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categorias [post]
func (h *CategoriaHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	categoria, err := h.uc.Create(c.Context(), usecase.CategoriaInput{
		Nombre:      in.Nombre,
		Tipo:        in.Tipo,
		Descripcion: in.Descripcion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromCategoria(categoria))
}

// Update godoc
// @Summary      Actualizar categoría (el tipo no es editable)
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la categoría"
// @Param        body  body  dto.CategoriaRequest  true  "nombre, descripción, activo"
// @Success      200   {object}  dto.CategoriaDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [put]
func (h *CategoriaHandler) Update(c *fiber.Ctx) error {
	var in dto.CategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	categoria, err := h.uc.Update(c.Context(), c.Params("id"), in.Nombre, in.Descripcion, in.Activo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromCategoria(categoria))
}

// GetByID godoc
// @Summary      Obtener categoría
// @Tags         categorias
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoriaDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [get]
func (h *CategoriaHandler) GetByID(c *fiber.Ctx) error {
	categoria, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromCategoria(categoria))
}

// List godoc
// @Summary      Listar categorías
// @Tags         categorias
// @Security     Bearer
// @Produce      json
// @Param        solo_activas  query  bool  false  "Solo categorías activas"
// @Success      200  {array}  dto.CategoriaDTO
// @Router       /api/categorias [get]
func (h *CategoriaHandler) List(c *fiber.Ctx) error {
	categorias, err := h.uc.List(c.Context(), c.QueryBool("solo_activas"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromCategorias(categorias))
}

// Delete godoc
// @Summary      Eliminar categoría sin productos (solo ADMIN)
// @Tags         categorias
// @Security     Bearer
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [delete]
func (h *CategoriaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "categoría eliminada"})
}
