package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copypoint/copypoint-api/internal/application/dto"
	"github.com/copypoint/copypoint-api/internal/application/usecase"
)

// ProductoHandler maneja el catálogo de productos (protegido).
type ProductoHandler struct {
	uc *usecase.ProductoUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *usecase.ProductoUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  El stock inicial, si viene, entra como movimiento ENTRADA.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductoRequest  true  "datos del producto"
// @Success      201   {object}  dto.ProductoDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	producto, err := h.uc.Create(c.Context(), usecase.ProductoInput{
		IDCategoria:  in.IDCategoria,
		Nombre:       in.Nombre,
		Descripcion:  in.Descripcion,
		StockMinimo:  in.StockMinimo,
		Costo:        in.Costo,
		Precio:       in.Precio,
		TasaImpuesto: in.TasaImpuesto,
		StockInicial: in.StockInicial,
		Responsable:  GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProducto(producto))
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del producto"
// @Param        body  body  dto.ProductoRequest  true  "datos del producto"
// @Success      200   {object}  dto.ProductoDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductoHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	producto, err := h.uc.Update(c.Context(), c.Params("id"), usecase.ProductoInput{
		IDCategoria:  in.IDCategoria,
		Nombre:       in.Nombre,
		Descripcion:  in.Descripcion,
		StockMinimo:  in.StockMinimo,
		Costo:        in.Costo,
		Precio:       in.Precio,
		TasaImpuesto: in.TasaImpuesto,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromProducto(producto))
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductoDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductoHandler) GetByID(c *fiber.Ctx) error {
	producto, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromProducto(producto))
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        solo_activos  query  bool    false  "Solo productos activos"
// @Param        id_categoria  query  string  false  "Filtrar por categoría"
// @Param        q             query  string  false  "Buscar por nombre o descripción"
// @Success      200  {array}  dto.ProductoDTO
// @Router       /api/productos [get]
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		productos, err := h.uc.Search(c.Context(), q)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.FromProductos(productos))
	}
	soloActivos := c.QueryBool("solo_activos")
	if idCategoria := c.Query("id_categoria"); idCategoria != "" {
		productos, err := h.uc.ListByCategoria(c.Context(), idCategoria, soloActivos)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.FromProductos(productos))
	}
	productos, err := h.uc.List(c.Context(), soloActivos)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromProductos(productos))
}

// SetActivo godoc
// @Summary      Activar o desactivar producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  object  true  "{\"activo\": bool}"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/activo [patch]
func (h *ProductoHandler) SetActivo(c *fiber.Ctx) error {
	var in struct {
		Activo bool `json:"activo"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetActivo(c.Context(), c.Params("id"), in.Activo); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto actualizado"})
}

// BajoStock godoc
// @Summary      Productos activos con stock bajo su mínimo
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductoDTO
// @Router       /api/productos/bajo-stock [get]
func (h *ProductoHandler) BajoStock(c *fiber.Ctx) error {
	productos, err := h.uc.ListBajoStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromProductos(productos))
}

// Stats godoc
// @Summary      Estadísticas del catálogo
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductoStatsDTO
// @Router       /api/productos/stats [get]
func (h *ProductoHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProductoStatsDTO{
		Total:     stats.Total,
		Activos:   stats.Activos,
		Inactivos: stats.Inactivos,
		SinStock:  stats.SinStock,
		BajoStock: stats.BajoStock,
	})
}
