package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/copypoint/copypoint-api/internal/application/dto"
	"github.com/copypoint/copypoint-api/internal/application/usecase"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// CompanyHandler maneja la configuración de la empresa.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener configuración de la empresa
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyConfigDTO
// @Router       /api/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	config, err := h.uc.Get(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromCompanyConfig(config))
}

// Update godoc
// @Summary      Actualizar configuración de la empresa (solo ADMIN)
// @Tags         company
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompanyConfigRequest  true  "datos de la empresa"
// @Success      200   {object}  dto.CompanyConfigDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.CompanyConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	config := &entity.CompanyConfig{
		ID:        1,
		Nombre:    in.Nombre,
		RUC:       in.RUC,
		Direccion: in.Direccion,
		Telefono:  in.Telefono,
		Email:     in.Email,
		LogoPath:  in.LogoPath,
		ITBMSRate: in.ITBMSRate,
		Moneda:    in.Moneda,
	}
	if err := h.uc.Update(c.Context(), config); err != nil {
		return respondError(c, err)
	}
	actual, err := h.uc.Get(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromCompanyConfig(actual))
}
