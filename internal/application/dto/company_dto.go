package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// CompanyConfigRequest body para PUT /api/company.
type CompanyConfigRequest struct {
	Nombre    string          `json:"nombre"`
	RUC       string          `json:"ruc,omitempty"`
	Direccion string          `json:"direccion,omitempty"`
	Telefono  string          `json:"telefono,omitempty"`
	Email     string          `json:"email,omitempty"`
	LogoPath  string          `json:"logo_path,omitempty"`
	ITBMSRate decimal.Decimal `json:"itbms_rate"`
	Moneda    string          `json:"moneda,omitempty"`
}

// CompanyConfigDTO configuración en respuestas.
type CompanyConfigDTO struct {
	Nombre    string          `json:"nombre"`
	RUC       string          `json:"ruc,omitempty"`
	Direccion string          `json:"direccion,omitempty"`
	Telefono  string          `json:"telefono,omitempty"`
	Email     string          `json:"email,omitempty"`
	LogoPath  string          `json:"logo_path,omitempty"`
	ITBMSRate decimal.Decimal `json:"itbms_rate"`
	Moneda    string          `json:"moneda"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FromCompanyConfig convierte la entidad a DTO.
func FromCompanyConfig(c *entity.CompanyConfig) CompanyConfigDTO {
	return CompanyConfigDTO{
		Nombre:    c.Nombre,
		RUC:       c.RUC,
		Direccion: c.Direccion,
		Telefono:  c.Telefono,
		Email:     c.Email,
		LogoPath:  c.LogoPath,
		ITBMSRate: c.ITBMSRate,
		Moneda:    c.Moneda,
		UpdatedAt: c.UpdatedAt,
	}
}
