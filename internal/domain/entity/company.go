package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyConfig configuración de la empresa (fila única, id = 1).
// Aparece en encabezados de tickets, facturas y reportes.
type CompanyConfig struct {
	ID        int
	Nombre    string
	RUC       string
	Direccion string
	Telefono  string
	Email     string
	LogoPath  string
	ITBMSRate decimal.Decimal // % de impuesto (Panamá: 7.00)
	Moneda    string          // código ISO, ej. USD
	UpdatedAt time.Time
}

// DefaultCompanyConfig valores por defecto cuando aún no hay configuración en BD.
func DefaultCompanyConfig() *CompanyConfig {
	return &CompanyConfig{
		ID:        1,
		Nombre:    "Copy Point S.A.",
		RUC:       "888-888-8888",
		Direccion: "Las Lajas, Las Cumbres, Panamá",
		Telefono:  "6666-6666",
		Email:     "copy.point@gmail.com",
		ITBMSRate: decimal.NewFromInt(7),
		Moneda:    "USD",
	}
}
