package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto o servicio del catálogo.
// Stock SOLO se modifica a través de movimientos de inventario; los servicios
// (categoría tipo SERVICIO) no manejan stock.
type Producto struct {
	ID            string
	IDCategoria   string
	Nombre        string
	Descripcion   string
	Stock         int // entero, nunca negativo
	StockMinimo   int
	Costo         decimal.Decimal // costo de compra
	Precio        decimal.Decimal // precio de venta
	TasaImpuesto  decimal.Decimal // % ITBMS aplicable (0, 7, ...)
	Activo        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// CategoriaTipo se llena por JOIN en lecturas (MATERIAL | SERVICIO).
	CategoriaTipo string
}

// EsServicio indica si el producto pertenece a una categoría de tipo SERVICIO.
func (p *Producto) EsServicio() bool {
	return p.CategoriaTipo == CategoriaTipoServicio
}

// BajoStock indica si el stock actual está por debajo del mínimo configurado.
func (p *Producto) BajoStock() bool {
	return p.Stock < p.StockMinimo
}
