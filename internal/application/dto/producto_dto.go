package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// ProductoRequest body para crear o actualizar un producto.
type ProductoRequest struct {
	IDCategoria  string          `json:"id_categoria"`
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion,omitempty"`
	StockMinimo  int             `json:"stock_minimo"`
	Costo        decimal.Decimal `json:"costo"`
	Precio       decimal.Decimal `json:"precio"`
	TasaImpuesto decimal.Decimal `json:"tasa_impuesto"`
	StockInicial int             `json:"stock_inicial,omitempty"`
}

// ProductoDTO producto en respuestas.
type ProductoDTO struct {
	ID            string          `json:"id_producto"`
	IDCategoria   string          `json:"id_categoria"`
	CategoriaTipo string          `json:"categoria_tipo,omitempty"`
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion,omitempty"`
	Stock         int             `json:"stock"`
	StockMinimo   int             `json:"stock_minimo"`
	Costo         decimal.Decimal `json:"costo"`
	Precio        decimal.Decimal `json:"precio"`
	TasaImpuesto  decimal.Decimal `json:"tasa_impuesto"`
	Activo        bool            `json:"activo"`
	BajoStock     bool            `json:"bajo_stock"`
	CreatedAt     time.Time       `json:"created_at"`
}

// FromProducto convierte la entidad a DTO.
func FromProducto(p *entity.Producto) ProductoDTO {
	return ProductoDTO{
		ID:            p.ID,
		IDCategoria:   p.IDCategoria,
		CategoriaTipo: p.CategoriaTipo,
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		Stock:         p.Stock,
		StockMinimo:   p.StockMinimo,
		Costo:         p.Costo,
		Precio:        p.Precio,
		TasaImpuesto:  p.TasaImpuesto,
		Activo:        p.Activo,
		BajoStock:     p.BajoStock(),
		CreatedAt:     p.CreatedAt,
	}
}

// FromProductos convierte un slice de entidades a DTOs.
func FromProductos(productos []*entity.Producto) []ProductoDTO {
	out := make([]ProductoDTO, 0, len(productos))
	for _, p := range productos {
		out = append(out, FromProducto(p))
	}
	return out
}

// ProductoStatsDTO estadísticas del catálogo.
type ProductoStatsDTO struct {
	Total     int `json:"total"`
	Activos   int `json:"activos"`
	Inactivos int `json:"inactivos"`
	SinStock  int `json:"sin_stock"`
	BajoStock int `json:"bajo_stock"`
}
