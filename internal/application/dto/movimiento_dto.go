package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

// RegisterMovimientoRequest body para POST /api/movimientos.
// ENTRADA y VENTA llevan cantidad positiva; AJUSTE admite signo.
type RegisterMovimientoRequest struct {
	IDProducto    string           `json:"id_producto"`
	Tipo          string           `json:"tipo"`
	Cantidad      int              `json:"cantidad"`
	Observaciones string           `json:"observaciones,omitempty"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario,omitempty"`
}

// MovimientoDTO fila del libro de movimientos en respuestas.
type MovimientoDTO struct {
	ID             string           `json:"id_movimiento"`
	IDProducto     string           `json:"id_producto"`
	ProductoNombre string           `json:"producto_nombre,omitempty"`
	Tipo           string           `json:"tipo"`
	Cantidad       int              `json:"cantidad"`
	StockAnterior  int              `json:"stock_anterior"`
	StockNuevo     int              `json:"stock_nuevo"`
	Responsable    string           `json:"responsable"`
	IDVenta        *string          `json:"id_venta,omitempty"`
	Observaciones  string           `json:"observaciones,omitempty"`
	CostoUnitario  *decimal.Decimal `json:"costo_unitario,omitempty"`
	Fecha          time.Time        `json:"fecha"`
}

// FromMovimiento convierte la entidad a DTO.
func FromMovimiento(m *entity.Movimiento) MovimientoDTO {
	return MovimientoDTO{
		ID:             m.ID,
		IDProducto:     m.IDProducto,
		ProductoNombre: m.ProductoNombre,
		Tipo:           m.Tipo,
		Cantidad:       m.Cantidad,
		StockAnterior:  m.StockAnterior,
		StockNuevo:     m.StockNuevo,
		Responsable:    m.Responsable,
		IDVenta:        m.IDVenta,
		Observaciones:  m.Observaciones,
		CostoUnitario:  m.CostoUnitario,
		Fecha:          m.Fecha,
	}
}

// FromMovimientos convierte un slice de entidades a DTOs.
func FromMovimientos(movs []*entity.Movimiento) []MovimientoDTO {
	out := make([]MovimientoDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, FromMovimiento(m))
	}
	return out
}

// ResumenMovimientosDTO totales por tipo en respuestas.
type ResumenMovimientosDTO struct {
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	TotalUnidades int    `json:"total_unidades"`
}

// FromResumen convierte el resumen a DTOs.
func FromResumen(resumen []*repository.ResumenMovimientos) []ResumenMovimientosDTO {
	out := make([]ResumenMovimientosDTO, 0, len(resumen))
	for _, r := range resumen {
		out = append(out, ResumenMovimientosDTO{Tipo: r.Tipo, Cantidad: r.Cantidad, TotalUnidades: r.TotalUnidades})
	}
	return out
}
