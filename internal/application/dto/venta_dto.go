package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/copypoint/copypoint-api/internal/application/sales"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// LineaVentaRequest línea del body de una venta.
type LineaVentaRequest struct {
	IDProducto string          `json:"id_producto"`
	Cantidad   int             `json:"cantidad"`
	Descuento  decimal.Decimal `json:"descuento,omitempty"`
}

// CreateVentaRequest body para POST /api/ventas.
type CreateVentaRequest struct {
	IDCliente     *string             `json:"id_cliente,omitempty"` // nil = consumidor final
	Lineas        []LineaVentaRequest `json:"lineas"`
	Observaciones string              `json:"observaciones,omitempty"`
}

// CancelVentaRequest body para POST /api/ventas/:id/cancelar.
type CancelVentaRequest struct {
	Motivo string `json:"motivo,omitempty"`
}

// DetalleVentaDTO línea de venta en respuestas.
type DetalleVentaDTO struct {
	ID             string          `json:"id_detalle"`
	IDProducto     string          `json:"id_producto"`
	ProductoNombre string          `json:"producto_nombre,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	SubtotalItem   decimal.Decimal `json:"subtotal_item"`
	ImpuestoItem   decimal.Decimal `json:"impuesto_item"`
	Descuento      decimal.Decimal `json:"descuento"`
}

// VentaDTO cabecera de venta en respuestas.
type VentaDTO struct {
	ID            string            `json:"id_venta"`
	NumeroFactura string            `json:"numero_factura"`
	Fecha         time.Time         `json:"fecha"`
	IDCliente     *string           `json:"id_cliente,omitempty"`
	ClienteNombre string            `json:"cliente_nombre,omitempty"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Impuestos     decimal.Decimal   `json:"impuestos"`
	Total         decimal.Decimal   `json:"total"`
	Responsable   string            `json:"responsable"`
	Estado        string            `json:"estado"`
	Observaciones string            `json:"observaciones,omitempty"`
	Detalles      []DetalleVentaDTO `json:"detalles,omitempty"`
}

// FromVenta convierte la cabecera a DTO.
func FromVenta(v *entity.Venta) VentaDTO {
	return VentaDTO{
		ID:            v.ID,
		NumeroFactura: v.NumeroFactura,
		Fecha:         v.Fecha,
		IDCliente:     v.IDCliente,
		ClienteNombre: v.ClienteNombre,
		Subtotal:      v.Subtotal,
		Impuestos:     v.Impuestos,
		Total:         v.Total,
		Responsable:   v.Responsable,
		Estado:        v.Estado,
		Observaciones: v.Observaciones,
	}
}

// FromVentaCompleta convierte cabecera y líneas a DTO.
func FromVentaCompleta(vc *sales.VentaCompleta) VentaDTO {
	out := FromVenta(vc.Venta)
	out.Detalles = make([]DetalleVentaDTO, 0, len(vc.Detalles))
	for _, d := range vc.Detalles {
		out.Detalles = append(out.Detalles, DetalleVentaDTO{
			ID:             d.ID,
			IDProducto:     d.IDProducto,
			ProductoNombre: d.ProductoNombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			SubtotalItem:   d.SubtotalItem,
			ImpuestoItem:   d.ImpuestoItem,
			Descuento:      d.Descuento,
		})
	}
	return out
}

// FromVentas convierte un slice de cabeceras a DTOs.
func FromVentas(ventas []*entity.Venta) []VentaDTO {
	out := make([]VentaDTO, 0, len(ventas))
	for _, v := range ventas {
		out = append(out, FromVenta(v))
	}
	return out
}
