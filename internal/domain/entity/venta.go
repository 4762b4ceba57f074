package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	VentaCompletada = "COMPLETADA"
	VentaCancelada  = "CANCELADA"
)

// Venta cabecera de una venta.
type Venta struct {
	ID            string
	NumeroFactura string
	Fecha         time.Time
	IDCliente     *string // nil = consumidor final
	Subtotal      decimal.Decimal
	Impuestos     decimal.Decimal
	Total         decimal.Decimal
	Responsable   string
	Estado        string // COMPLETADA | CANCELADA
	Observaciones string

	// ClienteNombre se llena por JOIN en lecturas.
	ClienteNombre string
}

// DetalleVenta línea de una venta.
type DetalleVenta struct {
	ID             string
	IDVenta        string
	IDProducto     string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	SubtotalItem   decimal.Decimal
	ImpuestoItem   decimal.Decimal
	Descuento      decimal.Decimal

	// ProductoNombre se llena por JOIN en lecturas.
	ProductoNombre string
}
