package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada = "ENTRADA" // recepción de mercancía, suma al stock
	MovimientoVenta   = "VENTA"   // salida por venta, resta del stock
	MovimientoAjuste  = "AJUSTE"  // corrección manual, delta con signo
)

// TipoMovimientoValido verifica que el tipo sea uno de los tres reconocidos.
func TipoMovimientoValido(tipo string) bool {
	switch tipo {
	case MovimientoEntrada, MovimientoVenta, MovimientoAjuste:
		return true
	}
	return false
}

// Movimiento es una entrada del libro de movimientos de inventario.
// Se crea una vez y no se actualiza: Cantidad es el delta firmado aplicado
// al stock y StockAnterior/StockNuevo son los snapshots antes/después,
// de modo que siempre StockNuevo = StockAnterior + Cantidad >= 0.
type Movimiento struct {
	ID            string
	IDProducto    string
	Tipo          string // ENTRADA | VENTA | AJUSTE
	Cantidad      int    // delta firmado: positivo entrada, negativo venta/ajuste-
	StockAnterior int
	StockNuevo    int
	Responsable   string
	IDVenta       *string // venta asociada para movimientos VENTA (opcional)
	Observaciones string
	CostoUnitario *decimal.Decimal
	Fecha         time.Time
	CreatedAt     time.Time

	// ProductoNombre se llena por JOIN en lecturas.
	ProductoNombre string
}
