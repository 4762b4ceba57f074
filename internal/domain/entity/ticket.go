package entity

import "time"

// Tipos de ticket: coinciden con los tipos de movimiento más VENTA para facturas.
const (
	TicketVenta   = "VENTA"
	TicketEntrada = "ENTRADA"
	TicketAjuste  = "AJUSTE"
)

// TipoTicketValido verifica que el tipo sea uno de los reconocidos.
func TipoTicketValido(tipo string) bool {
	switch tipo {
	case TicketVenta, TicketEntrada, TicketAjuste:
		return true
	}
	return false
}

// Ticket registro de un documento generado (ticket de venta, entrada o ajuste).
type Ticket struct {
	ID           string
	Numero       string // número formateado: prefix + secuencia + suffix
	Tipo         string
	IDVenta      *string
	IDMovimiento *string
	GeneratedAt  time.Time
	GeneratedBy  string
	PDFPath      string
	ReprintCount int
}

// TicketSequence estado de la numeración por tipo de ticket.
type TicketSequence struct {
	Tipo       string
	LastNumber int
	Prefix     string
	Suffix     string
	UpdatedAt  time.Time
}
