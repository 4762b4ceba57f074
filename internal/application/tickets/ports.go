package tickets

import (
	"time"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// TicketData datos ya resueltos para renderizar un ticket.
// Venta y Detalles se llenan para tickets de venta; Movimiento para
// tickets de entrada y ajuste.
type TicketData struct {
	Numero      string
	Tipo        string
	Encabezado  []string // líneas de encabezado de la empresa
	Moneda      string
	Fecha       time.Time
	GeneratedBy string
	Copia       bool // true en reimpresiones

	Venta      *entity.Venta
	Detalles   []*entity.DetalleVenta
	Movimiento *entity.Movimiento
}

// PDFGenerator renderiza tickets como PDF.
type PDFGenerator interface {
	GenerarTicket(data TicketData) ([]byte, error)
}
