package dto

import (
	"time"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// TicketDTO registro de un ticket generado.
type TicketDTO struct {
	ID           string    `json:"id_ticket"`
	Numero       string    `json:"numero"`
	Tipo         string    `json:"tipo"`
	IDVenta      *string   `json:"id_venta,omitempty"`
	IDMovimiento *string   `json:"id_movimiento,omitempty"`
	GeneratedAt  time.Time `json:"generated_at"`
	GeneratedBy  string    `json:"generated_by"`
	PDFPath      string    `json:"pdf_path"`
	ReprintCount int       `json:"reprint_count"`
}

// FromTicket convierte la entidad a DTO.
func FromTicket(t *entity.Ticket) TicketDTO {
	return TicketDTO{
		ID:           t.ID,
		Numero:       t.Numero,
		Tipo:         t.Tipo,
		IDVenta:      t.IDVenta,
		IDMovimiento: t.IDMovimiento,
		GeneratedAt:  t.GeneratedAt,
		GeneratedBy:  t.GeneratedBy,
		PDFPath:      t.PDFPath,
		ReprintCount: t.ReprintCount,
	}
}

// FromTickets convierte un slice de entidades a DTOs.
func FromTickets(tickets []*entity.Ticket) []TicketDTO {
	out := make([]TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, FromTicket(t))
	}
	return out
}

// ReporteResponse ruta del archivo generado por un reporte.
type ReporteResponse struct {
	Archivo string `json:"archivo"`
}
