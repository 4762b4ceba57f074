package repository

import "github.com/copypoint/copypoint-api/internal/domain/entity"

// TicketRepository define el puerto de persistencia para tickets y su numeración.
type TicketRepository interface {
	// NextNumero incrementa atómicamente la secuencia del tipo y devuelve el
	// número formateado (prefix + secuencia + suffix).
	NextNumero(tipo string) (string, error)
	Create(ticket *entity.Ticket) error
	GetByID(id string) (*entity.Ticket, error)
	GetByNumero(numero string) (*entity.Ticket, error)
	ListByTipo(tipo string, limit int) ([]*entity.Ticket, error)
	IncrementReprint(id string) error
}
