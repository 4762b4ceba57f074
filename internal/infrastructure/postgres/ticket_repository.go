package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

const ticketColumns = `id_ticket, ticket_number, ticket_type, id_venta, id_movimiento, generated_at, generated_by, pdf_path, reprint_count`

// TicketRepo implementación sobre PostgreSQL (usable con pool o tx).
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

// NextNumero incrementa la secuencia del tipo de forma atómica y devuelve el
// número formateado. El UPDATE ... RETURNING serializa a los generadores
// concurrentes del mismo tipo.
func (r *TicketRepo) NextNumero(tipo string) (string, error) {
	query := `
		UPDATE ticket_numbering
		SET last_number = last_number + 1, updated_at = now()
		WHERE ticket_type = $1
		RETURNING last_number, prefix, suffix`
	var n int
	var prefix, suffix string
	err := r.q.QueryRow(context.Background(), query, tipo).Scan(&n, &prefix, &suffix)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("next numero ticket: %w", err)
	}
	return fmt.Sprintf("%s%06d%s", prefix, n, suffix), nil
}

// Create persiste el registro de un ticket generado.
func (r *TicketRepo) Create(ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id_ticket, ticket_number, ticket_type, id_venta, id_movimiento, generated_at, generated_by, pdf_path, reprint_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		ticket.ID, ticket.Numero, ticket.Tipo, ticket.IDVenta, ticket.IDMovimiento,
		ticket.GeneratedAt, ticket.GeneratedBy, ticket.PDFPath, ticket.ReprintCount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var t entity.Ticket
	err := row.Scan(&t.ID, &t.Numero, &t.Tipo, &t.IDVenta, &t.IDMovimiento,
		&t.GeneratedAt, &t.GeneratedBy, &t.PDFPath, &t.ReprintCount)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID obtiene un ticket por ID.
func (r *TicketRepo) GetByID(id string) (*entity.Ticket, error) {
	t, err := scanTicket(r.q.QueryRow(context.Background(),
		`SELECT `+ticketColumns+` FROM tickets WHERE id_ticket = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

// GetByNumero obtiene un ticket por número formateado.
func (r *TicketRepo) GetByNumero(numero string) (*entity.Ticket, error) {
	t, err := scanTicket(r.q.QueryRow(context.Background(),
		`SELECT `+ticketColumns+` FROM tickets WHERE ticket_number = $1`, numero))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket by numero: %w", err)
	}
	return t, nil
}

// ListByTipo tickets de un tipo, más recientes primero, acotados.
func (r *TicketRepo) ListByTipo(tipo string, limit int) ([]*entity.Ticket, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets WHERE ticket_type = $1
		ORDER BY generated_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, tipo, limit)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// IncrementReprint suma una reimpresión al ticket.
func (r *TicketRepo) IncrementReprint(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE tickets SET reprint_count = reprint_count + 1 WHERE id_ticket = $1`, id)
	if err != nil {
		return fmt.Errorf("increment reprint: %w", err)
	}
	return nil
}
