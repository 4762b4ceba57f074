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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación sobre PostgreSQL (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste un cliente.
func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	query := `
		INSERT INTO clientes (id_cliente, nombre, ruc, dv, telefono, email, direccion, activo, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.Nombre, cliente.RUC, cliente.DV, cliente.Telefono,
		cliente.Email, cliente.Direccion, cliente.Activo, cliente.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(&c.ID, &c.Nombre, &c.RUC, &c.DV, &c.Telefono, &c.Email,
		&c.Direccion, &c.Activo, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const clienteColumns = `id_cliente, nombre, ruc, dv, telefono, email, direccion, activo, fecha_creacion`

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(context.Background(),
		`SELECT `+clienteColumns+` FROM clientes WHERE id_cliente = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// GetByNombre obtiene un cliente por nombre exacto.
func (r *ClienteRepo) GetByNombre(nombre string) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(context.Background(),
		`SELECT `+clienteColumns+` FROM clientes WHERE nombre = $1`, nombre))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente by nombre: %w", err)
	}
	return c, nil
}

// GetByRUC obtiene un cliente por RUC.
func (r *ClienteRepo) GetByRUC(ruc string) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(context.Background(),
		`SELECT `+clienteColumns+` FROM clientes WHERE ruc = $1`, ruc))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente by ruc: %w", err)
	}
	return c, nil
}

// Update actualiza un cliente existente.
func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	query := `
		UPDATE clientes SET nombre = $2, ruc = $3, dv = $4, telefono = $5, email = $6, direccion = $7
		WHERE id_cliente = $1`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.Nombre, cliente.RUC, cliente.DV, cliente.Telefono,
		cliente.Email, cliente.Direccion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// List lista clientes, opcionalmente solo los activos.
func (r *ClienteRepo) List(soloActivos bool) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes`
	if soloActivos {
		query += ` WHERE activo = TRUE`
	}
	query += ` ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.Nombre, &c.RUC, &c.DV, &c.Telefono, &c.Email,
			&c.Direccion, &c.Activo, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SetActivo activa o desactiva un cliente (borrado suave).
func (r *ClienteRepo) SetActivo(id string, activo bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE clientes SET activo = $2 WHERE id_cliente = $1`, id, activo)
	if err != nil {
		return fmt.Errorf("set activo cliente: %w", err)
	}
	return nil
}
