package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// Columnas del movimiento con el nombre del producto por JOIN.
const movimientoColumns = `
	m.id_movimiento, m.id_producto, p.nombre, m.tipo_movimiento, m.cantidad,
	m.cantidad_anterior, m.cantidad_nueva, m.fecha_movimiento, m.responsable,
	m.id_venta, m.observaciones, m.costo_unitario`

// MovimientoRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create persiste un movimiento del libro.
func (r *MovimientoRepo) Create(movimiento *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos (id_movimiento, id_producto, tipo_movimiento, cantidad, cantidad_anterior, cantidad_nueva, fecha_movimiento, responsable, id_venta, observaciones, costo_unitario)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movimiento.ID, movimiento.IDProducto, movimiento.Tipo, movimiento.Cantidad,
		movimiento.StockAnterior, movimiento.StockNuevo, movimiento.Fecha,
		movimiento.Responsable, movimiento.IDVenta, movimiento.Observaciones,
		movimiento.CostoUnitario,
	)
	if err != nil {
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

func scanMovimiento(row pgx.Row) (*entity.Movimiento, error) {
	var m entity.Movimiento
	err := row.Scan(
		&m.ID, &m.IDProducto, &m.ProductoNombre, &m.Tipo, &m.Cantidad,
		&m.StockAnterior, &m.StockNuevo, &m.Fecha, &m.Responsable,
		&m.IDVenta, &m.Observaciones, &m.CostoUnitario,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovimientoRepo) GetByID(id string) (*entity.Movimiento, error) {
	query := `
		SELECT ` + movimientoColumns + `
		FROM movimientos m INNER JOIN productos p ON m.id_producto = p.id_producto
		WHERE m.id_movimiento = $1`
	m, err := scanMovimiento(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return m, nil
}

func (r *MovimientoRepo) list(query string, args ...any) ([]*entity.Movimiento, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*entity.Movimiento
	for rows.Next() {
		m, err := scanMovimiento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListByProducto movimientos de un producto, más recientes primero, acotados.
func (r *MovimientoRepo) ListByProducto(idProducto string, limit int) ([]*entity.Movimiento, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + movimientoColumns + `
		FROM movimientos m INNER JOIN productos p ON m.id_producto = p.id_producto
		WHERE m.id_producto = $1
		ORDER BY m.fecha_movimiento DESC
		LIMIT $2`
	list, err := r.list(query, idProducto, limit)
	if err != nil {
		return nil, fmt.Errorf("list movimientos by producto: %w", err)
	}
	return list, nil
}

// ListByDateRange movimientos en un rango de fechas, más recientes primero.
func (r *MovimientoRepo) ListByDateRange(desde, hasta time.Time) ([]*entity.Movimiento, error) {
	query := `
		SELECT ` + movimientoColumns + `
		FROM movimientos m INNER JOIN productos p ON m.id_producto = p.id_producto
		WHERE m.fecha_movimiento >= $1 AND m.fecha_movimiento <= $2
		ORDER BY m.fecha_movimiento DESC`
	list, err := r.list(query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("list movimientos by fecha: %w", err)
	}
	return list, nil
}

// ListByFilters movimientos por combinación libre de filtros.
func (r *MovimientoRepo) ListByFilters(filters repository.MovimientoFilters) ([]*entity.Movimiento, error) {
	query := `
		SELECT ` + movimientoColumns + `
		FROM movimientos m INNER JOIN productos p ON m.id_producto = p.id_producto
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filters.Desde != nil {
		query += fmt.Sprintf(" AND m.fecha_movimiento >= $%d", pos)
		args = append(args, *filters.Desde)
		pos++
	}
	if filters.Hasta != nil {
		query += fmt.Sprintf(" AND m.fecha_movimiento <= $%d", pos)
		args = append(args, *filters.Hasta)
		pos++
	}
	if filters.Tipo != "" {
		query += fmt.Sprintf(" AND m.tipo_movimiento = $%d", pos)
		args = append(args, filters.Tipo)
		pos++
	}
	if filters.IDProducto != "" {
		query += fmt.Sprintf(" AND m.id_producto = $%d", pos)
		args = append(args, filters.IDProducto)
		pos++
	}
	if filters.Responsable != "" {
		query += fmt.Sprintf(" AND m.responsable ILIKE '%%' || $%d || '%%'", pos)
		args = append(args, filters.Responsable)
		pos++
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(" ORDER BY m.fecha_movimiento DESC LIMIT $%d", pos)
	args = append(args, limit)

	list, err := r.list(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos by filters: %w", err)
	}
	return list, nil
}

// ListByVenta movimientos asociados a una venta.
func (r *MovimientoRepo) ListByVenta(idVenta string) ([]*entity.Movimiento, error) {
	query := `
		SELECT ` + movimientoColumns + `
		FROM movimientos m INNER JOIN productos p ON m.id_producto = p.id_producto
		WHERE m.id_venta = $1
		ORDER BY m.fecha_movimiento`
	list, err := r.list(query, idVenta)
	if err != nil {
		return nil, fmt.Errorf("list movimientos by venta: %w", err)
	}
	return list, nil
}

// Resumen totales agregados por tipo de movimiento en un rango opcional.
func (r *MovimientoRepo) Resumen(desde, hasta *time.Time) ([]*repository.ResumenMovimientos, error) {
	query := `
		SELECT tipo_movimiento, count(*), COALESCE(sum(abs(cantidad)), 0)
		FROM movimientos
		WHERE 1=1`
	args := []any{}
	pos := 1
	if desde != nil {
		query += fmt.Sprintf(" AND fecha_movimiento >= $%d", pos)
		args = append(args, *desde)
		pos++
	}
	if hasta != nil {
		query += fmt.Sprintf(" AND fecha_movimiento <= $%d", pos)
		args = append(args, *hasta)
		pos++
	}
	query += " GROUP BY tipo_movimiento ORDER BY tipo_movimiento"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("resumen movimientos: %w", err)
	}
	defer rows.Close()
	var list []*repository.ResumenMovimientos
	for rows.Next() {
		var res repository.ResumenMovimientos
		if err := rows.Scan(&res.Tipo, &res.Cantidad, &res.TotalUnidades); err != nil {
			return nil, fmt.Errorf("scan resumen: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

// Delete elimina una fila del libro. Desaconsejado: no revierte el stock.
func (r *MovimientoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM movimientos WHERE id_movimiento = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movimiento: %w", err)
	}
	return nil
}
