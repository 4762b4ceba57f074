package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// Columnas de venta con el nombre del cliente por LEFT JOIN (puede ser consumidor final).
const ventaColumns = `
	v.id_venta, v.numero_factura, v.fecha_venta, v.id_cliente, v.subtotal,
	v.impuestos, v.total, v.responsable, v.estado, v.observaciones,
	COALESCE(c.nombre, '')`

// VentaRepo implementación sobre PostgreSQL (usable con pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	query := `
		INSERT INTO ventas (id_venta, numero_factura, fecha_venta, id_cliente, subtotal, impuestos, total, responsable, estado, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.NumeroFactura, venta.Fecha, venta.IDCliente,
		venta.Subtotal, venta.Impuestos, venta.Total, venta.Responsable,
		venta.Estado, venta.Observaciones,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

func scanVenta(row pgx.Row) (*entity.Venta, error) {
	var v entity.Venta
	err := row.Scan(
		&v.ID, &v.NumeroFactura, &v.Fecha, &v.IDCliente, &v.Subtotal,
		&v.Impuestos, &v.Total, &v.Responsable, &v.Estado, &v.Observaciones,
		&v.ClienteNombre,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByID obtiene una venta por ID.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	query := `
		SELECT ` + ventaColumns + `
		FROM ventas v LEFT JOIN clientes c ON v.id_cliente = c.id_cliente
		WHERE v.id_venta = $1`
	v, err := scanVenta(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return v, nil
}

// GetByNumeroFactura obtiene una venta por número de factura.
func (r *VentaRepo) GetByNumeroFactura(numero string) (*entity.Venta, error) {
	query := `
		SELECT ` + ventaColumns + `
		FROM ventas v LEFT JOIN clientes c ON v.id_cliente = c.id_cliente
		WHERE v.numero_factura = $1`
	v, err := scanVenta(r.q.QueryRow(context.Background(), query, numero))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta by numero: %w", err)
	}
	return v, nil
}

// ListByDateRange ventas en un rango de fechas, más recientes primero.
func (r *VentaRepo) ListByDateRange(desde, hasta time.Time) ([]*entity.Venta, error) {
	query := `
		SELECT ` + ventaColumns + `
		FROM ventas v LEFT JOIN clientes c ON v.id_cliente = c.id_cliente
		WHERE v.fecha_venta >= $1 AND v.fecha_venta <= $2
		ORDER BY v.fecha_venta DESC`
	rows, err := r.q.Query(context.Background(), query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venta
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// UpdateTotales reemplaza subtotal, impuestos y total (tras añadir o quitar líneas).
func (r *VentaRepo) UpdateTotales(id string, subtotal, impuestos, total decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ventas SET subtotal = $2, impuestos = $3, total = $4 WHERE id_venta = $1`,
		id, subtotal, impuestos, total,
	)
	if err != nil {
		return fmt.Errorf("update totales venta: %w", err)
	}
	return nil
}

// UpdateEstado cambia el estado de la venta (COMPLETADA -> CANCELADA).
func (r *VentaRepo) UpdateEstado(id, estado string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ventas SET estado = $2 WHERE id_venta = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado venta: %w", err)
	}
	return nil
}

// CreateDetalle persiste una línea de venta.
func (r *VentaRepo) CreateDetalle(detalle *entity.DetalleVenta) error {
	query := `
		INSERT INTO detalle_ventas (id_detalle, id_venta, id_producto, cantidad, precio_unitario, subtotal_item, impuesto_item, descuento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		detalle.ID, detalle.IDVenta, detalle.IDProducto, detalle.Cantidad,
		detalle.PrecioUnitario, detalle.SubtotalItem, detalle.ImpuestoItem, detalle.Descuento,
	)
	if err != nil {
		return fmt.Errorf("insert detalle venta: %w", err)
	}
	return nil
}

// ListDetalles líneas de una venta con el nombre del producto.
func (r *VentaRepo) ListDetalles(idVenta string) ([]*entity.DetalleVenta, error) {
	query := `
		SELECT d.id_detalle, d.id_venta, d.id_producto, d.cantidad, d.precio_unitario,
		       d.subtotal_item, d.impuesto_item, d.descuento, p.nombre
		FROM detalle_ventas d INNER JOIN productos p ON d.id_producto = p.id_producto
		WHERE d.id_venta = $1
		ORDER BY d.id_detalle`
	rows, err := r.q.Query(context.Background(), query, idVenta)
	if err != nil {
		return nil, fmt.Errorf("list detalles venta: %w", err)
	}
	defer rows.Close()
	var list []*entity.DetalleVenta
	for rows.Next() {
		var d entity.DetalleVenta
		if err := rows.Scan(&d.ID, &d.IDVenta, &d.IDProducto, &d.Cantidad, &d.PrecioUnitario,
			&d.SubtotalItem, &d.ImpuestoItem, &d.Descuento, &d.ProductoNombre); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
