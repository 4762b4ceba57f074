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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// Columnas de producto con el tipo de categoría por JOIN.
const productoColumns = `
	p.id_producto, p.id_categoria, p.nombre, p.descripcion, p.stock, p.stock_minimo,
	p.costo, p.precio, p.tasa_impuesto, p.activo, p.fecha_creacion, p.fecha_modificacion,
	c.tipo`

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	query := `
		INSERT INTO productos (id_producto, id_categoria, nombre, descripcion, stock, stock_minimo, costo, precio, tasa_impuesto, activo, fecha_creacion, fecha_modificacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.IDCategoria, producto.Nombre, producto.Descripcion,
		producto.Stock, producto.StockMinimo, producto.Costo, producto.Precio,
		producto.TasaImpuesto, producto.Activo, producto.CreatedAt, producto.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

func (r *ProductoRepo) scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(
		&p.ID, &p.IDCategoria, &p.Nombre, &p.Descripcion, &p.Stock, &p.StockMinimo,
		&p.Costo, &p.Precio, &p.TasaImpuesto, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoriaTipo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un producto por ID (incluye el tipo de categoría).
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos p INNER JOIN categorias c ON p.id_categoria = c.id_categoria
		WHERE p.id_producto = $1`
	p, err := r.scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetByNombre obtiene un producto por nombre exacto.
func (r *ProductoRepo) GetByNombre(nombre string) (*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos p INNER JOIN categorias c ON p.id_categoria = c.id_categoria
		WHERE p.nombre = $1`
	p, err := r.scanProducto(r.q.QueryRow(context.Background(), query, nombre))
	if err != nil {
		return nil, fmt.Errorf("get producto by nombre: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Dos escritores concurrentes sobre el mismo producto se serializan aquí.
func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos p INNER JOIN categorias c ON p.id_categoria = c.id_categoria
		WHERE p.id_producto = $1
		FOR UPDATE OF p`
	p, err := r.scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get producto for update: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. No toca stock (se maneja vía movimientos).
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	query := `
		UPDATE productos
		SET id_categoria = $2, nombre = $3, descripcion = $4, stock_minimo = $5,
		    costo = $6, precio = $7, tasa_impuesto = $8, activo = $9, fecha_modificacion = $10
		WHERE id_producto = $1`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.IDCategoria, producto.Nombre, producto.Descripcion,
		producto.StockMinimo, producto.Costo, producto.Precio, producto.TasaImpuesto,
		producto.Activo, producto.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo el stock (usado por el motor de movimientos, dentro de tx).
func (r *ProductoRepo) UpdateStock(id string, stock int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET stock = $2, fecha_modificacion = now() WHERE id_producto = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// SetActivo activa o desactiva un producto (borrado suave).
func (r *ProductoRepo) SetActivo(id string, activo bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET activo = $2, fecha_modificacion = now() WHERE id_producto = $1`,
		id, activo,
	)
	if err != nil {
		return fmt.Errorf("set activo producto: %w", err)
	}
	return nil
}

func (r *ProductoRepo) list(query string, args ...any) ([]*entity.Producto, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(
			&p.ID, &p.IDCategoria, &p.Nombre, &p.Descripcion, &p.Stock, &p.StockMinimo,
			&p.Costo, &p.Precio, &p.TasaImpuesto, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
			&p.CategoriaTipo,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List lista productos, opcionalmente solo los activos.
func (r *ProductoRepo) List(soloActivos bool) ([]*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos p INNER JOIN categorias c ON p.id_categoria = c.id_categoria`
	if soloActivos {
		query += ` WHERE p.activo = TRUE`
	}
	query += ` ORDER BY p.nombre`
	list, err := r.list(query)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	return list, nil
}

// ListByCategoria lista productos de una categoría.
func (r *ProductoRepo) ListByCategoria(idCategoria string, soloActivos bool) ([]*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos p INNER JOIN categorias c ON p.id_categoria = c.id_categoria
		WHERE p.id_categoria = $1`
	if soloActivos {
		query += ` AND p.activo = TRUE`
	}
	query += ` ORDER BY p.nombre`
	list, err := r.list(query, idCategoria)
	if err != nil {
		return nil, fmt.Errorf("list productos by categoria: %w", err)
	}
	return list, nil
}

// Search busca productos activos por substring del nombre (case-insensitive).
func (r *ProductoRepo) Search(termino string) ([]*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos p INNER JOIN categorias c ON p.id_categoria = c.id_categoria
		WHERE p.activo = TRUE AND p.nombre ILIKE '%' || $1 || '%'
		ORDER BY p.nombre`
	list, err := r.list(query, termino)
	if err != nil {
		return nil, fmt.Errorf("search productos: %w", err)
	}
	return list, nil
}

// ListBajoStock productos MATERIAL activos con stock por debajo del mínimo.
func (r *ProductoRepo) ListBajoStock() ([]*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos p INNER JOIN categorias c ON p.id_categoria = c.id_categoria
		WHERE p.activo = TRUE AND c.tipo = 'MATERIAL' AND p.stock < p.stock_minimo
		ORDER BY (p.stock_minimo - p.stock) DESC, p.nombre`
	list, err := r.list(query)
	if err != nil {
		return nil, fmt.Errorf("list bajo stock: %w", err)
	}
	return list, nil
}

// Stats estadísticas agregadas del catálogo.
func (r *ProductoRepo) Stats() (*repository.ProductoStats, error) {
	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE activo),
		       count(*) FILTER (WHERE NOT activo),
		       count(*) FILTER (WHERE activo AND stock = 0),
		       count(*) FILTER (WHERE activo AND stock < stock_minimo)
		FROM productos`
	var s repository.ProductoStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.Total, &s.Activos, &s.Inactivos, &s.SinStock, &s.BajoStock,
	)
	if err != nil {
		return nil, fmt.Errorf("stats productos: %w", err)
	}
	return &s, nil
}
