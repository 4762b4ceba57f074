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

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación sobre PostgreSQL (usable con pool o tx).
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoriaRepo) Create(categoria *entity.Categoria) error {
	query := `
		INSERT INTO categorias (id_categoria, nombre, tipo, descripcion, activo, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		categoria.ID, categoria.Nombre, categoria.Tipo, categoria.Descripcion,
		categoria.Activo, categoria.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

func scanCategoria(row pgx.Row) (*entity.Categoria, error) {
	var c entity.Categoria
	err := row.Scan(&c.ID, &c.Nombre, &c.Tipo, &c.Descripcion, &c.Activo, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoriaRepo) GetByID(id string) (*entity.Categoria, error) {
	query := `
		SELECT id_categoria, nombre, tipo, descripcion, activo, fecha_creacion
		FROM categorias WHERE id_categoria = $1`
	c, err := scanCategoria(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return c, nil
}

// GetByNombre obtiene una categoría por nombre exacto.
func (r *CategoriaRepo) GetByNombre(nombre string) (*entity.Categoria, error) {
	query := `
		SELECT id_categoria, nombre, tipo, descripcion, activo, fecha_creacion
		FROM categorias WHERE nombre = $1`
	c, err := scanCategoria(r.q.QueryRow(context.Background(), query, nombre))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria by nombre: %w", err)
	}
	return c, nil
}

// Update actualiza una categoría existente.
func (r *CategoriaRepo) Update(categoria *entity.Categoria) error {
	query := `
		UPDATE categorias SET nombre = $2, tipo = $3, descripcion = $4, activo = $5
		WHERE id_categoria = $1`
	_, err := r.q.Exec(context.Background(), query,
		categoria.ID, categoria.Nombre, categoria.Tipo, categoria.Descripcion, categoria.Activo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update categoria: %w", err)
	}
	return nil
}

// List lista categorías, opcionalmente solo las activas.
func (r *CategoriaRepo) List(soloActivas bool) ([]*entity.Categoria, error) {
	query := `
		SELECT id_categoria, nombre, tipo, descripcion, activo, fecha_creacion
		FROM categorias`
	if soloActivas {
		query += ` WHERE activo = TRUE`
	}
	query += ` ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Categoria
	for rows.Next() {
		var c entity.Categoria
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Tipo, &c.Descripcion, &c.Activo, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// TieneProductos indica si existen productos asociados a la categoría.
func (r *CategoriaRepo) TieneProductos(id string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM productos WHERE id_categoria = $1)`, id,
	).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("categoria tiene productos: %w", err)
	}
	return existe, nil
}

// Delete elimina una categoría por ID.
func (r *CategoriaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM categorias WHERE id_categoria = $1`, id)
	if err != nil {
		return fmt.Errorf("delete categoria: %w", err)
	}
	return nil
}
