package repository

import "github.com/copypoint/copypoint-api/internal/domain/entity"

// ProductoStats estadísticas agregadas del catálogo.
type ProductoStats struct {
	Total     int
	Activos   int
	Inactivos int
	SinStock  int
	BajoStock int
}

// ProductoRepository define el puerto de persistencia para Producto (DIP).
// Stock se modifica únicamente vía UpdateStock, dentro del motor de movimientos.
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	GetByNombre(nombre string) (*entity.Producto, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Producto, error)
	Update(producto *entity.Producto) error
	UpdateStock(id string, stock int) error
	SetActivo(id string, activo bool) error
	List(soloActivos bool) ([]*entity.Producto, error)
	ListByCategoria(idCategoria string, soloActivos bool) ([]*entity.Producto, error)
	Search(termino string) ([]*entity.Producto, error)
	// ListBajoStock devuelve los productos activos con stock < stock_minimo.
	ListBajoStock() ([]*entity.Producto, error)
	Stats() (*ProductoStats, error)
}
