package repository

import "github.com/copypoint/copypoint-api/internal/domain/entity"

// CategoriaRepository define el puerto de persistencia para Categoria (DIP).
type CategoriaRepository interface {
	Create(categoria *entity.Categoria) error
	GetByID(id string) (*entity.Categoria, error)
	GetByNombre(nombre string) (*entity.Categoria, error)
	Update(categoria *entity.Categoria) error
	List(soloActivas bool) ([]*entity.Categoria, error)
	// TieneProductos indica si existen productos asociados (bloquea el borrado).
	TieneProductos(id string) (bool, error)
	Delete(id string) error
}
