package repository

import "github.com/copypoint/copypoint-api/internal/domain/entity"

// ClienteRepository define el puerto de persistencia para Cliente (DIP).
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	GetByNombre(nombre string) (*entity.Cliente, error)
	GetByRUC(ruc string) (*entity.Cliente, error)
	Update(cliente *entity.Cliente) error
	List(soloActivos bool) ([]*entity.Cliente, error)
	SetActivo(id string, activo bool) error
}
