package repository

import "github.com/copypoint/copypoint-api/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	GetByNombreUsuario(nombreUsuario string) (*entity.Usuario, error)
	Update(usuario *entity.Usuario) error
	UpdatePassword(id, passwordHash string) error
	SetActivo(id string, activo bool) error
	List() ([]*entity.Usuario, error)
	ListByRol(rol string) ([]*entity.Usuario, error)
}
