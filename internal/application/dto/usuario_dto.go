package dto

import (
	"time"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	NombreUsuario string `json:"nombre_usuario"`
	Password      string `json:"password"`
}

// LoginResponse token emitido y datos del usuario.
type LoginResponse struct {
	Token   string     `json:"token"`
	Usuario UsuarioDTO `json:"usuario"`
}

// ChangePasswordRequest body para POST /api/auth/change-password.
type ChangePasswordRequest struct {
	PasswordActual string `json:"password_actual"`
	PasswordNueva  string `json:"password_nueva"`
}

// CreateUsuarioRequest body para crear un usuario (solo ADMIN).
type CreateUsuarioRequest struct {
	NombreUsuario string `json:"nombre_usuario"`
	Password      string `json:"password"`
	Rol           string `json:"rol"` // ADMIN | VENDEDOR
}

// UsuarioDTO usuario en respuestas, nunca incluye el hash.
type UsuarioDTO struct {
	ID            string    `json:"id_usuario"`
	NombreUsuario string    `json:"nombre_usuario"`
	Rol           string    `json:"rol"`
	Activo        bool      `json:"activo"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromUsuario convierte la entidad a DTO.
func FromUsuario(u *entity.Usuario) UsuarioDTO {
	return UsuarioDTO{
		ID:            u.ID,
		NombreUsuario: u.NombreUsuario,
		Rol:           u.Rol,
		Activo:        u.Activo,
		CreatedAt:     u.CreatedAt,
	}
}

// FromUsuarios convierte un slice de entidades a DTOs.
func FromUsuarios(usuarios []*entity.Usuario) []UsuarioDTO {
	out := make([]UsuarioDTO, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, FromUsuario(u))
	}
	return out
}
