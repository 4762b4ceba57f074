package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin    = "ADMIN"
	RolVendedor = "VENDEDOR"
)

// RolValido verifica que el rol sea uno de los reconocidos.
func RolValido(rol string) bool {
	return rol == RolAdmin || rol == RolVendedor
}

// Usuario representa un usuario del sistema.
type Usuario struct {
	ID            string
	NombreUsuario string
	PasswordHash  string // bcrypt, nunca en claro después de persistir
	Rol           string // ADMIN | VENDEDOR
	Activo        bool
	CreatedAt     time.Time
}
