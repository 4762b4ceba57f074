package dto

import (
	"time"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// ClienteRequest body para crear o actualizar un cliente.
type ClienteRequest struct {
	Nombre    string `json:"nombre"`
	RUC       string `json:"ruc,omitempty"`
	DV        string `json:"dv,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Email     string `json:"email,omitempty"`
	Direccion string `json:"direccion,omitempty"`
}

// ClienteDTO cliente en respuestas.
type ClienteDTO struct {
	ID        string    `json:"id_cliente"`
	Nombre    string    `json:"nombre"`
	RUC       string    `json:"ruc,omitempty"`
	DV        string    `json:"dv,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	Email     string    `json:"email,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}

// FromCliente convierte la entidad a DTO.
func FromCliente(c *entity.Cliente) ClienteDTO {
	return ClienteDTO{
		ID:        c.ID,
		Nombre:    c.Nombre,
		RUC:       c.RUC,
		DV:        c.DV,
		Telefono:  c.Telefono,
		Email:     c.Email,
		Direccion: c.Direccion,
		Activo:    c.Activo,
		CreatedAt: c.CreatedAt,
	}
}

// FromClientes convierte un slice de entidades a DTOs.
func FromClientes(clientes []*entity.Cliente) []ClienteDTO {
	out := make([]ClienteDTO, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, FromCliente(c))
	}
	return out
}
