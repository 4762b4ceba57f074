package dto

import (
	"time"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// CategoriaRequest body para crear o actualizar una categoría.
// El tipo solo se usa en el alta; no es editable.
type CategoriaRequest struct {
	Nombre      string `json:"nombre"`
	Tipo        string `json:"tipo,omitempty"` // MATERIAL | SERVICIO
	Descripcion string `json:"descripcion,omitempty"`
	Activo      bool   `json:"activo"`
}

// CategoriaDTO categoría en respuestas.
type CategoriaDTO struct {
	ID          string    `json:"id_categoria"`
	Nombre      string    `json:"nombre"`
	Tipo        string    `json:"tipo"`
	Descripcion string    `json:"descripcion,omitempty"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromCategoria convierte la entidad a DTO.
func FromCategoria(c *entity.Categoria) CategoriaDTO {
	return CategoriaDTO{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Tipo:        c.Tipo,
		Descripcion: c.Descripcion,
		Activo:      c.Activo,
		CreatedAt:   c.CreatedAt,
	}
}

// FromCategorias convierte un slice de entidades a DTOs.
func FromCategorias(categorias []*entity.Categoria) []CategoriaDTO {
	out := make([]CategoriaDTO, 0, len(categorias))
	for _, c := range categorias {
		out = append(out, FromCategoria(c))
	}
	return out
}
