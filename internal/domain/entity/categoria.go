package entity

import "time"

// Tipos de categoría.
const (
	CategoriaTipoMaterial = "MATERIAL" // productos físicos con stock
	CategoriaTipoServicio = "SERVICIO" // servicios sin stock (copias, diseño, etc.)
)

// Categoria agrupa productos y define si manejan inventario.
type Categoria struct {
	ID          string
	Nombre      string
	Tipo        string // MATERIAL | SERVICIO
	Descripcion string
	Activo      bool
	CreatedAt   time.Time
}

// TipoValido verifica que el tipo sea uno de los reconocidos.
func (c *Categoria) TipoValido() bool {
	return c.Tipo == CategoriaTipoMaterial || c.Tipo == CategoriaTipoServicio
}
