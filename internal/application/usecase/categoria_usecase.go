package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

// CategoriaUseCase gestiona las categorías del catálogo.
type CategoriaUseCase struct {
	categoriaRepo repository.CategoriaRepository
}

// NewCategoriaUseCase construye el caso de uso.
func NewCategoriaUseCase(categoriaRepo repository.CategoriaRepository) *CategoriaUseCase {
	return &CategoriaUseCase{categoriaRepo: categoriaRepo}
}

// CategoriaInput datos para crear o actualizar una categoría.
type CategoriaInput struct {
	Nombre      string
	Tipo        string // MATERIAL | SERVICIO
	Descripcion string
}

// Create da de alta una categoría.
func (uc *CategoriaUseCase) Create(ctx context.Context, input CategoriaInput) (*entity.Categoria, error) {
	if input.Nombre == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	categoria := &entity.Categoria{
		ID:          uuid.New().String(),
		Nombre:      input.Nombre,
		Tipo:        input.Tipo,
		Descripcion: input.Descripcion,
		Activo:      true,
		CreatedAt:   time.Now(),
	}
	if !categoria.TipoValido() {
		return nil, fmt.Errorf("%w: tipo de categoría %q", domain.ErrInvalidInput, input.Tipo)
	}
	existente, err := uc.categoriaRepo.GetByNombre(input.Nombre)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, fmt.Errorf("%w: ya existe una categoría %q", domain.ErrDuplicate, input.Nombre)
	}
	if err := uc.categoriaRepo.Create(categoria); err != nil {
		return nil, err
	}
	return categoria, nil
}

// Update modifica nombre y descripción. El tipo NO es editable: cambiar
// MATERIAL por SERVICIO invalidaría el stock de los productos asociados.
func (uc *CategoriaUseCase) Update(ctx context.Context, id string, nombre, descripcion string, activo bool) (*entity.Categoria, error) {
	categoria, err := uc.categoriaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	if nombre == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if nombre != categoria.Nombre {
		existente, err := uc.categoriaRepo.GetByNombre(nombre)
		if err != nil {
			return nil, err
		}
		if existente != nil && existente.ID != id {
			return nil, fmt.Errorf("%w: ya existe una categoría %q", domain.ErrDuplicate, nombre)
		}
	}
	categoria.Nombre = nombre
	categoria.Descripcion = descripcion
	categoria.Activo = activo
	if err := uc.categoriaRepo.Update(categoria); err != nil {
		return nil, err
	}
	return categoria, nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoriaUseCase) GetByID(ctx context.Context, id string) (*entity.Categoria, error) {
	categoria, err := uc.categoriaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return categoria, nil
}

// List categorías, opcionalmente solo activas.
func (uc *CategoriaUseCase) List(ctx context.Context, soloActivas bool) ([]*entity.Categoria, error) {
	return uc.categoriaRepo.List(soloActivas)
}

// Delete elimina una categoría sin productos asociados.
func (uc *CategoriaUseCase) Delete(ctx context.Context, id string) error {
	categoria, err := uc.categoriaRepo.GetByID(id)
	if err != nil {
		return err
	}
	if categoria == nil {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	tiene, err := uc.categoriaRepo.TieneProductos(id)
	if err != nil {
		return err
	}
	if tiene {
		return fmt.Errorf("%w: la categoría tiene productos asociados", domain.ErrConflict)
	}
	return uc.categoriaRepo.Delete(id)
}
