package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/copypoint/copypoint-api/internal/application/inventory"
	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

// ProductoUseCase gestiona el catálogo de productos y servicios.
// El stock no se edita aquí: el alta con stock inicial registra una ENTRADA
// en el libro de movimientos, y de ahí en adelante solo el motor de
// movimientos lo modifica.
type ProductoUseCase struct {
	productoRepo  repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	movimientos   *inventory.RegisterMovementUseCase
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(
	productoRepo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	movimientos *inventory.RegisterMovementUseCase,
) *ProductoUseCase {
	return &ProductoUseCase{
		productoRepo:  productoRepo,
		categoriaRepo: categoriaRepo,
		movimientos:   movimientos,
	}
}

// ProductoInput datos para crear o actualizar un producto.
type ProductoInput struct {
	IDCategoria  string
	Nombre       string
	Descripcion  string
	StockMinimo  int
	Costo        decimal.Decimal
	Precio       decimal.Decimal
	TasaImpuesto decimal.Decimal
	// StockInicial solo aplica al alta de productos materiales; genera una
	// ENTRADA en el libro de movimientos.
	StockInicial int
	Responsable  string
}

func (uc *ProductoUseCase) validar(input ProductoInput) (*entity.Categoria, error) {
	if input.Nombre == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if input.Precio.LessThan(decimal.Zero) || input.Costo.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: costo y precio no pueden ser negativos", domain.ErrInvalidInput)
	}
	if input.TasaImpuesto.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: la tasa de impuesto no puede ser negativa", domain.ErrInvalidInput)
	}
	if input.StockMinimo < 0 {
		return nil, fmt.Errorf("%w: el stock mínimo no puede ser negativo", domain.ErrInvalidInput)
	}
	categoria, err := uc.categoriaRepo.GetByID(input.IDCategoria)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, input.IDCategoria)
	}
	if !categoria.Activo {
		return nil, fmt.Errorf("%w: la categoría está inactiva", domain.ErrInvalidInput)
	}
	return categoria, nil
}

// Create da de alta un producto. Los servicios no admiten stock inicial.
func (uc *ProductoUseCase) Create(ctx context.Context, input ProductoInput) (*entity.Producto, error) {
	categoria, err := uc.validar(input)
	if err != nil {
		return nil, err
	}
	if input.StockInicial < 0 {
		return nil, fmt.Errorf("%w: el stock inicial no puede ser negativo", domain.ErrInvalidInput)
	}
	if categoria.Tipo == entity.CategoriaTipoServicio && input.StockInicial != 0 {
		return nil, fmt.Errorf("%w: los servicios no manejan stock", domain.ErrInvalidInput)
	}

	existente, err := uc.productoRepo.GetByNombre(input.Nombre)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, fmt.Errorf("%w: ya existe un producto %q", domain.ErrDuplicate, input.Nombre)
	}

	now := time.Now()
	producto := &entity.Producto{
		ID:            uuid.New().String(),
		IDCategoria:   input.IDCategoria,
		Nombre:        input.Nombre,
		Descripcion:   input.Descripcion,
		Stock:         0,
		StockMinimo:   input.StockMinimo,
		Costo:         input.Costo,
		Precio:        input.Precio,
		TasaImpuesto:  input.TasaImpuesto,
		Activo:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
		CategoriaTipo: categoria.Tipo,
	}
	if err := uc.productoRepo.Create(producto); err != nil {
		return nil, err
	}

	// El stock inicial entra por el libro, como cualquier otra entrada.
	if input.StockInicial > 0 {
		responsable := input.Responsable
		if responsable == "" {
			responsable = "sistema"
		}
		costo := input.Costo
		mov, err := uc.movimientos.CreateEntrada(ctx, producto.ID, input.StockInicial, responsable, &costo, "Stock inicial")
		if err != nil {
			return nil, err
		}
		producto.Stock = mov.StockNuevo
	}
	return producto, nil
}

// Update modifica los datos de un producto. No toca el stock.
func (uc *ProductoUseCase) Update(ctx context.Context, id string, input ProductoInput) (*entity.Producto, error) {
	producto, err := uc.productoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	categoria, err := uc.validar(input)
	if err != nil {
		return nil, err
	}
	if input.Nombre != producto.Nombre {
		existente, err := uc.productoRepo.GetByNombre(input.Nombre)
		if err != nil {
			return nil, err
		}
		if existente != nil && existente.ID != id {
			return nil, fmt.Errorf("%w: ya existe un producto %q", domain.ErrDuplicate, input.Nombre)
		}
	}

	producto.IDCategoria = input.IDCategoria
	producto.Nombre = input.Nombre
	producto.Descripcion = input.Descripcion
	producto.StockMinimo = input.StockMinimo
	producto.Costo = input.Costo
	producto.Precio = input.Precio
	producto.TasaImpuesto = input.TasaImpuesto
	producto.UpdatedAt = time.Now()
	producto.CategoriaTipo = categoria.Tipo

	if err := uc.productoRepo.Update(producto); err != nil {
		return nil, err
	}
	return producto, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductoUseCase) GetByID(ctx context.Context, id string) (*entity.Producto, error) {
	producto, err := uc.productoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return producto, nil
}

// List productos, opcionalmente solo activos.
func (uc *ProductoUseCase) List(ctx context.Context, soloActivos bool) ([]*entity.Producto, error) {
	return uc.productoRepo.List(soloActivos)
}

// ListByCategoria productos de una categoría.
func (uc *ProductoUseCase) ListByCategoria(ctx context.Context, idCategoria string, soloActivos bool) ([]*entity.Producto, error) {
	categoria, err := uc.categoriaRepo.GetByID(idCategoria)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, idCategoria)
	}
	return uc.productoRepo.ListByCategoria(idCategoria, soloActivos)
}

// Search busca productos por nombre o descripción.
func (uc *ProductoUseCase) Search(ctx context.Context, termino string) ([]*entity.Producto, error) {
	if termino == "" {
		return nil, fmt.Errorf("%w: el término de búsqueda es obligatorio", domain.ErrInvalidInput)
	}
	return uc.productoRepo.Search(termino)
}

// SetActivo activa o desactiva (borrado lógico) un producto.
func (uc *ProductoUseCase) SetActivo(ctx context.Context, id string, activo bool) error {
	producto, err := uc.productoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if producto == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return uc.productoRepo.SetActivo(id, activo)
}

// ListBajoStock productos activos con stock bajo su mínimo.
func (uc *ProductoUseCase) ListBajoStock(ctx context.Context) ([]*entity.Producto, error) {
	return uc.productoRepo.ListBajoStock()
}

// Stats estadísticas agregadas del catálogo.
func (uc *ProductoUseCase) Stats(ctx context.Context) (*repository.ProductoStats, error) {
	return uc.productoRepo.Stats()
}
