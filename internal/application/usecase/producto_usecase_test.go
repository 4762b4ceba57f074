package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copypoint/copypoint-api/internal/application/inventory"
	"github.com/copypoint/copypoint-api/internal/application/usecase"
	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductoRepo struct {
	productos map[string]*entity.Producto
}

func (r *fakeProductoRepo) Create(p *entity.Producto) error { r.productos[p.ID] = p; return nil }
func (r *fakeProductoRepo) GetByID(id string) (*entity.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}
func (r *fakeProductoRepo) GetByNombre(nombre string) (*entity.Producto, error) {
	for _, p := range r.productos {
		if p.Nombre == nombre {
			copia := *p
			return &copia, nil
		}
	}
	return nil, nil
}
func (r *fakeProductoRepo) GetForUpdate(id string) (*entity.Producto, error) { return r.GetByID(id) }
func (r *fakeProductoRepo) Update(p *entity.Producto) error {
	existente, ok := r.productos[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// El stock solo se mueve por UpdateStock
	stock := existente.Stock
	copia := *p
	copia.Stock = stock
	r.productos[p.ID] = &copia
	return nil
}
func (r *fakeProductoRepo) UpdateStock(id string, stock int) error {
	p, ok := r.productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}
func (r *fakeProductoRepo) SetActivo(id string, activo bool) error {
	p, ok := r.productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Activo = activo
	return nil
}
func (r *fakeProductoRepo) List(bool) ([]*entity.Producto, error)                    { return nil, nil }
func (r *fakeProductoRepo) ListByCategoria(string, bool) ([]*entity.Producto, error) { return nil, nil }
func (r *fakeProductoRepo) Search(string) ([]*entity.Producto, error)                { return nil, nil }
func (r *fakeProductoRepo) ListBajoStock() ([]*entity.Producto, error)               { return nil, nil }
func (r *fakeProductoRepo) Stats() (*repository.ProductoStats, error)                { return nil, nil }

type fakeCategoriaRepo struct {
	categorias map[string]*entity.Categoria
}

func (r *fakeCategoriaRepo) Create(c *entity.Categoria) error { r.categorias[c.ID] = c; return nil }
func (r *fakeCategoriaRepo) GetByID(id string) (*entity.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (r *fakeCategoriaRepo) GetByNombre(nombre string) (*entity.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCategoriaRepo) Update(*entity.Categoria) error          { return nil }
func (r *fakeCategoriaRepo) List(bool) ([]*entity.Categoria, error)  { return nil, nil }
func (r *fakeCategoriaRepo) TieneProductos(string) (bool, error)     { return false, nil }
func (r *fakeCategoriaRepo) Delete(id string) error                  { delete(r.categorias, id); return nil }

type fakeMovimientoRepo struct {
	movimientos []*entity.Movimiento
}

func (r *fakeMovimientoRepo) Create(m *entity.Movimiento) error {
	r.movimientos = append(r.movimientos, m)
	return nil
}
func (r *fakeMovimientoRepo) GetByID(string) (*entity.Movimiento, error) { return nil, nil }
func (r *fakeMovimientoRepo) ListByProducto(string, int) ([]*entity.Movimiento, error) {
	return nil, nil
}
func (r *fakeMovimientoRepo) ListByDateRange(time.Time, time.Time) ([]*entity.Movimiento, error) {
	return nil, nil
}
func (r *fakeMovimientoRepo) ListByFilters(repository.MovimientoFilters) ([]*entity.Movimiento, error) {
	return nil, nil
}
func (r *fakeMovimientoRepo) ListByVenta(string) ([]*entity.Movimiento, error) { return nil, nil }
func (r *fakeMovimientoRepo) Resumen(*time.Time, *time.Time) ([]*repository.ResumenMovimientos, error) {
	return nil, nil
}
func (r *fakeMovimientoRepo) Delete(string) error { return nil }

type fakeTxRunner struct {
	movRepo      *fakeMovimientoRepo
	productoRepo *fakeProductoRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	return fn(r.movRepo, r.productoRepo)
}

type catalogoFixture struct {
	uc           *usecase.ProductoUseCase
	productoRepo *fakeProductoRepo
	movRepo      *fakeMovimientoRepo
}

func setupCatalogo() *catalogoFixture {
	productoRepo := &fakeProductoRepo{productos: map[string]*entity.Producto{}}
	categoriaRepo := &fakeCategoriaRepo{categorias: map[string]*entity.Categoria{
		"cat-mat": {ID: "cat-mat", Nombre: "Papelería", Tipo: entity.CategoriaTipoMaterial, Activo: true},
		"cat-srv": {ID: "cat-srv", Nombre: "Servicios de impresión", Tipo: entity.CategoriaTipoServicio, Activo: true},
		"cat-off": {ID: "cat-off", Nombre: "Descontinuados", Tipo: entity.CategoriaTipoMaterial, Activo: false},
	}}
	movRepo := &fakeMovimientoRepo{}
	movimientos := inventory.NewRegisterMovementUseCase(
		&fakeTxRunner{movRepo: movRepo, productoRepo: productoRepo},
		productoRepo, movRepo,
	)
	uc := usecase.NewProductoUseCase(productoRepo, categoriaRepo, movimientos)
	return &catalogoFixture{uc: uc, productoRepo: productoRepo, movRepo: movRepo}
}

func inputMaterial(nombre string) usecase.ProductoInput {
	return usecase.ProductoInput{
		IDCategoria:  "cat-mat",
		Nombre:       nombre,
		Costo:        decimal.NewFromFloat(2.50),
		Precio:       decimal.NewFromFloat(4.50),
		TasaImpuesto: decimal.NewFromInt(7),
		StockMinimo:  5,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de alta de productos
// ──────────────────────────────────────────────────────────────────────────────

// El stock inicial entra por el libro de movimientos, no por asignación directa.
func TestProductoCreate_StockInicialViaLibro(t *testing.T) {
	f := setupCatalogo()

	input := inputMaterial("Resma carta")
	input.StockInicial = 25
	input.Responsable = "maria"

	producto, err := f.uc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 25, producto.Stock)

	require.Len(t, f.movRepo.movimientos, 1)
	mov := f.movRepo.movimientos[0]
	assert.Equal(t, entity.MovimientoEntrada, mov.Tipo)
	assert.Equal(t, 0, mov.StockAnterior, "el producto nace con stock cero")
	assert.Equal(t, 25, mov.StockNuevo)
	assert.Equal(t, "maria", mov.Responsable)
	assert.Equal(t, "Stock inicial", mov.Observaciones)
}

// Sin responsable, la entrada inicial queda a nombre del sistema.
func TestProductoCreate_ResponsablePorDefecto(t *testing.T) {
	f := setupCatalogo()

	input := inputMaterial("Resma carta")
	input.StockInicial = 10

	_, err := f.uc.Create(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, f.movRepo.movimientos, 1)
	assert.Equal(t, "sistema", f.movRepo.movimientos[0].Responsable)
}

// Un servicio no admite stock inicial.
func TestProductoCreate_ServicioConStockInicial(t *testing.T) {
	f := setupCatalogo()

	input := inputMaterial("Impresión a color")
	input.IDCategoria = "cat-srv"
	input.StockInicial = 5

	_, err := f.uc.Create(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.movRepo.movimientos)
}

// Servicio sin stock: alta válida, sin movimientos.
func TestProductoCreate_ServicioSinStock(t *testing.T) {
	f := setupCatalogo()

	input := inputMaterial("Impresión a color")
	input.IDCategoria = "cat-srv"

	producto, err := f.uc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, entity.CategoriaTipoServicio, producto.CategoriaTipo)
	assert.Equal(t, 0, producto.Stock)
	assert.Empty(t, f.movRepo.movimientos)
}

// Nombre duplicado: rechazado.
func TestProductoCreate_NombreDuplicado(t *testing.T) {
	f := setupCatalogo()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, inputMaterial("Resma carta"))
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, inputMaterial("Resma carta"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Categoría inexistente o inactiva: rechazado.
func TestProductoCreate_CategoriaInvalida(t *testing.T) {
	f := setupCatalogo()
	ctx := context.Background()

	input := inputMaterial("Resma carta")
	input.IDCategoria = "no-existe"
	_, err := f.uc.Create(ctx, input)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	input.IDCategoria = "cat-off"
	_, err = f.uc.Create(ctx, input)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de actualización
// ──────────────────────────────────────────────────────────────────────────────

// Update cambia datos del catálogo pero nunca el stock.
func TestProductoUpdate_NoTocaStock(t *testing.T) {
	f := setupCatalogo()
	ctx := context.Background()

	input := inputMaterial("Resma carta")
	input.StockInicial = 25
	producto, err := f.uc.Create(ctx, input)
	require.NoError(t, err)

	edit := inputMaterial("Resma carta premium")
	edit.Precio = decimal.NewFromFloat(5.25)
	actualizado, err := f.uc.Update(ctx, producto.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, "Resma carta premium", actualizado.Nombre)

	guardado, _ := f.productoRepo.GetByID(producto.ID)
	assert.Equal(t, 25, guardado.Stock, "la edición del catálogo no debe alterar el stock")
	assert.Len(t, f.movRepo.movimientos, 1, "no debe registrarse ningún movimiento nuevo")
}

// Desactivar es el borrado lógico del catálogo.
func TestProductoSetActivo(t *testing.T) {
	f := setupCatalogo()
	ctx := context.Background()

	producto, err := f.uc.Create(ctx, inputMaterial("Resma carta"))
	require.NoError(t, err)

	require.NoError(t, f.uc.SetActivo(ctx, producto.ID, false))
	guardado, _ := f.productoRepo.GetByID(producto.ID)
	assert.False(t, guardado.Activo)

	assert.ErrorIs(t, f.uc.SetActivo(ctx, "no-existe", false), domain.ErrNotFound)
}
