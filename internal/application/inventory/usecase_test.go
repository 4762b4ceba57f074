package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copypoint/copypoint-api/internal/application/inventory"
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

func newFakeProductoRepo(productos ...*entity.Producto) *fakeProductoRepo {
	r := &fakeProductoRepo{productos: map[string]*entity.Producto{}}
	for _, p := range productos {
		r.productos[p.ID] = p
	}
	return r
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
func (r *fakeProductoRepo) Update(p *entity.Producto) error                  { r.productos[p.ID] = p; return nil }
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
func (r *fakeProductoRepo) List(bool) ([]*entity.Producto, error)                   { return nil, nil }
func (r *fakeProductoRepo) ListByCategoria(string, bool) ([]*entity.Producto, error) { return nil, nil }
func (r *fakeProductoRepo) Search(string) ([]*entity.Producto, error)               { return nil, nil }
func (r *fakeProductoRepo) ListBajoStock() ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.productos {
		if p.Activo && p.BajoStock() {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeProductoRepo) Stats() (*repository.ProductoStats, error) { return nil, nil }

type fakeMovimientoRepo struct {
	movimientos []*entity.Movimiento
}

func (r *fakeMovimientoRepo) Create(m *entity.Movimiento) error {
	r.movimientos = append(r.movimientos, m)
	return nil
}
func (r *fakeMovimientoRepo) GetByID(id string) (*entity.Movimiento, error) {
	for _, m := range r.movimientos {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}
func (r *fakeMovimientoRepo) ListByProducto(idProducto string, limit int) ([]*entity.Movimiento, error) {
	var out []*entity.Movimiento
	for _, m := range r.movimientos {
		if m.IDProducto == idProducto {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeMovimientoRepo) ListByDateRange(desde, hasta time.Time) ([]*entity.Movimiento, error) {
	return r.movimientos, nil
}
func (r *fakeMovimientoRepo) ListByFilters(repository.MovimientoFilters) ([]*entity.Movimiento, error) {
	return r.movimientos, nil
}
func (r *fakeMovimientoRepo) ListByVenta(idVenta string) ([]*entity.Movimiento, error) {
	var out []*entity.Movimiento
	for _, m := range r.movimientos {
		if m.IDVenta != nil && *m.IDVenta == idVenta {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeMovimientoRepo) Resumen(*time.Time, *time.Time) ([]*repository.ResumenMovimientos, error) {
	return nil, nil
}
func (r *fakeMovimientoRepo) Delete(id string) error { return nil }

// fakeTxRunner ejecuta el callback sin transacción real. Si el callback falla,
// restaura el estado previo de los fakes para emular el rollback.
type fakeTxRunner struct {
	movRepo      *fakeMovimientoRepo
	productoRepo *fakeProductoRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	movsAntes := len(r.movRepo.movimientos)
	stockAntes := map[string]int{}
	for id, p := range r.productoRepo.productos {
		stockAntes[id] = p.Stock
	}
	if err := fn(r.movRepo, r.productoRepo); err != nil {
		r.movRepo.movimientos = r.movRepo.movimientos[:movsAntes]
		for id, s := range stockAntes {
			r.productoRepo.productos[id].Stock = s
		}
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

func materialConStock(id string, stock int) *entity.Producto {
	return &entity.Producto{
		ID:            id,
		IDCategoria:   "cat-papeleria",
		Nombre:        "Resma carta",
		Stock:         stock,
		StockMinimo:   5,
		Precio:        decimal.NewFromFloat(4.50),
		Activo:        true,
		CategoriaTipo: entity.CategoriaTipoMaterial,
	}
}

func setup(productos ...*entity.Producto) (*inventory.RegisterMovementUseCase, *fakeProductoRepo, *fakeMovimientoRepo) {
	productoRepo := newFakeProductoRepo(productos...)
	movRepo := &fakeMovimientoRepo{}
	runner := &fakeTxRunner{movRepo: movRepo, productoRepo: productoRepo}
	uc := inventory.NewRegisterMovementUseCase(runner, productoRepo, movRepo)
	return uc, productoRepo, movRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

// Entrada sobre stock 10: el stock queda en 15 y la fila del libro guarda
// los snapshots 10 -> 15.
func TestRegister_EntradaSumaStock(t *testing.T) {
	uc, productoRepo, movRepo := setup(materialConStock("p1", 10))

	mov, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto:  "p1",
		Tipo:        entity.MovimientoEntrada,
		Cantidad:    5,
		Responsable: "maria",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, mov.StockAnterior)
	assert.Equal(t, 15, mov.StockNuevo)
	assert.Equal(t, 5, mov.Cantidad, "el delta de una entrada es positivo")
	assert.Equal(t, "maria", mov.Responsable)
	assert.NotEmpty(t, mov.ID)

	p, _ := productoRepo.GetByID("p1")
	assert.Equal(t, 15, p.Stock, "el stock del producto debe reflejar la entrada")
	assert.Len(t, movRepo.movimientos, 1)
}

// Venta que excede el stock disponible: se rechaza y nada cambia.
func TestRegister_VentaSinStockSuficiente_Rechazada(t *testing.T) {
	uc, productoRepo, movRepo := setup(materialConStock("p1", 10))

	_, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto:  "p1",
		Tipo:        entity.MovimientoVenta,
		Cantidad:    20,
		Responsable: "maria",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := productoRepo.GetByID("p1")
	assert.Equal(t, 10, p.Stock, "el stock no debe cambiar tras un rechazo")
	assert.Empty(t, movRepo.movimientos, "no debe quedar fila en el libro")
}

// Venta válida: el delta queda negativo en el libro.
func TestRegister_VentaDescuentaStock(t *testing.T) {
	uc, productoRepo, _ := setup(materialConStock("p1", 10))

	mov, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto:  "p1",
		Tipo:        entity.MovimientoVenta,
		Cantidad:    4,
		Responsable: "maria",
	})
	require.NoError(t, err)

	assert.Equal(t, -4, mov.Cantidad, "el delta de una venta es negativo")
	assert.Equal(t, 10, mov.StockAnterior)
	assert.Equal(t, 6, mov.StockNuevo)

	p, _ := productoRepo.GetByID("p1")
	assert.Equal(t, 6, p.Stock)
}

// Ajuste negativo dentro del stock disponible.
func TestRegister_AjusteNegativo(t *testing.T) {
	uc, productoRepo, _ := setup(materialConStock("p1", 15))

	mov, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto:  "p1",
		Tipo:        entity.MovimientoAjuste,
		Cantidad:    -3,
		Responsable: "maria",
	})
	require.NoError(t, err)

	assert.Equal(t, -3, mov.Cantidad)
	assert.Equal(t, 12, mov.StockNuevo)

	p, _ := productoRepo.GetByID("p1")
	assert.Equal(t, 12, p.Stock)
}

// Ajuste que dejaría stock negativo: rechazado.
func TestRegister_AjusteDejaStockNegativo_Rechazado(t *testing.T) {
	uc, productoRepo, _ := setup(materialConStock("p1", 2))

	_, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto:  "p1",
		Tipo:        entity.MovimientoAjuste,
		Cantidad:    -5,
		Responsable: "maria",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := productoRepo.GetByID("p1")
	assert.Equal(t, 2, p.Stock)
}

// Producto inexistente: ErrNotFound sin escrituras.
func TestRegister_ProductoInexistente(t *testing.T) {
	uc, _, movRepo := setup()

	_, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto:  "no-existe",
		Tipo:        entity.MovimientoEntrada,
		Cantidad:    5,
		Responsable: "maria",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movRepo.movimientos)
}

// Producto inactivo: rechazado antes de validar nada más.
func TestRegister_ProductoInactivo(t *testing.T) {
	p := materialConStock("p1", 10)
	p.Activo = false
	uc, _, _ := setup(p)

	_, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto:  "p1",
		Tipo:        entity.MovimientoEntrada,
		Cantidad:    5,
		Responsable: "maria",
	})
	assert.ErrorIs(t, err, domain.ErrProductoInactivo)
}

// Los servicios no manejan stock: ningún tipo de movimiento aplica.
func TestRegister_ServicioRechazado(t *testing.T) {
	p := materialConStock("s1", 0)
	p.CategoriaTipo = entity.CategoriaTipoServicio
	uc, _, _ := setup(p)

	_, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto:  "s1",
		Tipo:        entity.MovimientoEntrada,
		Cantidad:    5,
		Responsable: "maria",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cantidad cero: inválida para todos los tipos.
func TestRegister_CantidadCero(t *testing.T) {
	uc, _, _ := setup(materialConStock("p1", 10))

	_, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto:  "p1",
		Tipo:        entity.MovimientoAjuste,
		Cantidad:    0,
		Responsable: "maria",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ENTRADA y VENTA exigen cantidad positiva.
func TestRegister_SignoIncompatible(t *testing.T) {
	uc, _, _ := setup(materialConStock("p1", 10))

	for _, tipo := range []string{entity.MovimientoEntrada, entity.MovimientoVenta} {
		_, err := uc.Register(context.Background(), inventory.MovimientoInput{
			IDProducto:  "p1",
			Tipo:        tipo,
			Cantidad:    -5,
			Responsable: "maria",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo %s con cantidad negativa", tipo)
	}
}

// Tipo de movimiento desconocido.
func TestRegister_TipoInvalido(t *testing.T) {
	uc, _, _ := setup(materialConStock("p1", 10))

	_, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto:  "p1",
		Tipo:        "TRASLADO",
		Cantidad:    5,
		Responsable: "maria",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El responsable es obligatorio.
func TestRegister_ResponsableObligatorio(t *testing.T) {
	uc, _, _ := setup(materialConStock("p1", 10))

	_, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto: "p1",
		Tipo:       entity.MovimientoEntrada,
		Cantidad:   5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Venta exacta del stock disponible: permitida, stock queda en cero.
func TestRegister_VentaStockExacto(t *testing.T) {
	uc, productoRepo, _ := setup(materialConStock("p1", 10))

	mov, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto:  "p1",
		Tipo:        entity.MovimientoVenta,
		Cantidad:    10,
		Responsable: "maria",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, mov.StockNuevo)

	p, _ := productoRepo.GetByID("p1")
	assert.Equal(t, 0, p.Stock)
}

// Movimientos consecutivos encadenan los snapshots.
func TestRegister_SnapshotsEncadenados(t *testing.T) {
	uc, _, movRepo := setup(materialConStock("p1", 10))
	ctx := context.Background()

	_, err := uc.CreateEntrada(ctx, "p1", 5, "maria", nil, "")
	require.NoError(t, err)
	_, err = uc.Register(ctx, inventory.MovimientoInput{
		IDProducto: "p1", Tipo: entity.MovimientoVenta, Cantidad: 8, Responsable: "maria",
	})
	require.NoError(t, err)
	_, err = uc.CreateAjuste(ctx, "p1", -2, "maria", "conteo físico")
	require.NoError(t, err)

	require.Len(t, movRepo.movimientos, 3)
	for _, m := range movRepo.movimientos {
		assert.Equal(t, m.StockNuevo, m.StockAnterior+m.Cantidad,
			"cada fila debe cumplir stock_nuevo = stock_anterior + delta")
	}
	assert.Equal(t, 15, movRepo.movimientos[1].StockAnterior)
	assert.Equal(t, 7, movRepo.movimientos[2].StockAnterior)
	assert.Equal(t, 5, movRepo.movimientos[2].StockNuevo)
}

// Costo unitario negativo en entrada: inválido.
func TestRegister_CostoUnitarioNegativo(t *testing.T) {
	uc, _, _ := setup(materialConStock("p1", 10))

	costo := decimal.NewFromFloat(-1.50)
	_, err := uc.Register(context.Background(), inventory.MovimientoInput{
		IDProducto:    "p1",
		Tipo:          entity.MovimientoEntrada,
		Cantidad:      5,
		Responsable:   "maria",
		CostoUnitario: &costo,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
