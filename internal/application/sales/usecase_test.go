package sales_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copypoint/copypoint-api/internal/application/inventory"
	"github.com/copypoint/copypoint-api/internal/application/sales"
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
func (r *fakeProductoRepo) GetByNombre(string) (*entity.Producto, error)    { return nil, nil }
func (r *fakeProductoRepo) GetForUpdate(id string) (*entity.Producto, error) { return r.GetByID(id) }
func (r *fakeProductoRepo) Update(p *entity.Producto) error                  { return nil }
func (r *fakeProductoRepo) UpdateStock(id string, stock int) error {
	p, ok := r.productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}
func (r *fakeProductoRepo) SetActivo(string, bool) error                             { return nil }
func (r *fakeProductoRepo) List(bool) ([]*entity.Producto, error)                    { return nil, nil }
func (r *fakeProductoRepo) ListByCategoria(string, bool) ([]*entity.Producto, error) { return nil, nil }
func (r *fakeProductoRepo) Search(string) ([]*entity.Producto, error)                { return nil, nil }
func (r *fakeProductoRepo) ListBajoStock() ([]*entity.Producto, error)               { return nil, nil }
func (r *fakeProductoRepo) Stats() (*repository.ProductoStats, error)                { return nil, nil }

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
func (r *fakeMovimientoRepo) Delete(string) error { return nil }

type fakeVentaRepo struct {
	ventas   map[string]*entity.Venta
	detalles map[string][]*entity.DetalleVenta
}

func newFakeVentaRepo() *fakeVentaRepo {
	return &fakeVentaRepo{
		ventas:   map[string]*entity.Venta{},
		detalles: map[string][]*entity.DetalleVenta{},
	}
}

func (r *fakeVentaRepo) Create(v *entity.Venta) error { r.ventas[v.ID] = v; return nil }
func (r *fakeVentaRepo) GetByID(id string) (*entity.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, nil
	}
	copia := *v
	return &copia, nil
}
func (r *fakeVentaRepo) GetByNumeroFactura(numero string) (*entity.Venta, error) {
	for _, v := range r.ventas {
		if v.NumeroFactura == numero {
			copia := *v
			return &copia, nil
		}
	}
	return nil, nil
}
func (r *fakeVentaRepo) ListByDateRange(time.Time, time.Time) ([]*entity.Venta, error) {
	var out []*entity.Venta
	for _, v := range r.ventas {
		out = append(out, v)
	}
	return out, nil
}
func (r *fakeVentaRepo) UpdateTotales(id string, subtotal, impuestos, total decimal.Decimal) error {
	v := r.ventas[id]
	v.Subtotal, v.Impuestos, v.Total = subtotal, impuestos, total
	return nil
}
func (r *fakeVentaRepo) UpdateEstado(id, estado string) error {
	v, ok := r.ventas[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Estado = estado
	return nil
}
func (r *fakeVentaRepo) CreateDetalle(d *entity.DetalleVenta) error {
	r.detalles[d.IDVenta] = append(r.detalles[d.IDVenta], d)
	return nil
}
func (r *fakeVentaRepo) ListDetalles(idVenta string) ([]*entity.DetalleVenta, error) {
	return r.detalles[idVenta], nil
}

type fakeClienteRepo struct {
	clientes map[string]*entity.Cliente
}

func (r *fakeClienteRepo) Create(c *entity.Cliente) error { return nil }
func (r *fakeClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (r *fakeClienteRepo) GetByNombre(string) (*entity.Cliente, error)  { return nil, nil }
func (r *fakeClienteRepo) GetByRUC(string) (*entity.Cliente, error)     { return nil, nil }
func (r *fakeClienteRepo) Update(*entity.Cliente) error                 { return nil }
func (r *fakeClienteRepo) List(bool) ([]*entity.Cliente, error)         { return nil, nil }
func (r *fakeClienteRepo) SetActivo(string, bool) error                 { return nil }

// fakeNumerador emite números consecutivos V-000001, V-000002, ...
type fakeNumerador struct {
	n int
}

func (f *fakeNumerador) NextNumero(tipo string) (string, error) {
	f.n++
	return fmt.Sprintf("V-%06d", f.n), nil
}

type fakeVentaTxRunner struct {
	movRepo      *fakeMovimientoRepo
	productoRepo *fakeProductoRepo
	ventaRepo    *fakeVentaRepo
}

func (r *fakeVentaTxRunner) RunVenta(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	ventaRepo repository.VentaRepository,
) error) error {
	movsAntes := len(r.movRepo.movimientos)
	stockAntes := map[string]int{}
	for id, p := range r.productoRepo.productos {
		stockAntes[id] = p.Stock
	}
	ventasAntes := map[string]entity.Venta{}
	for id, v := range r.ventaRepo.ventas {
		ventasAntes[id] = *v
	}
	if err := fn(r.movRepo, r.productoRepo, r.ventaRepo); err != nil {
		// rollback emulado
		r.movRepo.movimientos = r.movRepo.movimientos[:movsAntes]
		for id, s := range stockAntes {
			r.productoRepo.productos[id].Stock = s
		}
		r.ventaRepo.ventas = map[string]*entity.Venta{}
		for id := range ventasAntes {
			v := ventasAntes[id]
			r.ventaRepo.ventas[id] = &v
		}
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

type ventaFixture struct {
	uc           *sales.VentaUseCase
	productoRepo *fakeProductoRepo
	movRepo      *fakeMovimientoRepo
	ventaRepo    *fakeVentaRepo
}

func setupVentas(productos ...*entity.Producto) *ventaFixture {
	productoRepo := &fakeProductoRepo{productos: map[string]*entity.Producto{}}
	for _, p := range productos {
		productoRepo.productos[p.ID] = p
	}
	movRepo := &fakeMovimientoRepo{}
	ventaRepo := newFakeVentaRepo()
	clienteRepo := &fakeClienteRepo{clientes: map[string]*entity.Cliente{
		"c1": {ID: "c1", Nombre: "Cliente Uno", Activo: true},
	}}
	runner := &fakeVentaTxRunner{movRepo: movRepo, productoRepo: productoRepo, ventaRepo: ventaRepo}
	movimientos := inventory.NewRegisterMovementUseCase(nil, productoRepo, movRepo)
	uc := sales.NewVentaUseCase(
		runner, ventaRepo, productoRepo, clienteRepo,
		movimientos, &fakeNumerador{}, zerolog.Nop(),
	)
	return &ventaFixture{uc: uc, productoRepo: productoRepo, movRepo: movRepo, ventaRepo: ventaRepo}
}

func material(id, nombre string, stock int, precio float64, tasa int) *entity.Producto {
	return &entity.Producto{
		ID:            id,
		Nombre:        nombre,
		Stock:         stock,
		Precio:        decimal.NewFromFloat(precio),
		TasaImpuesto:  decimal.NewFromInt(int64(tasa)),
		Activo:        true,
		CategoriaTipo: entity.CategoriaTipoMaterial,
	}
}

func servicio(id, nombre string, precio float64, tasa int) *entity.Producto {
	p := material(id, nombre, 0, precio, tasa)
	p.CategoriaTipo = entity.CategoriaTipoServicio
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateVenta
// ──────────────────────────────────────────────────────────────────────────────

// Venta de un material: totales con ITBMS 7% y movimiento VENTA en el libro.
func TestCreateVenta_MaterialDescuentaStockYCalculaITBMS(t *testing.T) {
	f := setupVentas(material("p1", "Resma carta", 10, 4.50, 7))

	venta, err := f.uc.CreateVenta(context.Background(), sales.VentaInput{
		Lineas:      []sales.LineaInput{{IDProducto: "p1", Cantidad: 2}},
		Responsable: "maria",
	})
	require.NoError(t, err)

	// subtotal 9.00, ITBMS 7% = 0.63, total 9.63
	assert.True(t, venta.Venta.Subtotal.Equal(decimal.NewFromFloat(9.00)), "subtotal: %s", venta.Venta.Subtotal)
	assert.True(t, venta.Venta.Impuestos.Equal(decimal.NewFromFloat(0.63)), "impuestos: %s", venta.Venta.Impuestos)
	assert.True(t, venta.Venta.Total.Equal(decimal.NewFromFloat(9.63)), "total: %s", venta.Venta.Total)
	assert.Equal(t, entity.VentaCompletada, venta.Venta.Estado)
	assert.Equal(t, "V-000001", venta.Venta.NumeroFactura)

	p, _ := f.productoRepo.GetByID("p1")
	assert.Equal(t, 8, p.Stock, "la venta debe descontar el stock")

	require.Len(t, f.movRepo.movimientos, 1)
	mov := f.movRepo.movimientos[0]
	assert.Equal(t, entity.MovimientoVenta, mov.Tipo)
	assert.Equal(t, -2, mov.Cantidad)
	require.NotNil(t, mov.IDVenta)
	assert.Equal(t, venta.Venta.ID, *mov.IDVenta)
}

// Venta de un servicio: factura sin tocar inventario.
func TestCreateVenta_ServicioNoGeneraMovimiento(t *testing.T) {
	f := setupVentas(servicio("s1", "Copias B/N", 0.10, 7))

	venta, err := f.uc.CreateVenta(context.Background(), sales.VentaInput{
		Lineas:      []sales.LineaInput{{IDProducto: "s1", Cantidad: 100}},
		Responsable: "maria",
	})
	require.NoError(t, err)

	assert.True(t, venta.Venta.Subtotal.Equal(decimal.NewFromFloat(10.00)), "subtotal: %s", venta.Venta.Subtotal)
	assert.Empty(t, f.movRepo.movimientos, "los servicios no tocan el libro de movimientos")
}

// Venta mixta material + servicio: solo el material genera movimiento.
func TestCreateVenta_MixtaMaterialYServicio(t *testing.T) {
	f := setupVentas(
		material("p1", "Resma carta", 10, 4.50, 7),
		servicio("s1", "Copias B/N", 0.10, 7),
	)

	venta, err := f.uc.CreateVenta(context.Background(), sales.VentaInput{
		Lineas: []sales.LineaInput{
			{IDProducto: "p1", Cantidad: 1},
			{IDProducto: "s1", Cantidad: 50},
		},
		Responsable: "maria",
	})
	require.NoError(t, err)

	assert.Len(t, venta.Detalles, 2)
	assert.Len(t, f.movRepo.movimientos, 1, "solo el material genera movimiento")
	p, _ := f.productoRepo.GetByID("p1")
	assert.Equal(t, 9, p.Stock)
}

// Sin stock suficiente en una línea: toda la venta se revierte.
func TestCreateVenta_SinStockSuficiente_TodoRevierte(t *testing.T) {
	f := setupVentas(
		material("p1", "Resma carta", 10, 4.50, 7),
		material("p2", "Tóner negro", 1, 45.00, 7),
	)

	_, err := f.uc.CreateVenta(context.Background(), sales.VentaInput{
		Lineas: []sales.LineaInput{
			{IDProducto: "p1", Cantidad: 2},
			{IDProducto: "p2", Cantidad: 5},
		},
		Responsable: "maria",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p1, _ := f.productoRepo.GetByID("p1")
	p2, _ := f.productoRepo.GetByID("p2")
	assert.Equal(t, 10, p1.Stock, "la primera línea también debe revertirse")
	assert.Equal(t, 1, p2.Stock)
	assert.Empty(t, f.movRepo.movimientos)
	assert.Empty(t, f.ventaRepo.ventas, "la cabecera no debe persistir")
}

// Cliente inexistente: rechazo temprano.
func TestCreateVenta_ClienteInexistente(t *testing.T) {
	f := setupVentas(material("p1", "Resma carta", 10, 4.50, 7))

	noExiste := "c-fantasma"
	_, err := f.uc.CreateVenta(context.Background(), sales.VentaInput{
		IDCliente:   &noExiste,
		Lineas:      []sales.LineaInput{{IDProducto: "p1", Cantidad: 1}},
		Responsable: "maria",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Venta sin líneas: inválida.
func TestCreateVenta_SinLineas(t *testing.T) {
	f := setupVentas()

	_, err := f.uc.CreateVenta(context.Background(), sales.VentaInput{
		Responsable: "maria",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Descuento que supera el subtotal de la línea: inválido.
func TestCreateVenta_DescuentoExcesivo(t *testing.T) {
	f := setupVentas(material("p1", "Resma carta", 10, 4.50, 7))

	_, err := f.uc.CreateVenta(context.Background(), sales.VentaInput{
		Lineas: []sales.LineaInput{{
			IDProducto: "p1",
			Cantidad:   1,
			Descuento:  decimal.NewFromFloat(10.00),
		}},
		Responsable: "maria",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CancelVenta
// ──────────────────────────────────────────────────────────────────────────────

// Anular una venta restaura el stock con ajustes compensatorios ligados a la venta.
func TestCancelVenta_RestauraStock(t *testing.T) {
	f := setupVentas(material("p1", "Resma carta", 10, 4.50, 7))
	ctx := context.Background()

	venta, err := f.uc.CreateVenta(ctx, sales.VentaInput{
		Lineas:      []sales.LineaInput{{IDProducto: "p1", Cantidad: 3}},
		Responsable: "maria",
	})
	require.NoError(t, err)
	p, _ := f.productoRepo.GetByID("p1")
	require.Equal(t, 7, p.Stock)

	err = f.uc.CancelVenta(ctx, venta.Venta.ID, "admin", "cliente devolvió")
	require.NoError(t, err)

	p, _ = f.productoRepo.GetByID("p1")
	assert.Equal(t, 10, p.Stock, "la anulación debe restaurar el stock")

	actual, _ := f.ventaRepo.GetByID(venta.Venta.ID)
	assert.Equal(t, entity.VentaCancelada, actual.Estado)

	// El libro conserva la salida original más la devolución
	movs, _ := f.movRepo.ListByVenta(venta.Venta.ID)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovimientoVenta, movs[0].Tipo)
	assert.Equal(t, entity.MovimientoAjuste, movs[1].Tipo)
	assert.Equal(t, 3, movs[1].Cantidad)
}

// Anular dos veces: la segunda es conflicto.
func TestCancelVenta_YaCancelada(t *testing.T) {
	f := setupVentas(material("p1", "Resma carta", 10, 4.50, 7))
	ctx := context.Background()

	venta, err := f.uc.CreateVenta(ctx, sales.VentaInput{
		Lineas:      []sales.LineaInput{{IDProducto: "p1", Cantidad: 3}},
		Responsable: "maria",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.CancelVenta(ctx, venta.Venta.ID, "admin", ""))
	err = f.uc.CancelVenta(ctx, venta.Venta.ID, "admin", "")
	assert.ErrorIs(t, err, domain.ErrConflict)

	p, _ := f.productoRepo.GetByID("p1")
	assert.Equal(t, 10, p.Stock, "el stock no debe restaurarse dos veces")
}

// Venta inexistente.
func TestCancelVenta_Inexistente(t *testing.T) {
	f := setupVentas()
	err := f.uc.CancelVenta(context.Background(), "no-existe", "admin", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
