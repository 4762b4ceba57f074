package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/copypoint/copypoint-api/internal/application/inventory"
	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

var cien = decimal.NewFromInt(100)

// LineaInput línea solicitada para una venta.
type LineaInput struct {
	IDProducto string
	Cantidad   int
	// Descuento en monto absoluto sobre el subtotal de la línea.
	Descuento decimal.Decimal
}

// VentaInput entrada para registrar una venta completa.
type VentaInput struct {
	IDCliente     *string // nil = consumidor final
	Lineas        []LineaInput
	Responsable   string
	Observaciones string
}

// VentaCompleta venta con sus líneas, para respuestas de lectura.
type VentaCompleta struct {
	Venta    *entity.Venta
	Detalles []*entity.DetalleVenta
}

// VentaUseCase orquesta el registro y anulación de ventas. Cada venta se
// persiste en UNA transacción: cabecera, líneas y movimientos de stock de los
// productos materiales. Los servicios facturan sin tocar inventario.
type VentaUseCase struct {
	txRunner     VentaTxRunner
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	movimientos  *inventory.RegisterMovementUseCase
	numerador    Numerador
	log          zerolog.Logger
}

// NewVentaUseCase construye el caso de uso de ventas.
func NewVentaUseCase(
	txRunner VentaTxRunner,
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	movimientos *inventory.RegisterMovementUseCase,
	numerador Numerador,
	log zerolog.Logger,
) *VentaUseCase {
	return &VentaUseCase{
		txRunner:     txRunner,
		ventaRepo:    ventaRepo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		movimientos:  movimientos,
		numerador:    numerador,
		log:          log,
	}
}

// CreateVenta registra una venta completa. Valida cliente y productos, calcula
// subtotal, ITBMS por línea según la tasa del producto y total, y dentro de
// una transacción inserta cabecera, líneas y los movimientos VENTA que
// descuentan stock de los productos materiales. Si algún producto material no
// tiene stock suficiente, toda la venta se revierte.
func (uc *VentaUseCase) CreateVenta(ctx context.Context, input VentaInput) (*VentaCompleta, error) {
	if len(input.Lineas) == 0 {
		return nil, fmt.Errorf("%w: la venta necesita al menos una línea", domain.ErrInvalidInput)
	}
	if input.Responsable == "" {
		return nil, fmt.Errorf("%w: el responsable es obligatorio", domain.ErrInvalidInput)
	}
	if input.IDCliente != nil {
		cliente, err := uc.clienteRepo.GetByID(*input.IDCliente)
		if err != nil {
			return nil, err
		}
		if cliente == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, *input.IDCliente)
		}
	}

	// Resuelve productos y calcula totales antes de abrir la transacción.
	type lineaCalculada struct {
		producto *entity.Producto
		detalle  *entity.DetalleVenta
	}
	idVenta := uuid.New().String()
	now := time.Now()
	subtotal := decimal.Zero
	impuestos := decimal.Zero
	lineas := make([]lineaCalculada, 0, len(input.Lineas))

	for _, l := range input.Lineas {
		if l.Cantidad <= 0 {
			return nil, fmt.Errorf("%w: la cantidad de cada línea debe ser positiva", domain.ErrInvalidInput)
		}
		if l.Descuento.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: el descuento no puede ser negativo", domain.ErrInvalidInput)
		}
		producto, err := uc.productoRepo.GetByID(l.IDProducto)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.IDProducto)
		}
		if !producto.Activo {
			return nil, domain.ErrProductoInactivo
		}

		subtotalItem := producto.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad))).Sub(l.Descuento)
		if subtotalItem.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: el descuento supera el subtotal de la línea", domain.ErrInvalidInput)
		}
		impuestoItem := subtotalItem.Mul(producto.TasaImpuesto).Div(cien).Round(2)

		lineas = append(lineas, lineaCalculada{
			producto: producto,
			detalle: &entity.DetalleVenta{
				ID:             uuid.New().String(),
				IDVenta:        idVenta,
				IDProducto:     producto.ID,
				Cantidad:       l.Cantidad,
				PrecioUnitario: producto.Precio,
				SubtotalItem:   subtotalItem,
				ImpuestoItem:   impuestoItem,
				Descuento:      l.Descuento,
				ProductoNombre: producto.Nombre,
			},
		})
		subtotal = subtotal.Add(subtotalItem)
		impuestos = impuestos.Add(impuestoItem)
	}
	total := subtotal.Add(impuestos)

	numeroFactura, err := uc.numerador.NextNumero(entity.TicketVenta)
	if err != nil {
		return nil, fmt.Errorf("asignar numero de factura: %w", err)
	}

	venta := &entity.Venta{
		ID:            idVenta,
		NumeroFactura: numeroFactura,
		Fecha:         now,
		IDCliente:     input.IDCliente,
		Subtotal:      subtotal,
		Impuestos:     impuestos,
		Total:         total,
		Responsable:   input.Responsable,
		Estado:        entity.VentaCompletada,
		Observaciones: input.Observaciones,
	}

	err = uc.txRunner.RunVenta(ctx, func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
	) error {
		if err := ventaRepo.Create(venta); err != nil {
			return err
		}
		for _, l := range lineas {
			if err := ventaRepo.CreateDetalle(l.detalle); err != nil {
				return err
			}
			if l.producto.EsServicio() {
				continue
			}
			// Descuenta stock en la misma tx; con stock insuficiente todo se revierte.
			if _, err := uc.movimientos.RegisterVentaInTx(
				movRepo, productoRepo,
				l.producto.ID, idVenta, input.Responsable,
				l.detalle.Cantidad, now,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("id_venta", venta.ID).
		Str("numero_factura", venta.NumeroFactura).
		Str("total", venta.Total.StringFixed(2)).
		Int("lineas", len(lineas)).
		Msg("venta registrada")

	detalles := make([]*entity.DetalleVenta, 0, len(lineas))
	for _, l := range lineas {
		detalles = append(detalles, l.detalle)
	}
	return &VentaCompleta{Venta: venta, Detalles: detalles}, nil
}

// GetVenta venta con sus líneas.
func (uc *VentaUseCase) GetVenta(ctx context.Context, id string) (*VentaCompleta, error) {
	venta, err := uc.ventaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	detalles, err := uc.ventaRepo.ListDetalles(id)
	if err != nil {
		return nil, err
	}
	return &VentaCompleta{Venta: venta, Detalles: detalles}, nil
}

// GetByNumeroFactura venta con sus líneas, buscada por número de factura.
func (uc *VentaUseCase) GetByNumeroFactura(ctx context.Context, numero string) (*VentaCompleta, error) {
	venta, err := uc.ventaRepo.GetByNumeroFactura(numero)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, numero)
	}
	detalles, err := uc.ventaRepo.ListDetalles(venta.ID)
	if err != nil {
		return nil, err
	}
	return &VentaCompleta{Venta: venta, Detalles: detalles}, nil
}

// ListByDateRange ventas en un rango de fechas.
func (uc *VentaUseCase) ListByDateRange(ctx context.Context, desde, hasta time.Time) ([]*entity.Venta, error) {
	if hasta.Before(desde) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	return uc.ventaRepo.ListByDateRange(desde, hasta)
}

// CancelVenta anula una venta COMPLETADA: por cada línea de producto material
// registra un AJUSTE compensatorio que restaura el stock, y marca la venta
// como CANCELADA. Todo en una transacción. El libro conserva tanto la salida
// original como la devolución.
func (uc *VentaUseCase) CancelVenta(ctx context.Context, id, responsable, motivo string) error {
	if responsable == "" {
		return fmt.Errorf("%w: el responsable es obligatorio", domain.ErrInvalidInput)
	}
	venta, err := uc.ventaRepo.GetByID(id)
	if err != nil {
		return err
	}
	if venta == nil {
		return fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	if venta.Estado == entity.VentaCancelada {
		return fmt.Errorf("%w: la venta ya está cancelada", domain.ErrConflict)
	}
	detalles, err := uc.ventaRepo.ListDetalles(id)
	if err != nil {
		return err
	}
	if motivo == "" {
		motivo = "Anulación de venta " + venta.NumeroFactura
	}

	now := time.Now()
	err = uc.txRunner.RunVenta(ctx, func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
	) error {
		for _, d := range detalles {
			producto, err := productoRepo.GetByID(d.IDProducto)
			if err != nil {
				return err
			}
			if producto == nil || producto.EsServicio() {
				continue
			}
			if _, err := uc.movimientos.RegisterAjusteInTx(
				movRepo, productoRepo,
				d.IDProducto, responsable, motivo,
				&id, d.Cantidad, now,
			); err != nil {
				return err
			}
		}
		return ventaRepo.UpdateEstado(id, entity.VentaCancelada)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("id_venta", id).
		Str("numero_factura", venta.NumeroFactura).
		Str("responsable", responsable).
		Msg("venta cancelada")
	return nil
}
