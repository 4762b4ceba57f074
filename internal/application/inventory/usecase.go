package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (ENTRADA, VENTA, AJUSTE) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
//
// El registro NO es idempotente: reaplicar el mismo movimiento lógico lo aplica
// dos veces sobre el stock. Es responsabilidad del caller no reenviar.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productoRepo repository.ProductoRepository
	movRepo      repository.MovimientoRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productoRepo: productoRepo,
		movRepo:      movRepo,
	}
}

// MovimientoInput entrada para registrar un movimiento de inventario.
// ENTRADA y VENTA exigen Cantidad positiva; AJUSTE admite signo.
type MovimientoInput struct {
	IDProducto    string
	Tipo          string
	Cantidad      int
	Responsable   string
	IDVenta       *string
	Observaciones string
	CostoUnitario *decimal.Decimal
}

// Register valida las precondiciones en orden (producto existe y activo ->
// tipo válido -> cantidad distinta de cero y compatible con el signo ->
// stock resultante no negativo), y dentro de UNA transacción bloquea la fila
// del producto, inserta la fila del libro con los snapshots antes/después y
// actualiza el stock. Devuelve el movimiento creado.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, input MovimientoInput) (*entity.Movimiento, error) {
	// Producto existe y está activo (fuera de la tx: verificación temprana,
	// se reconfirma con el bloqueo dentro de la tx).
	producto, err := uc.productoRepo.GetByID(input.IDProducto)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, input.IDProducto)
	}
	if !producto.Activo {
		return nil, domain.ErrProductoInactivo
	}
	if producto.EsServicio() {
		// Los servicios no manejan stock
		return nil, fmt.Errorf("%w: los servicios no manejan stock", domain.ErrInvalidInput)
	}

	if !entity.TipoMovimientoValido(input.Tipo) {
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, input.Tipo)
	}

	if input.Cantidad == 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser distinta de cero", domain.ErrInvalidInput)
	}
	if input.Responsable == "" {
		return nil, fmt.Errorf("%w: el responsable es obligatorio", domain.ErrInvalidInput)
	}

	// Convención de signos: ENTRADA y VENTA se reciben positivas, AJUSTE con signo.
	var delta int
	switch input.Tipo {
	case entity.MovimientoEntrada:
		if input.Cantidad < 0 {
			return nil, fmt.Errorf("%w: las entradas deben tener cantidad positiva", domain.ErrInvalidInput)
		}
		delta = input.Cantidad
	case entity.MovimientoVenta:
		if input.Cantidad < 0 {
			return nil, fmt.Errorf("%w: las ventas deben tener cantidad positiva", domain.ErrInvalidInput)
		}
		delta = -input.Cantidad
	case entity.MovimientoAjuste:
		delta = input.Cantidad
	}

	if input.CostoUnitario != nil && input.CostoUnitario.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: costo unitario negativo", domain.ErrInvalidInput)
	}

	now := time.Now()
	var mov *entity.Movimiento

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
	) error {
		created, err := applyMovimiento(movRepo, productoRepo, input, delta, now)
		if err != nil {
			return err
		}
		mov = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// applyMovimiento bloquea la fila del producto, valida el stock resultante y
// escribe la fila del libro más el nuevo stock. Se ejecuta dentro de una tx.
func applyMovimiento(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	input MovimientoInput,
	delta int,
	now time.Time,
) (*entity.Movimiento, error) {
	producto, err := productoRepo.GetForUpdate(input.IDProducto)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, input.IDProducto)
	}

	stockAnterior := producto.Stock
	stockNuevo := stockAnterior + delta
	if stockNuevo < 0 {
		return nil, fmt.Errorf("%w: el movimiento generaría stock negativo (%d), stock actual %d",
			domain.ErrInsufficientStock, stockNuevo, stockAnterior)
	}

	mov := &entity.Movimiento{
		ID:             uuid.New().String(),
		IDProducto:     input.IDProducto,
		Tipo:           input.Tipo,
		Cantidad:       delta,
		StockAnterior:  stockAnterior,
		StockNuevo:     stockNuevo,
		Responsable:    input.Responsable,
		IDVenta:        input.IDVenta,
		Observaciones:  input.Observaciones,
		CostoUnitario:  input.CostoUnitario,
		Fecha:          now,
		CreatedAt:      now,
		ProductoNombre: producto.Nombre,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	if err := productoRepo.UpdateStock(input.IDProducto, stockNuevo); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterVentaInTx aplica una salida por venta usando los repositorios del
// caller (misma transacción). Lo usa el flujo de ventas para descontar stock
// al agregar una línea, referenciando la venta en el movimiento.
func (uc *RegisterMovementUseCase) RegisterVentaInTx(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	idProducto, idVenta, responsable string,
	cantidad int,
	now time.Time,
) (*entity.Movimiento, error) {
	if cantidad <= 0 {
		return nil, fmt.Errorf("%w: las ventas deben tener cantidad positiva", domain.ErrInvalidInput)
	}
	input := MovimientoInput{
		IDProducto:    idProducto,
		Tipo:          entity.MovimientoVenta,
		Cantidad:      cantidad,
		Responsable:   responsable,
		IDVenta:       &idVenta,
		Observaciones: "Venta " + idVenta,
	}
	return applyMovimiento(movRepo, productoRepo, input, -cantidad, now)
}

// RegisterAjusteInTx aplica un ajuste usando los repositorios del caller
// (misma transacción). Lo usa la anulación de ventas para restaurar stock,
// pasando idVenta para que la devolución quede ligada a la venta anulada.
func (uc *RegisterMovementUseCase) RegisterAjusteInTx(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	idProducto, responsable, observaciones string,
	idVenta *string,
	delta int,
	now time.Time,
) (*entity.Movimiento, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser distinta de cero", domain.ErrInvalidInput)
	}
	input := MovimientoInput{
		IDProducto:    idProducto,
		Tipo:          entity.MovimientoAjuste,
		Cantidad:      delta,
		Responsable:   responsable,
		IDVenta:       idVenta,
		Observaciones: observaciones,
	}
	return applyMovimiento(movRepo, productoRepo, input, delta, now)
}

// CreateEntrada atajo para registrar una entrada de inventario (recepción de mercancía).
func (uc *RegisterMovementUseCase) CreateEntrada(ctx context.Context, idProducto string, cantidad int, responsable string, costoUnitario *decimal.Decimal, observaciones string) (*entity.Movimiento, error) {
	if observaciones == "" {
		observaciones = fmt.Sprintf("Entrada de inventario - %d unidades", cantidad)
	}
	return uc.Register(ctx, MovimientoInput{
		IDProducto:    idProducto,
		Tipo:          entity.MovimientoEntrada,
		Cantidad:      cantidad,
		Responsable:   responsable,
		CostoUnitario: costoUnitario,
		Observaciones: observaciones,
	})
}

// CreateAjuste atajo para registrar un ajuste de inventario (corrección de stock).
func (uc *RegisterMovementUseCase) CreateAjuste(ctx context.Context, idProducto string, cantidad int, responsable, motivo string) (*entity.Movimiento, error) {
	return uc.Register(ctx, MovimientoInput{
		IDProducto:    idProducto,
		Tipo:          entity.MovimientoAjuste,
		Cantidad:      cantidad,
		Responsable:   responsable,
		Observaciones: "Ajuste de inventario: " + motivo,
	})
}
