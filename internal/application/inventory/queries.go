package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el libro de movimientos.
type MovementQueryUseCase struct {
	movRepo      repository.MovimientoRepository
	productoRepo repository.ProductoRepository
}

// NewMovementQueryUseCase construye el caso de uso de consulta.
func NewMovementQueryUseCase(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, productoRepo: productoRepo}
}

// GetByID obtiene un movimiento por ID.
func (uc *MovementQueryUseCase) GetByID(ctx context.Context, id string) (*entity.Movimiento, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	return mov, nil
}

// ListByProducto historial de movimientos de un producto, más recientes primero.
func (uc *MovementQueryUseCase) ListByProducto(ctx context.Context, idProducto string, limit int) ([]*entity.Movimiento, error) {
	producto, err := uc.productoRepo.GetByID(idProducto)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, idProducto)
	}
	return uc.movRepo.ListByProducto(idProducto, limit)
}

// ListByDateRange movimientos en un rango de fechas inclusivo.
func (uc *MovementQueryUseCase) ListByDateRange(ctx context.Context, desde, hasta time.Time) ([]*entity.Movimiento, error) {
	if hasta.Before(desde) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	return uc.movRepo.ListByDateRange(desde, hasta)
}

// ListByFilters movimientos con filtros combinables (tipo, producto, responsable, fechas).
func (uc *MovementQueryUseCase) ListByFilters(ctx context.Context, filters repository.MovimientoFilters) ([]*entity.Movimiento, error) {
	if filters.Tipo != "" && !entity.TipoMovimientoValido(filters.Tipo) {
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, filters.Tipo)
	}
	if filters.Desde != nil && filters.Hasta != nil && filters.Hasta.Before(*filters.Desde) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	return uc.movRepo.ListByFilters(filters)
}

// ListByVenta movimientos asociados a una venta (salidas y ajustes de anulación).
func (uc *MovementQueryUseCase) ListByVenta(ctx context.Context, idVenta string) ([]*entity.Movimiento, error) {
	return uc.movRepo.ListByVenta(idVenta)
}

// GetResumen totales por tipo de movimiento en un rango opcional.
func (uc *MovementQueryUseCase) GetResumen(ctx context.Context, desde, hasta *time.Time) ([]*repository.ResumenMovimientos, error) {
	if desde != nil && hasta != nil && hasta.Before(*desde) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	return uc.movRepo.Resumen(desde, hasta)
}

// GetProductosBajoStock productos activos con stock en o bajo su mínimo.
func (uc *MovementQueryUseCase) GetProductosBajoStock(ctx context.Context) ([]*entity.Producto, error) {
	return uc.productoRepo.ListBajoStock()
}

// Delete elimina una fila del libro. Rompe la trazabilidad del stock, solo
// para correcciones administrativas; el stock del producto NO se recalcula.
func (uc *MovementQueryUseCase) Delete(ctx context.Context, id string) error {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return err
	}
	if mov == nil {
		return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	return uc.movRepo.Delete(id)
}
