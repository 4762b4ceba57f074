package sales

import (
	"context"

	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

// VentaTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de inventario y ventas atados a esa tx. La venta, sus líneas y
// los movimientos de stock se confirman o revierten juntos.
type VentaTxRunner interface {
	RunVenta(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
	) error) error
}

// Numerador emite números de documento consecutivos por tipo (factura, ticket).
type Numerador interface {
	NextNumero(tipo string) (string, error)
}
