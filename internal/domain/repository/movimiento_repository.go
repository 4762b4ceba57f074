package repository

import (
	"time"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// MovimientoFilters filtros combinables para listados de movimientos.
// Los campos en nil/vacío no filtran.
type MovimientoFilters struct {
	Desde       *time.Time
	Hasta       *time.Time
	Tipo        string
	IDProducto  string
	Responsable string // substring, case-insensitive
	Limit       int
}

// ResumenMovimientos totales agregados por tipo de movimiento en un rango.
type ResumenMovimientos struct {
	Tipo          string
	Cantidad      int // número de movimientos
	TotalUnidades int // suma de valores absolutos de los deltas
}

// MovimientoRepository define el puerto de persistencia para el libro de movimientos.
// Las filas son inmutables en operación normal; Delete existe pero está desaconsejado.
type MovimientoRepository interface {
	Create(movimiento *entity.Movimiento) error
	GetByID(id string) (*entity.Movimiento, error)
	ListByProducto(idProducto string, limit int) ([]*entity.Movimiento, error)
	ListByDateRange(desde, hasta time.Time) ([]*entity.Movimiento, error)
	ListByFilters(filters MovimientoFilters) ([]*entity.Movimiento, error)
	ListByVenta(idVenta string) ([]*entity.Movimiento, error)
	Resumen(desde, hasta *time.Time) ([]*ResumenMovimientos, error)
	Delete(id string) error
}
