package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

// VentaRepository define el puerto de persistencia para ventas y sus detalles.
type VentaRepository interface {
	Create(venta *entity.Venta) error
	GetByID(id string) (*entity.Venta, error)
	GetByNumeroFactura(numero string) (*entity.Venta, error)
	ListByDateRange(desde, hasta time.Time) ([]*entity.Venta, error)
	UpdateTotales(id string, subtotal, impuestos, total decimal.Decimal) error
	UpdateEstado(id, estado string) error
	CreateDetalle(detalle *entity.DetalleVenta) error
	ListDetalles(idVenta string) ([]*entity.DetalleVenta, error)
}
