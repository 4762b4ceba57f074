package reports

import (
	"time"

	"github.com/copypoint/copypoint-api/internal/domain/entity"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

// ReporteMovimientos datos ya resueltos para exportar un reporte de movimientos.
type ReporteMovimientos struct {
	Encabezado  []string // líneas de encabezado de la empresa
	Desde       time.Time
	Hasta       time.Time
	GeneradoPor string
	GeneradoEl  time.Time
	Movimientos []*entity.Movimiento
	Resumen     []*repository.ResumenMovimientos
}

// ReporteBajoStock datos para exportar el reporte de productos bajo stock.
type ReporteBajoStock struct {
	Encabezado  []string
	GeneradoPor string
	GeneradoEl  time.Time
	Productos   []*entity.Producto
}

// Exporter renderiza reportes en un formato concreto (Excel, PDF).
type Exporter interface {
	ExportMovimientos(data ReporteMovimientos) ([]byte, error)
	ExportBajoStock(data ReporteBajoStock) ([]byte, error)
	// Ext extensión de archivo del formato, sin punto (xlsx, pdf).
	Ext() string
}
