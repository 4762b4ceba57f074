package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	appusecase "github.com/copypoint/copypoint-api/internal/application/usecase"
	"github.com/copypoint/copypoint-api/internal/domain"
	"github.com/copypoint/copypoint-api/internal/domain/repository"
)

// Formatos de exportación soportados.
const (
	FormatoExcel = "excel"
	FormatoPDF   = "pdf"
)

// ReportUseCase genera reportes de inventario exportados a archivo.
type ReportUseCase struct {
	movRepo      repository.MovimientoRepository
	productoRepo repository.ProductoRepository
	company      *appusecase.CompanyUseCase
	exporters    map[string]Exporter
	dir          string
	log          zerolog.Logger
}

// NewReportUseCase construye el caso de uso. dir es el directorio de salida.
func NewReportUseCase(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	company *appusecase.CompanyUseCase,
	excel, pdf Exporter,
	dir string,
	log zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		movRepo:      movRepo,
		productoRepo: productoRepo,
		company:      company,
		exporters: map[string]Exporter{
			FormatoExcel: excel,
			FormatoPDF:   pdf,
		},
		dir: dir,
		log: log,
	}
}

// GenerarReporteMovimientos exporta los movimientos de un rango de fechas con
// su resumen por tipo. Devuelve la ruta del archivo generado.
func (uc *ReportUseCase) GenerarReporteMovimientos(ctx context.Context, desde, hasta time.Time, formato, generadoPor string) (string, error) {
	exporter, err := uc.exporter(formato)
	if err != nil {
		return "", err
	}
	if hasta.Before(desde) {
		return "", fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}

	movimientos, err := uc.movRepo.ListByDateRange(desde, hasta)
	if err != nil {
		return "", err
	}
	resumen, err := uc.movRepo.Resumen(&desde, &hasta)
	if err != nil {
		return "", err
	}
	encabezado, err := uc.company.EncabezadoDocumentos(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now()
	contenido, err := exporter.ExportMovimientos(ReporteMovimientos{
		Encabezado:  encabezado,
		Desde:       desde,
		Hasta:       hasta,
		GeneradoPor: generadoPor,
		GeneradoEl:  now,
		Movimientos: movimientos,
		Resumen:     resumen,
	})
	if err != nil {
		return "", fmt.Errorf("exportar reporte: %w", err)
	}

	nombre := fmt.Sprintf("movimientos_%s_%s_%s.%s",
		desde.Format("20060102"), hasta.Format("20060102"),
		now.Format("150405"), exporter.Ext())
	return uc.write(nombre, contenido, len(movimientos))
}

// GenerarReporteBajoStock exporta los productos activos con stock bajo su mínimo.
func (uc *ReportUseCase) GenerarReporteBajoStock(ctx context.Context, formato, generadoPor string) (string, error) {
	exporter, err := uc.exporter(formato)
	if err != nil {
		return "", err
	}
	productos, err := uc.productoRepo.ListBajoStock()
	if err != nil {
		return "", err
	}
	encabezado, err := uc.company.EncabezadoDocumentos(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now()
	contenido, err := exporter.ExportBajoStock(ReporteBajoStock{
		Encabezado:  encabezado,
		GeneradoPor: generadoPor,
		GeneradoEl:  now,
		Productos:   productos,
	})
	if err != nil {
		return "", fmt.Errorf("exportar reporte: %w", err)
	}

	nombre := fmt.Sprintf("bajo_stock_%s.%s", now.Format("20060102_150405"), exporter.Ext())
	return uc.write(nombre, contenido, len(productos))
}

func (uc *ReportUseCase) exporter(formato string) (Exporter, error) {
	exporter, ok := uc.exporters[formato]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q (use %s o %s)", domain.ErrInvalidInput, formato, FormatoExcel, FormatoPDF)
	}
	return exporter, nil
}

func (uc *ReportUseCase) write(nombre string, contenido []byte, filas int) (string, error) {
	if err := os.MkdirAll(uc.dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de reportes: %w", err)
	}
	path := filepath.Join(uc.dir, nombre)
	if err := os.WriteFile(path, contenido, 0o644); err != nil {
		return "", fmt.Errorf("escribir reporte: %w", err)
	}
	uc.log.Info().Str("archivo", path).Int("filas", filas).Msg("reporte generado")
	return path, nil
}
