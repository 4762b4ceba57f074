package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/copypoint/copypoint-api/internal/application/reports"
)

// MarotoReportExporter implementa reports.Exporter en PDF A4.
type MarotoReportExporter struct{}

// NewMarotoReportExporter construye el exportador.
func NewMarotoReportExporter() *MarotoReportExporter { return &MarotoReportExporter{} }

// Ext devuelve la extensión del formato.
func (e *MarotoReportExporter) Ext() string { return "pdf" }

func nuevoDocumento(titulo string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(titulo, true).
		Build()
	return maroto.New(cfg)
}

func reportHeaderRows(encabezado []string, titulo, subtitulo string) []core.Row {
	rows := make([]core.Row, 0, len(encabezado)+3)
	for i, linea := range encabezado {
		size := 8.0
		style := fontstyle.Normal
		if i == 0 {
			size = 12
			style = fontstyle.Bold
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(linea, props.Text{Size: size, Style: style, Color: colorInk}),
		)))
	}
	rows = append(rows,
		row.New(8).Add(col.New(12).Add(
			text.New(titulo, props.Text{Size: 11, Style: fontstyle.Bold, Top: 2}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New(subtitulo, props.Text{Size: 8, Color: colorGray}),
		)),
	)
	return rows
}

func celda(size int, valor string, a align.Type, bold bool) core.Col {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return col.New(size).Add(text.New(valor, props.Text{
		Size: 7.5, Align: a, Style: style, Top: 1, Left: 1, Right: 1,
	}))
}

// ExportMovimientos reporte tabular de movimientos con resumen por tipo.
func (e *MarotoReportExporter) ExportMovimientos(data reports.ReporteMovimientos) ([]byte, error) {
	m := nuevoDocumento("Reporte de movimientos")

	subtitulo := fmt.Sprintf("Del %s al %s — generado por %s el %s",
		data.Desde.Format("02/01/2006"), data.Hasta.Format("02/01/2006"),
		data.GeneradoPor, data.GeneradoEl.Format("02/01/2006 15:04"))
	for _, r := range reportHeaderRows(data.Encabezado, "REPORTE DE MOVIMIENTOS DE INVENTARIO", subtitulo) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))

	m.AddRows(row.New(7).Add(
		celda(2, "Fecha", align.Left, true),
		celda(3, "Producto", align.Left, true),
		celda(1, "Tipo", align.Center, true),
		celda(1, "Cant.", align.Right, true),
		celda(1, "Antes", align.Right, true),
		celda(1, "Después", align.Right, true),
		celda(3, "Responsable", align.Left, true),
	))
	for _, mov := range data.Movimientos {
		m.AddRows(row.New(6).Add(
			celda(2, mov.Fecha.Format("02/01/06 15:04"), align.Left, false),
			celda(3, mov.ProductoNombre, align.Left, false),
			celda(1, mov.Tipo, align.Center, false),
			celda(1, fmt.Sprintf("%+d", mov.Cantidad), align.Right, false),
			celda(1, fmt.Sprintf("%d", mov.StockAnterior), align.Right, false),
			celda(1, fmt.Sprintf("%d", mov.StockNuevo), align.Right, false),
			celda(3, mov.Responsable, align.Left, false),
		))
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(7).Add(col.New(12).Add(
		text.New("RESUMEN POR TIPO", props.Text{Size: 9, Style: fontstyle.Bold, Top: 1}),
	)))
	for _, r := range data.Resumen {
		m.AddRows(row.New(5).Add(
			celda(2, r.Tipo, align.Left, false),
			celda(3, fmt.Sprintf("%d movimientos", r.Cantidad), align.Left, false),
			celda(3, fmt.Sprintf("%d unidades", r.TotalUnidades), align.Left, false),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de movimientos: %w", err)
	}
	return doc.GetBytes(), nil
}

// ExportBajoStock reporte de productos activos con stock bajo su mínimo.
func (e *MarotoReportExporter) ExportBajoStock(data reports.ReporteBajoStock) ([]byte, error) {
	m := nuevoDocumento("Productos bajo stock")

	subtitulo := fmt.Sprintf("Generado por %s el %s",
		data.GeneradoPor, data.GeneradoEl.Format("02/01/2006 15:04"))
	for _, r := range reportHeaderRows(data.Encabezado, "PRODUCTOS BAJO STOCK MÍNIMO", subtitulo) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))

	m.AddRows(row.New(7).Add(
		celda(5, "Producto", align.Left, true),
		celda(2, "Stock", align.Right, true),
		celda(2, "Mínimo", align.Right, true),
		celda(3, "Faltante", align.Right, true),
	))
	for _, p := range data.Productos {
		m.AddRows(row.New(6).Add(
			celda(5, p.Nombre, align.Left, false),
			celda(2, fmt.Sprintf("%d", p.Stock), align.Right, false),
			celda(2, fmt.Sprintf("%d", p.StockMinimo), align.Right, false),
			celda(3, fmt.Sprintf("%d", p.StockMinimo-p.Stock), align.Right, false),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte bajo stock: %w", err)
	}
	return doc.GetBytes(), nil
}
