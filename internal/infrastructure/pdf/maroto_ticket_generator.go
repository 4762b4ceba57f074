// Package pdf renderiza con Maroto v2 los documentos imprimibles del punto de
// venta: tickets (venta, entrada, ajuste) en formato angosto de 80mm y
// reportes de inventario en A4.
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
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/copypoint/copypoint-api/internal/application/tickets"
	"github.com/copypoint/copypoint-api/internal/domain/entity"
)

var (
	colorInk  = &props.Color{Red: 30, Green: 30, Blue: 30}
	colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Títulos por tipo de ticket.
var tituloTicket = map[string]string{
	entity.TicketVenta:   "TICKET DE VENTA",
	entity.TicketEntrada: "COMPROBANTE DE ENTRADA",
	entity.TicketAjuste:  "COMPROBANTE DE AJUSTE",
}

// MarotoTicketGenerator implementa tickets.PDFGenerator usando Maroto v2.
type MarotoTicketGenerator struct{}

// NewMarotoTicketGenerator construye el generador.
func NewMarotoTicketGenerator() *MarotoTicketGenerator { return &MarotoTicketGenerator{} }

// GenerarTicket genera el PDF del ticket y devuelve sus bytes.
// Página angosta de 80mm, como la impresora térmica del mostrador.
func (g *MarotoTicketGenerator) GenerarTicket(data tickets.TicketData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(80, 220).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "courier", Size: 8}).
		Build()

	m := maroto.New(cfg)

	for _, r := range encabezadoRows(data) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))

	switch {
	case data.Venta != nil:
		for _, r := range ventaRows(data) {
			m.AddRows(r)
		}
	case data.Movimiento != nil:
		for _, r := range movimientoRows(data) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range pieRows(data) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// encabezadoRows: empresa + título + número + fecha.
func encabezadoRows(data tickets.TicketData) []core.Row {
	rows := make([]core.Row, 0, len(data.Encabezado)+4)
	for i, linea := range data.Encabezado {
		size := 8.0
		style := fontstyle.Normal
		if i == 0 {
			size = 10
			style = fontstyle.Bold
		}
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(linea, props.Text{Size: size, Style: style, Align: align.Center, Color: colorInk}),
		)))
	}
	titulo := tituloTicket[data.Tipo]
	if data.Copia {
		titulo += " (COPIA)"
	}
	rows = append(rows,
		row.New(6).Add(col.New(12).Add(
			text.New(titulo, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center, Top: 2}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New("No. "+data.Numero, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New(data.Fecha.Format("02/01/2006 15:04"), props.Text{Size: 7, Align: align.Center, Color: colorGray}),
		)),
	)
	return rows
}

// ventaRows: cliente, líneas y totales de una venta.
func ventaRows(data tickets.TicketData) []core.Row {
	v := data.Venta
	rows := []core.Row{}

	cliente := v.ClienteNombre
	if cliente == "" {
		cliente = "Consumidor final"
	}
	rows = append(rows, row.New(4).Add(col.New(12).Add(
		text.New("Cliente: "+cliente, props.Text{Size: 7}),
	)))

	for _, d := range data.Detalles {
		rows = append(rows,
			row.New(4).Add(col.New(12).Add(
				text.New(d.ProductoNombre, props.Text{Size: 7, Style: fontstyle.Bold}),
			)),
			row.New(4).Add(
				col.New(6).Add(text.New(
					fmt.Sprintf("%d x %s", d.Cantidad, d.PrecioUnitario.StringFixed(2)),
					props.Text{Size: 7, Color: colorGray},
				)),
				col.New(6).Add(text.New(
					d.SubtotalItem.StringFixed(2),
					props.Text{Size: 7, Align: align.Right},
				)),
			),
		)
	}

	totales := func(label, valor string, bold bool) core.Row {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return row.New(4).Add(
			col.New(7).Add(text.New(label, props.Text{Size: 8, Style: style, Align: align.Right})),
			col.New(5).Add(text.New(valor, props.Text{Size: 8, Style: style, Align: align.Right})),
		)
	}
	rows = append(rows,
		totales("Subtotal:", data.Moneda+" "+v.Subtotal.StringFixed(2), false),
		totales("ITBMS:", data.Moneda+" "+v.Impuestos.StringFixed(2), false),
		totales("TOTAL:", data.Moneda+" "+v.Total.StringFixed(2), true),
	)
	if v.Estado == entity.VentaCancelada {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("*** VENTA CANCELADA ***", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}),
		)))
	}
	return rows
}

// movimientoRows: detalle de una entrada o ajuste con snapshots de stock.
func movimientoRows(data tickets.TicketData) []core.Row {
	mov := data.Movimiento
	campo := func(label, valor string) core.Row {
		return row.New(4).Add(
			col.New(5).Add(text.New(label, props.Text{Size: 7, Color: colorGray})),
			col.New(7).Add(text.New(valor, props.Text{Size: 7})),
		)
	}
	rows := []core.Row{
		campo("Producto:", mov.ProductoNombre),
		campo("Cantidad:", fmt.Sprintf("%+d", mov.Cantidad)),
		campo("Stock anterior:", fmt.Sprintf("%d", mov.StockAnterior)),
		campo("Stock nuevo:", fmt.Sprintf("%d", mov.StockNuevo)),
		campo("Responsable:", mov.Responsable),
	}
	if mov.CostoUnitario != nil {
		rows = append(rows, campo("Costo unitario:", data.Moneda+" "+mov.CostoUnitario.StringFixed(2)))
	}
	if mov.Observaciones != "" {
		rows = append(rows, campo("Observaciones:", mov.Observaciones))
	}
	return rows
}

// pieRows: atendido por + leyenda.
func pieRows(data tickets.TicketData) []core.Row {
	return []core.Row{
		row.New(4).Add(col.New(12).Add(
			text.New("Atendido por: "+data.GeneratedBy, props.Text{Size: 7, Align: align.Center, Color: colorGray}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New("¡Gracias por su compra!", props.Text{Size: 7, Align: align.Center}),
		)),
	}
}
