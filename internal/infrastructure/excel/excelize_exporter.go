// Package excel exporta reportes de inventario a XLSX con excelize.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/copypoint/copypoint-api/internal/application/reports"
)

// ExcelizeExporter implementa reports.Exporter en formato XLSX.
type ExcelizeExporter struct{}

// NewExcelizeExporter construye el exportador.
func NewExcelizeExporter() *ExcelizeExporter { return &ExcelizeExporter{} }

// Ext devuelve la extensión del formato.
func (e *ExcelizeExporter) Ext() string { return "xlsx" }

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
}

func writeEncabezado(f *excelize.File, sheet string, encabezado []string, titulo string) (int, error) {
	fila := 1
	for _, linea := range encabezado {
		cell := fmt.Sprintf("A%d", fila)
		if err := f.SetCellValue(sheet, cell, linea); err != nil {
			return 0, err
		}
		fila++
	}
	tituloCell := fmt.Sprintf("A%d", fila+1)
	if err := f.SetCellValue(sheet, tituloCell, titulo); err != nil {
		return 0, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return 0, err
	}
	if err := f.SetCellStyle(sheet, tituloCell, tituloCell, bold); err != nil {
		return 0, err
	}
	return fila + 3, nil
}

// ExportMovimientos hoja "Movimientos" con una fila por movimiento y una
// sección de resumen por tipo al final.
func (e *ExcelizeExporter) ExportMovimientos(data reports.ReporteMovimientos) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Movimientos"
	f.SetSheetName("Sheet1", sheet)

	titulo := fmt.Sprintf("Movimientos del %s al %s — generado por %s",
		data.Desde.Format("02/01/2006"), data.Hasta.Format("02/01/2006"), data.GeneradoPor)
	fila, err := writeEncabezado(f, sheet, data.Encabezado, titulo)
	if err != nil {
		return nil, fmt.Errorf("excel: encabezado: %w", err)
	}

	columnas := []string{"Fecha", "Producto", "Tipo", "Cantidad", "Stock anterior", "Stock nuevo", "Responsable", "Observaciones"}
	for i, c := range columnas {
		cell, _ := excelize.CoordinatesToCellName(i+1, fila)
		if err := f.SetCellValue(sheet, cell, c); err != nil {
			return nil, fmt.Errorf("excel: cabecera de tabla: %w", err)
		}
	}
	if style, err := headerStyle(f); err == nil {
		first, _ := excelize.CoordinatesToCellName(1, fila)
		last, _ := excelize.CoordinatesToCellName(len(columnas), fila)
		_ = f.SetCellStyle(sheet, first, last, style)
	}

	for i, mov := range data.Movimientos {
		valores := []interface{}{
			mov.Fecha.Format("02/01/2006 15:04"),
			mov.ProductoNombre,
			mov.Tipo,
			mov.Cantidad,
			mov.StockAnterior,
			mov.StockNuevo,
			mov.Responsable,
			mov.Observaciones,
		}
		for j, v := range valores {
			cell, _ := excelize.CoordinatesToCellName(j+1, fila+1+i)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("excel: fila de movimiento: %w", err)
			}
		}
	}

	fila += len(data.Movimientos) + 2
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", fila), "Resumen por tipo"); err != nil {
		return nil, fmt.Errorf("excel: resumen: %w", err)
	}
	for i, r := range data.Resumen {
		base := fila + 1 + i
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", base), r.Tipo)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", base), r.Cantidad)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", base), r.TotalUnidades)
	}

	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "B", 32)
	_ = f.SetColWidth(sheet, "G", "H", 24)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportBajoStock hoja "Bajo stock" con los productos bajo su mínimo.
func (e *ExcelizeExporter) ExportBajoStock(data reports.ReporteBajoStock) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bajo stock"
	f.SetSheetName("Sheet1", sheet)

	titulo := fmt.Sprintf("Productos bajo stock mínimo — generado por %s el %s",
		data.GeneradoPor, data.GeneradoEl.Format("02/01/2006 15:04"))
	fila, err := writeEncabezado(f, sheet, data.Encabezado, titulo)
	if err != nil {
		return nil, fmt.Errorf("excel: encabezado: %w", err)
	}

	columnas := []string{"Producto", "Stock", "Stock mínimo", "Faltante"}
	for i, c := range columnas {
		cell, _ := excelize.CoordinatesToCellName(i+1, fila)
		if err := f.SetCellValue(sheet, cell, c); err != nil {
			return nil, fmt.Errorf("excel: cabecera de tabla: %w", err)
		}
	}
	if style, err := headerStyle(f); err == nil {
		first, _ := excelize.CoordinatesToCellName(1, fila)
		last, _ := excelize.CoordinatesToCellName(len(columnas), fila)
		_ = f.SetCellStyle(sheet, first, last, style)
	}

	for i, p := range data.Productos {
		base := fila + 1 + i
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", base), p.Nombre)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", base), p.Stock)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", base), p.StockMinimo)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", base), p.StockMinimo-p.Stock)
	}
	_ = f.SetColWidth(sheet, "A", "A", 32)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
