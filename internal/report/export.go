package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Column headers shared by the spreadsheet and the PDF table.
var headers = []string{"Schicht", "Rezeptur", "Einbaugewicht (kg/m²)", "Fläche (m²)", "Abschnitte", "Tonnage (t)"}

// BuildXLSX renders doc as a workbook with a summary and a layers sheet.
func BuildXLSX(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	summarySheet := "Übersicht"
	layersSheet := "Schichten"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(layersSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Tonnage-Bericht")
	_ = f.SetCellValue(summarySheet, "A3", "Projekt")
	_ = f.SetCellValue(summarySheet, "B3", doc.Project)
	_ = f.SetCellValue(summarySheet, "A4", "Erstellt")
	_ = f.SetCellValue(summarySheet, "B4", doc.GeneratedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A5", "Stationen")
	_ = f.SetCellValue(summarySheet, "B5", doc.Stations)
	_ = f.SetCellValue(summarySheet, "A6", "Schichten")
	_ = f.SetCellValue(summarySheet, "B6", len(doc.Layers))
	_ = f.SetCellValue(summarySheet, "A7", "Gesamtmasse (kg)")
	_ = f.SetCellValue(summarySheet, "B7", doc.TotalMass)
	_ = f.SetCellValue(summarySheet, "A8", "Gesamttonnage (t)")
	_ = f.SetCellValue(summarySheet, "B8", doc.Total)

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(layersSheet, cell, h)
	}
	for i, l := range doc.Layers {
		row := i + 2
		_ = f.SetCellValue(layersSheet, fmt.Sprintf("A%d", row), l.Name)
		_ = f.SetCellValue(layersSheet, fmt.Sprintf("B%d", row), l.Recipe)
		_ = f.SetCellValue(layersSheet, fmt.Sprintf("C%d", row), l.InstalledWeight)
		_ = f.SetCellValue(layersSheet, fmt.Sprintf("D%d", row), l.Area)
		_ = f.SetCellValue(layersSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("%d/%d", l.ActiveSections, l.TotalSections))
		_ = f.SetCellValue(layersSheet, fmt.Sprintf("F%d", row), l.Tonnage)
	}
	totalRow := len(doc.Layers) + 2
	_ = f.SetCellValue(layersSheet, fmt.Sprintf("A%d", totalRow), "Gesamt")
	_ = f.SetCellValue(layersSheet, fmt.Sprintf("F%d", totalRow), doc.Total)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPDF renders doc as a one-page A4 report.
func BuildPDF(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252; translate umlauts and unit symbols
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, tr("Tonnage-Bericht: "+doc.Project))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Erstellt: %s", doc.GeneratedAt.Format(time.RFC3339))))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%d Schichten, %d Stationen", len(doc.Layers), doc.Stations)))
	pdf.Ln(8)

	widths := []float64{40, 30, 35, 25, 25, 25}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, l := range doc.Layers {
		pdf.CellFormat(widths[0], 6, tr(l.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(l.Recipe), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%.2f", l.InstalledWeight), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", l.Area), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%d/%d", l.ActiveSections, l.TotalSections), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%.2f", l.Tonnage), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Gesamttonnage: %.2f t (%.0f kg)", doc.Total, doc.TotalMass)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
