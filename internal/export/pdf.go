package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMarginLeft = 18
	pdfRowHeight  = 14
	pdfFontSize   = 8
)

// WritePDF renders the rows as a landscape A4 table with a title and a
// per-page footer line (generation timestamp plus active filters), and
// writes the document to w.
func WritePDF(w io.Writer, rows []Row, plan Plan, footer string) error {
	pdf := gofpdf.New("L", "pt", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)

	pdf.SetFooterFunc(func() {
		_, pageH := pdf.GetPageSize()
		pdf.SetXY(pdfMarginLeft+6, pageH-18)
		pdf.SetFont("Helvetica", "", pdfFontSize)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 10, tr(footer), "", 0, "L", false, 0, "")
	})

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(233, 193, 108)
		pdf.SetTextColor(24, 26, 32)
		pdf.SetX(pdfMarginLeft)
		for _, col := range plan.PDFColumns {
			pdf.CellFormat(col.Width, pdfRowHeight, tr(col.Header), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(pdfRowHeight)
		pdf.SetFont("Helvetica", "", pdfFontSize)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(24, 24, tr(plan.Title))
	pdf.SetY(40)
	drawHeader()

	_, pageH := pdf.GetPageSize()
	for _, row := range rows {
		if pdf.GetY()+pdfRowHeight > pageH-36 {
			pdf.AddPage()
			pdf.SetY(24)
			drawHeader()
		}
		pdf.SetX(pdfMarginLeft)
		for _, col := range plan.PDFColumns {
			pdf.CellFormat(col.Width, pdfRowHeight, tr(row.Field(col.Key)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
