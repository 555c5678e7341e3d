package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"execogim/internal/domain/report"
)

// PDFRenderer implements Renderer with a paginated A4 PDF layout.
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render lays out the document title, each section in order, and a page
// break before sections that request one.
// PRE: doc was produced by report.Assemble
// POST: Returns the PDF bytes and "application/pdf"
func (p *PDFRenderer) Render(doc report.Document) ([]byte, string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, sec := range doc.Sections {
		writeSection(pdf, sec)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), "application/pdf", nil
}

func writeSection(pdf *fpdf.Fpdf, sec report.Section) {
	if sec.PageBreak {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, sec.Heading, "", 1, "C", false, 0, "")
		pdf.Ln(6)
	} else if sec.Heading != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, sec.Heading, "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range sec.Lines {
		pdf.MultiCell(0, 6, line, "", "L", false)
	}

	for _, row := range sec.Rows {
		txt := fmt.Sprintf("%s: Pre: %s | Post: %s | Change: %s", row.Label, row.Pre, row.Post, row.Change)
		pdf.CellFormat(0, 6, txt, "", 1, "L", false, 0, "")
	}

	for _, wk := range sec.Weeks {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Week %d", wk.Number), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, sess := range wk.Sessions {
			txt := fmt.Sprintf("  %s: %s (%d min)", sess.Day, sess.Type, sess.DurationMin)
			pdf.CellFormat(0, 6, txt, "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	pdf.Ln(4)
}
