package summary

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"intake-backend/internal/intake"
	"intake-backend/internal/shared/util"
)

const (
	documentTitle = "Patient Information"
	labelWidth    = 64.0
	lineHeight    = 6.0
)

// Renderer draws patient summaries as PDF documents.
type Renderer struct {
	Pharmacy string
	Now      func() time.Time
}

// NewRenderer returns a Renderer stamping documents with the current time.
func NewRenderer(pharmacy string) *Renderer {
	return &Renderer{Pharmacy: pharmacy, Now: time.Now}
}

// FileName is the summary's logical name, e.g. patient_Jane_Doe.pdf.
func FileName(rec intake.PatientRecord) string {
	return fmt.Sprintf("patient_%s_%s.pdf", fileToken(rec.FirstName), fileToken(rec.LastName))
}

// Render lays out rec and returns the PDF bytes.
func (r *Renderer) Render(rec intake.PatientRecord) ([]byte, error) {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(documentTitle, true)
	pdf.SetCreator(r.Pharmacy, true)
	pdf.SetCreationDate(now)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		footer := fmt.Sprintf("Submitted %s - page %d", now.UTC().Format("2006-01-02 15:04 MST"), pdf.PageNo())
		pdf.CellFormat(0, 8, tr(footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(documentTitle), "", 1, "C", false, 0, "")
	if r.Pharmacy != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(r.Pharmacy), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFillColor(232, 236, 241)
	for _, section := range Layout(rec) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(section.Title), "", 1, "L", true, 0, "")
		pdf.Ln(1)
		for _, row := range section.Rows {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(labelWidth, lineHeight, tr(row.Label+":"), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, lineHeight, tr(row.Value), "", "L", false)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fileToken reduces a name to characters safe in an object key. Trailing dots
// ("Jr.") are dropped so the token never runs into the extension.
func fileToken(s string) string {
	token, err := util.SanitizeFileName(strings.Join(strings.Fields(s), "_"))
	if err != nil {
		return "unknown"
	}
	return token
}
