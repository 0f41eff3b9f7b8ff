// Package pdf renders calculation results into downloadable PDF reports.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gpa-go-api/internal/models"
)

const reportTitle = "GPA Report"

// ReportBuilder produces the one-shot export artifact for a calculation.
type ReportBuilder struct {
	logger zerolog.Logger
}

// NewReportBuilder constructs a builder.
func NewReportBuilder(logger zerolog.Logger) *ReportBuilder {
	return &ReportBuilder{
		logger: logger.With().Str("component", "pdf_report_builder").Logger(),
	}
}

// Build renders the report: title, the three result fields with GPA to two
// decimal places, the enumerated subject list in original order, and a
// footer carrying the generation date. Long subject lists paginate
// automatically.
func (b *ReportBuilder) Build(result models.Result, subjects []models.Subject, generatedAt time.Time) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 25)
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "I", 9)
		doc.CellFormat(0, 10, fmt.Sprintf("Generated on %s", generatedAt.Format("January 2, 2006")), "", 0, "C", false, 0, "")
	})

	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 14, reportTitle, "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 8, fmt.Sprintf("GPA: %.2f", result.GPA), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 8, fmt.Sprintf("Grade: %s", result.Grade), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 8, fmt.Sprintf("Remarks: %s", result.Remarks), "", 1, "L", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 9, "Subjects", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)

	for i, subject := range subjects {
		marks := strconv.FormatFloat(subject.Marks, 'f', -1, 64)
		line := fmt.Sprintf("%d. %s: %s/100 (%d credit hours)", i+1, subject.Name, marks, subject.CreditHours)
		doc.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		b.logger.Error().Err(err).Msg("pdf rendering failed")
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}

	return buf.Bytes(), nil
}
