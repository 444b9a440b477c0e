package report

import (
	"bytes"
	"fmt"
	"strings"

	"incomeverify/models"
)

// PdfRenderer is the pluggable renderer boundary spec §9 describes,
// replacing the source material's concrete PDF generator so the report
// format can change without touching the analytics core.
type PdfRenderer interface {
	Render(r models.LenderReport) ([]byte, error)
}

// MinimalPdfRenderer produces a deliberately minimal PDF stream: a
// single-page document whose body text carries the report metadata and
// overall score. It satisfies the "%PDF-1.x magic header" contract without
// pulling in a full layout engine. The output has no cross-reference table
// and no font resource dictionary.
type MinimalPdfRenderer struct{}

func (MinimalPdfRenderer) Render(r models.LenderReport) ([]byte, error) {
	var body bytes.Buffer
	fmt.Fprintf(&body, "1099Pass Loan Readiness Report\n")
	fmt.Fprintf(&body, "Report ID: %s\n", r.Metadata.ReportID)
	fmt.Fprintf(&body, "Borrower: %s\n", r.Borrower.DisplayNameMasked)
	fmt.Fprintf(&body, "Overall Score: %d (%s)\n", r.LoanReadinessScore.Overall, r.LoanReadinessScore.Grade.String())
	fmt.Fprintf(&body, "Generated: %s\n", r.Metadata.GeneratedAt.Format("2006-01-02"))

	stream := fmt.Sprintf("BT /F1 10 Tf 72 720 Td (%s) Tj ET", sanitizeForPdfText(body.String()))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	buf.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	buf.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	buf.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R >>\nendobj\n")
	fmt.Fprintf(&buf, "4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream)
	buf.WriteString("trailer\n<< /Root 1 0 R >>\n")
	buf.WriteString("%%EOF\n")

	return buf.Bytes(), nil
}

func sanitizeForPdfText(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
