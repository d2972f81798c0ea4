// Package pdf renders a one-page intake summary for an accepted employee.
package pdf

import (
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/employee-intake/internal/domain"
)

// GeneratePDF writes the intake summary for e to w.
func GeneratePDF(e *domain.Employee, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-4, 7, "NEW EMPLOYEE INTAKE", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 7, "Received "+e.CreatedAt.Format("2006-01-02"), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 13
	y = section(pdf, marginL, y, contentW, "EMPLOYEE", [][2]string{
		{"Name", e.FirstName + " " + e.LastName},
		{"Email", e.Email},
		{"Phone", e.Phone},
		{"Preferred contact", orDash(e.PreferredContactMethod)},
	})
	y += 4
	section(pdf, marginL, y, contentW, "ADDRESS", [][2]string{
		{"Street", e.Address},
		{"City / State / ZIP", e.City + ", " + e.State + " " + e.Zipcode},
		{"Resume on file", yesNo(e.ResumePath != "")},
	})

	return pdf.Output(w)
}

// section draws a titled two-column box and returns the y below it.
func section(pdf *fpdf.Fpdf, x, y, w float64, title string, rows [][2]string) float64 {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 5.5, title, "LRT", 1, "L", true, 0, "")
	y += 5.5

	labelW := w * 0.35
	for i, row := range rows {
		border := "L"
		if i == len(rows)-1 {
			border = "LB"
		}
		pdf.SetXY(x, y)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 6, row[0], border, 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		rowBorder := "R"
		if i == len(rows)-1 {
			rowBorder = "RB"
		}
		pdf.CellFormat(w-labelW, 6, row[1], rowBorder, 1, "L", false, 0, "")
		y += 6
	}
	return y
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
