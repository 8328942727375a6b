package pdf

import (
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ReportData is the input for a task-list report.
type ReportData struct {
	Owner       string
	GeneratedAt time.Time
	Rows        []ReportRow
}

type ReportRow struct {
	Title    string
	Status   string
	Priority string
	Category string
	DueDate  *time.Time
}

// ReportGenerator renders a printable task list.
type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// Generate writes an A4 portrait task report to w.
func (g *ReportGenerator) Generate(w io.Writer, data ReportData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Task Report", false)
	pdf.SetAuthor("Taskway", false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Task Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	sub := data.GeneratedAt.Format("January 2, 2006")
	if data.Owner != "" {
		sub = data.Owner + "  ·  " + sub
	}
	pdf.CellFormat(0, 6, sub, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Table header
	widths := []float64{70, 25, 22, 28, 35}
	headers := []string{"Title", "Status", "Priority", "Category", "Due"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range data.Rows {
		due := ""
		if row.DueDate != nil {
			due = row.DueDate.Format("2006-01-02 15:04")
		}
		cells := []string{row.Title, row.Status, row.Priority, row.Category, due}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
