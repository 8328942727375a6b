package services

import (
	"encoding/csv"
	"io"
	"time"

	"taskway/internal/models"
	"taskway/internal/pdf"
)

// ExportService serializes a user's task list for download.
type ExportService interface {
	WriteCSV(w io.Writer, tasks []models.Task) error
	WritePDF(w io.Writer, owner string, tasks []models.Task, now time.Time) error
}

type exportService struct {
	reports *pdf.ReportGenerator
	loc     *time.Location
}

func NewExportService(reports *pdf.ReportGenerator, loc *time.Location) ExportService {
	return &exportService{reports: reports, loc: loc}
}

var csvHeader = []string{"Title", "Description", "Status", "Priority", "Category", "Due Date", "Created"}

func (s *exportService) WriteCSV(w io.Writer, tasks []models.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		desc := ""
		if t.Description != nil {
			desc = *t.Description
		}
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.In(s.loc).Format("2006-01-02")
		}
		record := []string{
			t.Title,
			desc,
			string(t.Status),
			string(t.Priority),
			t.Category,
			due,
			t.CreatedAt.In(s.loc).Format("2006-01-02"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *exportService) WritePDF(w io.Writer, owner string, tasks []models.Task, now time.Time) error {
	rows := make([]pdf.ReportRow, 0, len(tasks))
	for _, t := range tasks {
		var due *time.Time
		if t.DueDate != nil {
			d := t.DueDate.In(s.loc)
			due = &d
		}
		rows = append(rows, pdf.ReportRow{
			Title:    t.Title,
			Status:   string(t.Status),
			Priority: string(t.Priority),
			Category: t.Category,
			DueDate:  due,
		})
	}
	return s.reports.Generate(w, pdf.ReportData{
		Owner:       owner,
		GeneratedAt: now.In(s.loc),
		Rows:        rows,
	})
}
