package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ExportReportPDF renders the persisted report of an offboarding record as
// a PDF for compliance filing. Rendering is a pure view over the record; it
// writes nothing.
func (s *OffboardingService) ExportReportPDF(orgID, recordID uint64) ([]byte, error) {
	record, err := s.GetOffboardingRecord(orgID, recordID)
	if err != nil {
		return nil, err
	}
	if record.Report == nil {
		return nil, ErrReportNotReady
	}
	report := record.Report

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Offboarding Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("User: %s (%s)", record.UserName, record.UserEmail))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Initiated by: %s", record.InitiatedByName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", record.Status))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Effective date: %s", report.EffectiveDate.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Completed at: %s", report.CompletedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Tasks reassigned: %d", report.TasksReassigned))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Projects transferred: %d", report.ProjectsTransferred))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Access revoked: %t", report.AccessRevoked))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Data archived: %t", report.DataArchived))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Action log")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, action := range report.ActionLog {
		status := "OK"
		if !action.Success {
			status = "FAILED"
		}
		pdf.Cell(0, 6, fmt.Sprintf("%s  %-18s %s  %s",
			action.Timestamp.Format("15:04:05"), action.Action, status, action.Description))
		pdf.Ln(6)
	}

	if len(report.Errors) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Errors")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, msg := range report.Errors {
			pdf.Cell(0, 6, "- "+msg)
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report PDF: %w", err)
	}

	return buf.Bytes(), nil
}
