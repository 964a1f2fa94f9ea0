package services

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/alimgiray/mrscope/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	contributorsSheet = "Contributors"
	summarySheet      = "Summary"
)

var contributorHeaders = []interface{}{"Username", "Opened", "Committed", "Commented", "Reacted", "Total"}

// ExportService renders contributor reports as spreadsheets
type ExportService struct {
	now func() time.Time
}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{now: time.Now}
}

// WriteContributors writes report as an XLSX workbook to w
func (s *ExportService) WriteContributors(w io.Writer, report *models.ContributorReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", contributorsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(contributorsSheet, "A1", &contributorHeaders); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, c := range rankContributors(report.Contributors) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{c.Username, c.Opened, c.Committed, c.Commented, c.Reacted, c.Total()}
		if err := f.SetSheetRow(contributorsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", c.Username, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Project", report.ProjectID},
		{"Total merge requests", report.TotalMergeRequests},
		{"Scanned merge requests", report.ScannedMergeRequests},
		{"Contributors", len(report.Contributors)},
		{"Estimated total time (s)", report.EstimatedSeconds},
		{"Generated at", s.now().UTC().Format(time.RFC3339)},
	}
	for i, row := range summary {
		row := row
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// rankContributors orders by total descending, then username
func rankContributors(contributors []*models.Contributor) []*models.Contributor {
	ranked := append([]*models.Contributor(nil), contributors...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Total() != ranked[j].Total() {
			return ranked[i].Total() > ranked[j].Total()
		}
		return ranked[i].Username < ranked[j].Username
	})
	return ranked
}
