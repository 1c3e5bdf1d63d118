package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/annoq/consensus-review/internal/model"
	"github.com/annoq/consensus-review/internal/platform"
)

// XLSX sheet name for table exports
const tableSheetName = "Consensus Review"

// ExportTableXLSX writes the review table rows to an XLSX workbook in the
// export directory and returns the written file path. Rows are written in
// the order supplied, so the on-screen sort order is preserved.
func (s *Service) ExportTableXLSX(taskID int, rows []model.ReportRow) (string, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	index, err := f.NewSheet(tableSheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("drop default sheet: %w", err)
	}

	headers := []string{
		"Job",
		"Stage",
		"Assignee",
		"Conflicts",
		"Conflict Breakdown",
		"Score",
		"Report File",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(tableSheetName, cell, h)
	}

	rowIndex := 2
	for _, r := range rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowIndex)
			_ = f.SetCellValue(tableSheetName, cell, v)
		}

		write(1, r.Job.ID)
		write(2, r.Job.Stage.String())
		write(3, r.AssigneeName())
		write(4, r.ConflictCount())

		breakdown := ""
		if r.Report != nil {
			breakdown = model.FormatConflictBreakdown(r.Report.Summary.ConflictsByType)
		}
		write(5, truncate(breakdown, 140))

		write(6, model.FormatScore(r.Score()))
		write(7, r.DownloadFilename())

		rowIndex++
	}

	// Widen a few columns
	_ = f.SetColWidth(tableSheetName, "A", "A", 8)  // job id
	_ = f.SetColWidth(tableSheetName, "B", "B", 14) // stage
	_ = f.SetColWidth(tableSheetName, "C", "C", 22) // assignee
	_ = f.SetColWidth(tableSheetName, "D", "D", 10) // conflicts
	_ = f.SetColWidth(tableSheetName, "E", "E", 48) // breakdown
	_ = f.SetColWidth(tableSheetName, "F", "F", 8)  // score
	_ = f.SetColWidth(tableSheetName, "G", "G", 42) // filename

	s.tasksMutex.RLock()
	exportDir := s.exportDir
	s.tasksMutex.RUnlock()

	if err := platform.CreateDirectoryIfNotExists(exportDir); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	filename := fmt.Sprintf("consensus-review-task_%d-%s.xlsx", taskID, start.Format("20060102-150405"))
	path := filepath.Join(exportDir, filename)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("xlsx write: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), ReportFilePerms); err != nil {
		return "", fmt.Errorf("write xlsx file: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"task_id", taskID,
		"rows", len(rows),
		"path", path,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return path, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
