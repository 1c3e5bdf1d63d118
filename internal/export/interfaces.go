package export

import (
	"github.com/annoq/consensus-review/internal/model"
)

// Archiver defines the interface for the report archive and export service.
type Archiver interface {
	SetUpdateCallback(func(*model.ExportTask))
	ArchiveReport(jobID, reportID int) (*model.ExportTask, error)
	GetTask(taskID string) (*model.ExportTask, bool)
	GetAllTasks() []*model.ExportTask
	ExportTableXLSX(taskID int, rows []model.ReportRow) (string, error)
	RecentExports(limit int) ([]HistoryEntry, error)
}
