package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/annoq/consensus-review/internal/client"
	"github.com/annoq/consensus-review/internal/model"
	"github.com/annoq/consensus-review/internal/platform"
)

// Task and file constants
const (
	TaskIDPrefix       = "export-"
	ReportFilePerms    = 0644
	reportFetchTimeout = 60 * time.Second
)

// Service handles report archive operations
type Service struct {
	tasks      map[string]*model.ExportTask
	tasksMutex sync.RWMutex
	fetcher    client.ReportFetcher
	history    *History
	exportDir  string
	onUpdate   func(*model.ExportTask) // callback for UI updates
	logger     *slog.Logger
}

// NewService creates a new report archive service. The history index may be
// nil, in which case finished exports are not recorded.
func NewService(fetcher client.ReportFetcher, history *History, exportDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		tasks:     make(map[string]*model.ExportTask),
		fetcher:   fetcher,
		history:   history,
		exportDir: exportDir,
		logger:    logger,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ExportTask)) {
	s.onUpdate = callback
}

// SetExportDirectory sets the directory archived reports are written to
func (s *Service) SetExportDirectory(dir string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.exportDir = dir
}

// SetFetcher replaces the report fetcher. Called after the server connection
// settings change; running tasks keep the fetcher they started with.
func (s *Service) SetFetcher(fetcher client.ReportFetcher) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.fetcher = fetcher
}

// ArchiveReport starts archiving one report document in the background
func (s *Service) ArchiveReport(jobID, reportID int) (*model.ExportTask, error) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	// One active task per report is enough
	for _, task := range s.tasks {
		if task.ReportID == reportID && !task.Status.IsFinished() {
			return nil, fmt.Errorf("archive already in progress for report %d", reportID)
		}
	}

	task := &model.ExportTask{
		ID:        generateTaskID(),
		ReportID:  reportID,
		JobID:     jobID,
		Status:    model.ExportStatusPending,
		StartedAt: time.Now(),
	}

	s.tasks[task.ID] = task

	go s.runTask(task)

	return task, nil
}

// GetTask returns a task by ID
func (s *Service) GetTask(taskID string) (*model.ExportTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// GetAllTasks returns all tasks
func (s *Service) GetAllTasks() []*model.ExportTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.ExportTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// RecentExports returns the newest finished exports from the history index,
// newest first. Without a history index the list is empty.
func (s *Service) RecentExports(limit int) ([]HistoryEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(limit)
}

// runTask fetches, validates, and writes one report document
func (s *Service) runTask(task *model.ExportTask) {
	s.setStatus(task, model.ExportStatusRunning)

	ctx, cancel := context.WithTimeout(context.Background(), reportFetchTimeout)
	defer cancel()

	s.tasksMutex.RLock()
	fetcher := s.fetcher
	s.tasksMutex.RUnlock()

	data, err := fetcher.ReportData(ctx, task.ReportID)
	if err != nil {
		s.failTask(task, fmt.Errorf("fetch report: %w", err))
		return
	}

	if err := ValidateReportDocument(data); err != nil {
		s.failTask(task, fmt.Errorf("report document rejected: %w", err))
		return
	}

	s.tasksMutex.RLock()
	exportDir := s.exportDir
	s.tasksMutex.RUnlock()

	if err := platform.CreateDirectoryIfNotExists(exportDir); err != nil {
		s.failTask(task, fmt.Errorf("create export directory: %w", err))
		return
	}

	filePath := filepath.Join(exportDir, model.ReportFilename(task.JobID, task.ReportID))
	if err := os.WriteFile(filePath, data, ReportFilePerms); err != nil {
		s.failTask(task, fmt.Errorf("write report file: %w", err))
		return
	}

	if s.history != nil {
		entry := HistoryEntry{
			TaskID:     task.ID,
			ReportID:   task.ReportID,
			JobID:      task.JobID,
			FilePath:   filePath,
			ExportedAt: time.Now(),
		}
		if err := s.history.Record(entry); err != nil {
			// The file is on disk; a broken index must not fail the task
			s.logger.Warn("export.history.record_error", "task_id", task.ID, "error", err)
		}
	}

	s.tasksMutex.Lock()
	task.Status = model.ExportStatusCompleted
	task.FilePath = filePath
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	s.logger.Info("export.archive.ok",
		"task_id", task.ID,
		"report_id", task.ReportID,
		"job_id", task.JobID,
		"path", filePath,
		"bytes", len(data),
		"elapsed_ms", time.Since(task.StartedAt).Milliseconds(),
	)
}

// setStatus updates a task status and notifies the UI
func (s *Service) setStatus(task *model.ExportTask, status model.ExportStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// failTask marks a task as failed and notifies the UI
func (s *Service) failTask(task *model.ExportTask, err error) {
	s.tasksMutex.Lock()
	task.Status = model.ExportStatusFailed
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	s.logger.Error("export.archive.error",
		"task_id", task.ID,
		"report_id", task.ReportID,
		"error", err,
	)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ExportTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Extremely unlikely; fall back to a timestamp-based ID
		return fmt.Sprintf("%s%d", TaskIDPrefix, time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
