package model

import "time"

// ExportStatus represents the status of a report archive task
type ExportStatus string

const (
	// ExportStatusPending means the task is queued but not started
	ExportStatusPending ExportStatus = "Pending"

	// ExportStatusRunning means the report is being fetched and written
	ExportStatusRunning ExportStatus = "Running"

	// ExportStatusCompleted means the report file was written
	ExportStatusCompleted ExportStatus = "Completed"

	// ExportStatusFailed means the task failed with an error
	ExportStatusFailed ExportStatus = "Failed"
)

// String returns the string representation of ExportStatus
func (es ExportStatus) String() string {
	return string(es)
}

// IsFinished returns true if the task reached a terminal state
func (es ExportStatus) IsFinished() bool {
	return es == ExportStatusCompleted || es == ExportStatusFailed
}

// ExportTask represents a single report archive operation
type ExportTask struct {
	ID         string
	ReportID   int
	JobID      int
	Status     ExportStatus
	FilePath   string // path of the written report file
	LastError  string // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}
