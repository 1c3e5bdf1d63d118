package client

import (
	"context"

	"github.com/annoq/consensus-review/internal/model"
)

// API defines the annotation server operations the UI depends on
type API interface {
	// Jobs returns all jobs of a task, following result pages
	Jobs(ctx context.Context, taskID int) ([]model.Job, error)

	// ConsensusReports returns all consensus reports of a task
	ConsensusReports(ctx context.Context, taskID int) ([]model.ConsensusReport, error)

	// ConsensusSettings returns the task's consensus settings entity, or
	// ErrNoSettings when the task has none
	ConsensusSettings(ctx context.Context, taskID int) (model.ConsensusSettings, error)

	// UpdateConsensusSettings persists one settings update and returns the
	// canonical server snapshot
	UpdateConsensusSettings(ctx context.Context, settingsID int, update model.ConsensusSettingsUpdate) (model.ConsensusSettings, error)

	// ConfigureTask applies a consensus configuration snapshot to a task
	ConfigureTask(ctx context.Context, taskID int, cfg model.ConsensusConfiguration) error

	// CreateMerge asks the server to merge the task's consensus replicas
	CreateMerge(ctx context.Context, taskID int) error

	// ReportData returns the raw document of one consensus report
	ReportData(ctx context.Context, reportID int) ([]byte, error)

	// WebURL joins a navigation path onto the server's web root
	WebURL(path string) string
}

// ReportFetcher is the narrow slice of API the export service needs
type ReportFetcher interface {
	ReportData(ctx context.Context, reportID int) ([]byte, error)
}
