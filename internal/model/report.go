package model

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// GoodScoreThreshold is the consensus score at or above which a job is
// considered in good agreement
const GoodScoreThreshold = 0.9

// ScoreAbsentLabel is rendered when a report carries no consensus score
const ScoreAbsentLabel = "N/A"

// ScoreBand classifies a consensus score for display
type ScoreBand int

const (
	// ScoreBandDegraded marks scores below the threshold, including absent ones
	ScoreBandDegraded ScoreBand = iota

	// ScoreBandGood marks scores at or above the threshold
	ScoreBandGood
)

// ReportSummary aggregates the conflicts detected for one job
type ReportSummary struct {
	FrameCount      int            `json:"frame_count"`
	ConflictCount   int            `json:"conflict_count"`
	ConflictsByType map[string]int `json:"conflicts_by_type"`
}

// ConsensusReport represents the server-computed agreement report for a job.
// Reports are read-only on the client; the server recomputes them after each
// consensus merge.
type ConsensusReport struct {
	ID                int           `json:"id"`
	JobID             int           `json:"job_id"`
	TaskID            int           `json:"task_id"`
	CreatedDate       time.Time     `json:"created_date"`
	TargetLastUpdated time.Time     `json:"target_last_updated"`
	Assignee          *Assignee     `json:"assignee"`
	ConsensusScore    *float64      `json:"consensus_score"` // nil when not computed
	Summary           ReportSummary `json:"summary"`
}

// AssigneeUsername returns the report assignee's username, or "" if unassigned
func (r *ConsensusReport) AssigneeUsername() string {
	if r == nil || r.Assignee == nil {
		return ""
	}
	return r.Assignee.Username
}

// BandForScore classifies a possibly absent score against GoodScoreThreshold.
// An absent score counts as degraded.
func BandForScore(score *float64) ScoreBand {
	if score == nil || *score < GoodScoreThreshold {
		return ScoreBandDegraded
	}
	return ScoreBandGood
}

// FormatScore renders a consensus score as an integer percent label, or
// ScoreAbsentLabel when the score is absent
func FormatScore(score *float64) string {
	if score == nil {
		return ScoreAbsentLabel
	}
	return fmt.Sprintf("%d%%", int(math.Round(*score*100)))
}

// FormatConflictBreakdown renders a per-type conflict summary as one line,
// types sorted alphabetically so the output is deterministic
func FormatConflictBreakdown(byType map[string]int) string {
	if len(byType) == 0 {
		return ""
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s: %d", t, byType[t]))
	}
	return strings.Join(parts, "; ")
}

// ReportDataPath returns the API path serving a report's raw document
func ReportDataPath(reportID int) string {
	return fmt.Sprintf("/consensus/reports/%d/data", reportID)
}

// ReportFilename returns the conventional filename for an archived report
func ReportFilename(jobID, reportID int) string {
	return fmt.Sprintf("consensus-report-job_%d-%d.json", jobID, reportID)
}
