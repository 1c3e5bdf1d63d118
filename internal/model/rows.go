package model

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// AssigneeEmptyOption is the filter entry matching rows without an assignee
const AssigneeEmptyOption = "Is Empty"

// ReportRow is one line of the review table: an annotation job joined with
// its consensus report, if one exists. Rows are rebuilt from scratch on every
// load; they carry no state of their own.
type ReportRow struct {
	Job    Job
	Report *ConsensusReport
}

// HasReport returns true when the join found a report for this job
func (rr ReportRow) HasReport() bool {
	return rr.Report != nil
}

// AssigneeName returns the report assignee's username, or "" without a report
func (rr ReportRow) AssigneeName() string {
	return rr.Report.AssigneeUsername()
}

// ConflictCount returns the report's conflict count, defaulting to 0
func (rr ReportRow) ConflictCount() int {
	if rr.Report == nil {
		return 0
	}
	return rr.Report.Summary.ConflictCount
}

// Score returns the report's consensus score, or nil without a report
func (rr ReportRow) Score() *float64 {
	if rr.Report == nil {
		return nil
	}
	return rr.Report.ConsensusScore
}

// DownloadFilename returns the archive filename for the row's report, or ""
// when the row has no report to download
func (rr ReportRow) DownloadFilename() string {
	if rr.Report == nil {
		return ""
	}
	return ReportFilename(rr.Job.ID, rr.Report.ID)
}

// BuildReportRows left-joins jobs with reports by job ID. Only annotation
// jobs produce rows; when several reports reference the same job, the first
// one in the supplied order wins and the rest are ignored.
func BuildReportRows(jobs []Job, reports []ConsensusReport) []ReportRow {
	byJob := make(map[int]*ConsensusReport, len(reports))
	for i := range reports {
		if _, seen := byJob[reports[i].JobID]; !seen {
			byJob[reports[i].JobID] = &reports[i]
		}
	}

	rows := make([]ReportRow, 0, len(jobs))
	for _, job := range jobs {
		if !job.IsAnnotation() {
			continue
		}
		rows = append(rows, ReportRow{Job: job, Report: byJob[job.ID]})
	}
	return rows
}

// AssigneeFilterOptions collects the distinct assignee usernames across all
// reports, in first-seen order. Usernames are NFC-normalized before
// comparison so the same name in different Unicode compositions collapses to
// one option. Reports without an assignee contribute a single
// AssigneeEmptyOption entry at the end.
func AssigneeFilterOptions(reports []ConsensusReport) []string {
	options := make([]string, 0, len(reports))
	seen := make(map[string]bool, len(reports))
	hasEmpty := false

	for i := range reports {
		if reports[i].Assignee == nil {
			hasEmpty = true
			continue
		}
		username := norm.NFC.String(reports[i].Assignee.Username)
		if username == "" {
			hasEmpty = true
			continue
		}
		if !seen[username] {
			seen[username] = true
			options = append(options, username)
		}
	}

	if hasEmpty {
		options = append(options, AssigneeEmptyOption)
	}
	return options
}

// SortColumn selects which review table column drives the sort order
type SortColumn int

const (
	SortByJob SortColumn = iota
	SortByStage
	SortByAssignee
	SortByConflicts
	SortByScore
)

// SortRows orders rows in place by the given column. The sort is stable, so
// rows comparing equal keep their original relative order. Absent scores sort
// below every present score.
func SortRows(rows []ReportRow, column SortColumn, ascending bool) {
	less := rowLess(column)
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
}

func rowLess(column SortColumn) func(a, b ReportRow) bool {
	switch column {
	case SortByStage:
		return func(a, b ReportRow) bool {
			return strings.Compare(string(a.Job.Stage), string(b.Job.Stage)) < 0
		}
	case SortByAssignee:
		return func(a, b ReportRow) bool {
			return strings.Compare(a.AssigneeName(), b.AssigneeName()) < 0
		}
	case SortByConflicts:
		return func(a, b ReportRow) bool {
			return a.ConflictCount() < b.ConflictCount()
		}
	case SortByScore:
		return func(a, b ReportRow) bool {
			return scoreSortValue(a.Score()) < scoreSortValue(b.Score())
		}
	default:
		return func(a, b ReportRow) bool {
			return a.Job.ID < b.Job.ID
		}
	}
}

// scoreSortValue maps an absent score strictly below the [0,1] score range
func scoreSortValue(score *float64) float64 {
	if score == nil {
		return -1
	}
	return *score
}
