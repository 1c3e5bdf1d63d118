package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/annoq/consensus-review/internal/model"
)

// Column order of the results table
const (
	columnJob = iota
	columnStage
	columnAssignee
	columnConflicts
	columnScore
	columnDownload
)

// tableColumn describes one results table column
type tableColumn struct {
	Sort     model.SortColumn
	Title    string
	Width    float32
	Sortable bool
	Render   func(model.ReportRow) string
}

// ResultsTable renders one row per annotation job with its consensus review
// metrics. Columns sort on header tap, stable for tied keys; rows filter by
// stage and assignee.
type ResultsTable struct {
	table          *widget.Table
	stageLabel     *widget.Label
	stageSelect    *widget.Select
	assigneeLabel  *widget.Label
	assigneeSelect *widget.Select
	content        fyne.CanvasObject

	columns []tableColumn

	allRows []model.ReportRow
	rows    []model.ReportRow

	stageFilter    string
	assigneeFilter string

	sortColumn    model.SortColumn
	sortAscending bool
	sorted        bool

	onOpenJob       func(model.Job)
	onDownload      func(model.ReportRow)
	onShowConflicts func(model.ReportRow)
}

// NewResultsTable creates an empty results table. The callbacks handle the
// job link, report download, and conflict breakdown actions; each may be nil.
func NewResultsTable(localization *Localization, onOpenJob func(model.Job),
	onDownload func(model.ReportRow), onShowConflicts func(model.ReportRow)) *ResultsTable {
	t := &ResultsTable{
		onOpenJob:       onOpenJob,
		onDownload:      onDownload,
		onShowConflicts: onShowConflicts,
	}

	t.columns = makeColumns(localization)

	t.table = widget.NewTable(
		func() (int, int) {
			return len(t.rows) + 1, len(t.columns)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.Alignment = fyne.TextAlignCenter
				label.Importance = widget.MediumImportance
				label.SetText(t.cellText(id))
				t.table.SetRowHeight(id.Row, TableHeaderHeight)
				return
			}
			label.TextStyle = fyne.TextStyle{}
			label.Alignment = fyne.TextAlignLeading
			label.Importance = t.cellImportance(id)
			label.SetText(t.cellText(id))
		},
	)
	t.table.OnSelected = t.onCellSelected
	t.applyColumnWidths()

	t.stageLabel = widget.NewLabel(localization.GetText(KeyColumnStage) + ":")
	t.stageSelect = widget.NewSelect(stageFilterOptions(), t.onStageFilterChanged)
	t.stageSelect.Selected = FilterAllOption

	t.assigneeLabel = widget.NewLabel(localization.GetText(KeyColumnAssignee) + ":")
	t.assigneeSelect = widget.NewSelect([]string{FilterAllOption}, t.onAssigneeFilterChanged)
	t.assigneeSelect.Selected = FilterAllOption

	filterBar := container.NewHBox(t.stageLabel, t.stageSelect, t.assigneeLabel, t.assigneeSelect)
	t.content = container.NewBorder(filterBar, nil, nil, nil, t.table)

	return t
}

// makeColumns builds the column set with localized titles
func makeColumns(localization *Localization) []tableColumn {
	return []tableColumn{
		{Sort: model.SortByJob, Title: localization.GetText(KeyColumnJob), Width: JobColumnWidth, Sortable: true,
			Render: func(r model.ReportRow) string { return "#" + strconv.Itoa(r.Job.ID) }},
		{Sort: model.SortByStage, Title: localization.GetText(KeyColumnStage), Width: StageColumnWidth, Sortable: true,
			Render: func(r model.ReportRow) string { return r.Job.Stage.String() }},
		{Sort: model.SortByAssignee, Title: localization.GetText(KeyColumnAssignee), Width: AssigneeColumnWidth, Sortable: true,
			Render: func(r model.ReportRow) string { return r.AssigneeName() }},
		{Sort: model.SortByConflicts, Title: localization.GetText(KeyColumnConflicts), Width: ConflictsColumnWidth, Sortable: true,
			Render: renderConflicts},
		{Sort: model.SortByScore, Title: localization.GetText(KeyColumnScore), Width: ScoreColumnWidth, Sortable: true,
			Render: func(r model.ReportRow) string { return model.FormatScore(r.Score()) }},
		{Title: localization.GetText(KeyColumnDownload), Width: DownloadColumnWidth, Sortable: false,
			Render: renderDownload},
	}
}

// renderConflicts shows the conflict count with an info marker when a
// breakdown is available
func renderConflicts(r model.ReportRow) string {
	text := strconv.Itoa(r.ConflictCount())
	if r.HasReport() && len(r.Report.Summary.ConflictsByType) > 0 {
		text += " " + IconInfo
	}
	return text
}

// renderDownload shows the archive filename, or an inert icon when the job
// has no report
func renderDownload(r model.ReportRow) string {
	if !r.HasReport() {
		return IconDownload
	}
	return IconDownload + " " + r.DownloadFilename()
}

// stageFilterOptions returns the fixed stage filter choices
func stageFilterOptions() []string {
	options := []string{FilterAllOption}
	for _, stage := range model.JobStages() {
		options = append(options, stage.String())
	}
	return options
}

// Content returns the filter bar and table as one layout
func (t *ResultsTable) Content() fyne.CanvasObject {
	return t.content
}

// SetData replaces the table contents with rows joined from the given jobs
// and reports, keeping the current filters and sort order applied.
func (t *ResultsTable) SetData(jobs []model.Job, reports []model.ConsensusReport) {
	t.allRows = model.BuildReportRows(jobs, reports)

	options := append([]string{FilterAllOption}, model.AssigneeFilterOptions(reports)...)
	t.assigneeSelect.Options = options
	if !containsOption(options, t.assigneeSelect.Selected) {
		t.assigneeSelect.Selected = FilterAllOption
		t.assigneeFilter = ""
	}
	t.assigneeSelect.Refresh()

	t.applyFilters()
	t.table.Refresh()
}

// VisibleRows returns a copy of the rows currently shown, filters and sort
// applied
func (t *ResultsTable) VisibleRows() []model.ReportRow {
	rows := make([]model.ReportRow, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// RefreshTexts reapplies localized column titles and filter labels
func (t *ResultsTable) RefreshTexts(localization *Localization) {
	t.columns = makeColumns(localization)
	t.stageLabel.SetText(localization.GetText(KeyColumnStage) + ":")
	t.assigneeLabel.SetText(localization.GetText(KeyColumnAssignee) + ":")
	t.applyColumnWidths()
	t.table.Refresh()
}

// applyColumnWidths sets every column to its configured width
func (t *ResultsTable) applyColumnWidths() {
	for i, column := range t.columns {
		t.table.SetColumnWidth(i, column.Width)
	}
}

// applyFilters rebuilds the visible rows from the full set. Sorting always
// runs against the original row order so ties keep their input order.
func (t *ResultsTable) applyFilters() {
	rows := make([]model.ReportRow, 0, len(t.allRows))
	for _, row := range t.allRows {
		if t.stageFilter != "" && row.Job.Stage.String() != t.stageFilter {
			continue
		}
		if t.assigneeFilter != "" {
			name := row.AssigneeName()
			if t.assigneeFilter == model.AssigneeEmptyOption {
				if name != "" {
					continue
				}
			} else if name != t.assigneeFilter {
				continue
			}
		}
		rows = append(rows, row)
	}
	t.rows = rows

	if t.sorted {
		model.SortRows(t.rows, t.sortColumn, t.sortAscending)
	}
}

// onStageFilterChanged handles stage filter selection
func (t *ResultsTable) onStageFilterChanged(selected string) {
	if selected == FilterAllOption {
		t.stageFilter = ""
	} else {
		t.stageFilter = selected
	}
	t.applyFilters()
	t.table.Refresh()
}

// onAssigneeFilterChanged handles assignee filter selection
func (t *ResultsTable) onAssigneeFilterChanged(selected string) {
	if selected == FilterAllOption {
		t.assigneeFilter = ""
	} else {
		t.assigneeFilter = selected
	}
	t.applyFilters()
	t.table.Refresh()
}

// onCellSelected dispatches header taps to sorting and body taps to the
// column action callbacks
func (t *ResultsTable) onCellSelected(id widget.TableCellID) {
	defer t.table.UnselectAll()

	if id.Row == 0 {
		t.sortBy(id.Col)
		return
	}

	rowIdx := id.Row - 1
	if rowIdx < 0 || rowIdx >= len(t.rows) {
		return
	}
	row := t.rows[rowIdx]

	switch id.Col {
	case columnJob:
		if t.onOpenJob != nil {
			t.onOpenJob(row.Job)
		}
	case columnConflicts:
		if t.onShowConflicts != nil && row.HasReport() {
			t.onShowConflicts(row)
		}
	case columnDownload:
		// No report means nothing to download
		if t.onDownload != nil && row.HasReport() {
			t.onDownload(row)
		}
	}
}

// sortBy cycles the sort order of a column: first tap ascending, second
// descending
func (t *ResultsTable) sortBy(col int) {
	if col < 0 || col >= len(t.columns) || !t.columns[col].Sortable {
		return
	}

	key := t.columns[col].Sort
	if t.sorted && t.sortColumn == key {
		t.sortAscending = !t.sortAscending
	} else {
		t.sortColumn = key
		t.sortAscending = true
		t.sorted = true
	}

	t.applyFilters()
	t.table.Refresh()
}

// cellText returns the rendered text of one cell, header row included
func (t *ResultsTable) cellText(id widget.TableCellID) string {
	if id.Col < 0 || id.Col >= len(t.columns) {
		return ""
	}
	column := t.columns[id.Col]

	if id.Row == 0 {
		title := column.Title
		if t.sorted && column.Sortable && column.Sort == t.sortColumn {
			if t.sortAscending {
				title += SortAscendingMarker
			} else {
				title += SortDescendingMarker
			}
		}
		return title
	}

	rowIdx := id.Row - 1
	if rowIdx < 0 || rowIdx >= len(t.rows) {
		return ""
	}
	return column.Render(t.rows[rowIdx])
}

// cellImportance colors the score column by its band
func (t *ResultsTable) cellImportance(id widget.TableCellID) widget.Importance {
	if id.Col != columnScore {
		return widget.MediumImportance
	}
	rowIdx := id.Row - 1
	if rowIdx < 0 || rowIdx >= len(t.rows) {
		return widget.MediumImportance
	}
	return scoreImportance(model.BandForScore(t.rows[rowIdx].Score()))
}

// scoreImportance maps a score band to the label importance carrying its color
func scoreImportance(band model.ScoreBand) widget.Importance {
	if band == model.ScoreBandGood {
		return widget.SuccessImportance
	}
	return widget.DangerImportance
}

// containsOption reports whether an option list contains the given value
func containsOption(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
