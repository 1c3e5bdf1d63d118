package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/annoq/consensus-review/internal/model"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestExportTableXLSX(t *testing.T) {
	exportDir := t.TempDir()
	service := NewService(&fakeFetcher{}, nil, exportDir, testLogger())

	rows := []model.ReportRow{
		{
			Job: model.Job{ID: 5, Type: model.JobTypeAnnotation, Stage: model.JobStageAnnotation},
			Report: &model.ConsensusReport{
				ID:             42,
				JobID:          5,
				Assignee:       &model.Assignee{ID: 1, Username: "alice"},
				ConsensusScore: floatPtr(0.95),
				Summary: model.ReportSummary{
					ConflictCount:   2,
					ConflictsByType: map[string]int{"mismatching_label": 2},
				},
			},
		},
		{
			Job: model.Job{ID: 6, Type: model.JobTypeAnnotation, Stage: model.JobStageValidation},
		},
	}

	path, err := service.ExportTableXLSX(7, rows)
	if err != nil {
		t.Fatalf("ExportTableXLSX failed: %v", err)
	}

	if filepath.Dir(path) != exportDir {
		t.Errorf("Expected file in export dir, got %s", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "consensus-review-task_7-") {
		t.Errorf("Unexpected export filename %s", filepath.Base(path))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open written workbook: %v", err)
	}
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(tableSheetName, ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", ref, err)
		}
		return v
	}

	if cell("A1") != "Job" || cell("F1") != "Score" {
		t.Errorf("Unexpected headers: A1=%q F1=%q", cell("A1"), cell("F1"))
	}

	// First row carries the full report
	if cell("A2") != "5" {
		t.Errorf("Expected job 5 in A2, got %q", cell("A2"))
	}
	if cell("C2") != "alice" {
		t.Errorf("Expected assignee alice in C2, got %q", cell("C2"))
	}
	if cell("D2") != "2" {
		t.Errorf("Expected 2 conflicts in D2, got %q", cell("D2"))
	}
	if cell("E2") != "mismatching_label: 2" {
		t.Errorf("Expected breakdown in E2, got %q", cell("E2"))
	}
	if cell("F2") != "95%" {
		t.Errorf("Expected score 95%% in F2, got %q", cell("F2"))
	}
	if cell("G2") != "consensus-report-job_5-42.json" {
		t.Errorf("Expected report filename in G2, got %q", cell("G2"))
	}

	// Second row has no report; defaults apply
	if cell("C3") != "" {
		t.Errorf("Expected blank assignee in C3, got %q", cell("C3"))
	}
	if cell("D3") != "0" {
		t.Errorf("Expected 0 conflicts in D3, got %q", cell("D3"))
	}
	if cell("F3") != "N/A" {
		t.Errorf("Expected N/A score in F3, got %q", cell("F3"))
	}
	if cell("G3") != "" {
		t.Errorf("Expected no filename in G3, got %q", cell("G3"))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		limit    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a longer string", 10, "this is..."},
		{"anything", 0, "anything"},
	}

	for _, test := range tests {
		if got := truncate(test.input, test.limit); got != test.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", test.input, test.limit, got, test.expected)
		}
	}
}
