package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/annoq/consensus-review/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(serverURL string) *Client {
	return New(serverURL, "test-token", 5*time.Second, testLogger())
}

func TestClient_Jobs_Pagination(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/jobs" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("task_id") != "7" {
			t.Errorf("Expected task_id=7, got %s", r.URL.Query().Get("task_id"))
		}
		if auth := r.Header.Get("Authorization"); auth != "Token test-token" {
			t.Errorf("Expected token header, got %q", auth)
		}

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"count":3,"next":null,"results":[{"id":3,"task_id":7,"type":"annotation","stage":"acceptance"}]}`)
			return
		}
		fmt.Fprintf(w, `{"count":3,"next":"%s/api/jobs?task_id=7&page=2","results":[
			{"id":1,"task_id":7,"type":"annotation","stage":"annotation"},
			{"id":2,"task_id":7,"type":"ground_truth","stage":"acceptance"}
		]}`, server.URL)
	}))
	defer server.Close()

	jobs, err := newTestClient(server.URL).Jobs(context.Background(), 7)
	if err != nil {
		t.Fatalf("Jobs failed: %v", err)
	}

	if len(jobs) != 3 {
		t.Fatalf("Expected 3 jobs across pages, got %d", len(jobs))
	}
	if jobs[2].ID != 3 || jobs[2].Stage != model.JobStageAcceptance {
		t.Errorf("Unexpected last job: %+v", jobs[2])
	}
}

func TestClient_ConsensusReports(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/consensus/reports" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":1,"next":null,"results":[
			{"id":42,"job_id":5,"task_id":7,"consensus_score":0.95,
			 "assignee":{"id":1,"username":"alice"},
			 "summary":{"frame_count":10,"conflict_count":2,"conflicts_by_type":{"mismatching_label":2}}}
		]}`)
	}))
	defer server.Close()

	reports, err := newTestClient(server.URL).ConsensusReports(context.Background(), 7)
	if err != nil {
		t.Fatalf("ConsensusReports failed: %v", err)
	}

	if len(reports) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(reports))
	}
	report := reports[0]
	if report.ID != 42 || report.JobID != 5 {
		t.Errorf("Unexpected report identity: %+v", report)
	}
	if report.ConsensusScore == nil || *report.ConsensusScore != 0.95 {
		t.Errorf("Expected score 0.95, got %v", report.ConsensusScore)
	}
	if report.Summary.ConflictsByType["mismatching_label"] != 2 {
		t.Errorf("Expected conflict breakdown to decode, got %+v", report.Summary)
	}
}

func TestClient_ConsensusSettings_None(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":0,"results":[]}`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ConsensusSettings(context.Background(), 7)
	if !errors.Is(err, ErrNoSettings) {
		t.Errorf("Expected ErrNoSettings, got %v", err)
	}
}

func TestClient_ConsensusSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":1,"results":[
			{"id":3,"task_id":7,"iou_threshold":0.4,"agreement_score_threshold":0.8,
			 "sigma":0.1,"line_thickness":0.01,"quorum":2}
		]}`)
	}))
	defer server.Close()

	settings, err := newTestClient(server.URL).ConsensusSettings(context.Background(), 7)
	if err != nil {
		t.Fatalf("ConsensusSettings failed: %v", err)
	}

	if settings.ID != 3 || settings.IoUThreshold != 0.4 || settings.Quorum != 2 {
		t.Errorf("Unexpected settings: %+v", settings)
	}
}

func TestClient_UpdateConsensusSettings_SingleRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Method != http.MethodPatch {
			t.Errorf("Expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/api/consensus/settings/3" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var update model.ConsensusSettingsUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			t.Fatalf("Failed to decode update body: %v", err)
		}
		if update.IoUThreshold != 0.5 || update.Quorum != 3 {
			t.Errorf("Unexpected update payload: %+v", update)
		}

		// Server normalizes sigma; the client must take this as canonical
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":3,"task_id":7,"iou_threshold":0.5,"agreement_score_threshold":0.8,
			"sigma":0.05,"line_thickness":0.01,"quorum":3}`)
	}))
	defer server.Close()

	update := model.ConsensusSettingsUpdate{
		IoUThreshold:            0.5,
		AgreementScoreThreshold: 0.8,
		Sigma:                   0.01,
		LineThickness:           0.01,
		Quorum:                  3,
	}
	settings, err := newTestClient(server.URL).UpdateConsensusSettings(context.Background(), 3, update)
	if err != nil {
		t.Fatalf("UpdateConsensusSettings failed: %v", err)
	}

	if requests != 1 {
		t.Errorf("Expected exactly 1 request, got %d", requests)
	}
	if settings.Sigma != 0.05 {
		t.Errorf("Expected server-normalized sigma 0.05, got %v", settings.Sigma)
	}
}

func TestClient_ConfigureTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("Expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/api/tasks/7" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var cfg model.ConsensusConfiguration
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			t.Fatalf("Failed to decode configuration body: %v", err)
		}
		if cfg.ConsensusJobPerSegment != 2 || cfg.AgreementScoreThreshold != 0.7 {
			t.Errorf("Unexpected configuration payload: %+v", cfg)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := model.ConsensusConfiguration{ConsensusJobPerSegment: 2, AgreementScoreThreshold: 0.7}
	if err := newTestClient(server.URL).ConfigureTask(context.Background(), 7, cfg); err != nil {
		t.Fatalf("ConfigureTask failed: %v", err)
	}
}

func TestClient_CreateMerge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/consensus/merges" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var body map[string]int
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode merge body: %v", err)
		}
		if body["task_id"] != 7 {
			t.Errorf("Expected task_id 7, got %v", body)
		}

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	if err := newTestClient(server.URL).CreateMerge(context.Background(), 7); err != nil {
		t.Fatalf("CreateMerge failed: %v", err)
	}
}

func TestClient_ReportData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/consensus/reports/42/data" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"job_id":5}`)
	}))
	defer server.Close()

	data, err := newTestClient(server.URL).ReportData(context.Background(), 42)
	if err != nil {
		t.Fatalf("ReportData failed: %v", err)
	}
	if string(data) != `{"job_id":5}` {
		t.Errorf("Unexpected report data %q", string(data))
	}
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"quorum":["Ensure this value is less than or equal to 10."]}`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).UpdateConsensusSettings(context.Background(), 3, model.ConsensusSettingsUpdate{})
	if err == nil {
		t.Fatal("Expected an error for a 400 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", apiErr.Status)
	}
	if apiErr.Body == "" {
		t.Error("Expected the response body to be retained")
	}
}

func TestClient_WebURL(t *testing.T) {
	c := New("http://example.com/", "", time.Second, testLogger())

	if c.BaseURL() != "http://example.com" {
		t.Errorf("Expected trailing slash trimmed, got %s", c.BaseURL())
	}
	if got := c.WebURL(model.JobPath(7, 5)); got != "http://example.com/tasks/7/jobs/5" {
		t.Errorf("Unexpected web URL %s", got)
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Status: 500, Body: "internal error"}
	if err.Error() != "server returned status 500: internal error" {
		t.Errorf("Unexpected message %q", err.Error())
	}

	empty := &APIError{Status: 403}
	if empty.Error() != "server returned status 403" {
		t.Errorf("Unexpected message %q", empty.Error())
	}
}
