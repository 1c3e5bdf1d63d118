package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/annoq/consensus-review/internal/model"
)

// fakeSaver records update requests and returns a scripted response
type fakeSaver struct {
	calls      int
	settingsID int
	update     model.ConsensusSettingsUpdate

	canonical model.ConsensusSettings
	err       error
}

func (f *fakeSaver) UpdateConsensusSettings(_ context.Context, settingsID int, update model.ConsensusSettingsUpdate) (model.ConsensusSettings, error) {
	f.calls++
	f.settingsID = settingsID
	f.update = update
	if f.err != nil {
		return model.ConsensusSettings{}, f.err
	}
	return f.canonical, nil
}

func testConsensusSettings() *model.ConsensusSettings {
	return &model.ConsensusSettings{
		ID:                      7,
		TaskID:                  3,
		IoUThreshold:            0.4,
		AgreementScoreThreshold: 1.0,
		Sigma:                   0.1,
		LineThickness:           0.01,
		Quorum:                  2,
	}
}

func TestSettingsForm_NilSettings(t *testing.T) {
	test.NewApp()

	form := NewSettingsForm(nil, &fakeSaver{}, NewLocalization(), nil, nil)

	if form.Content() == nil {
		t.Fatal("Expected placeholder content for nil settings")
	}
	if err := form.Save(); !errors.Is(err, ErrFormNotReady) {
		t.Errorf("Expected ErrFormNotReady, got %v", err)
	}
}

func TestSettingsForm_SeedsPercentScaled(t *testing.T) {
	test.NewApp()

	form := NewSettingsForm(testConsensusSettings(), &fakeSaver{}, NewLocalization(), nil, nil)

	fields := []struct {
		name string
		text string
		want string
	}{
		{"iou", form.iouEntry.Text, "40"},
		{"agreement", form.agreementEntry.Text, "100"},
		{"sigma", form.sigmaEntry.Text, "10"},
		{"thickness", form.thicknessEntry.Text, "1"},
		{"quorum", form.quorumEntry.Text, "2"},
	}

	for _, field := range fields {
		if field.text != field.want {
			t.Errorf("Field %s: expected %q, got %q", field.name, field.want, field.text)
		}
	}
}

func TestSettingsForm_SaveSendsSingleRequest(t *testing.T) {
	test.NewApp()

	saver := &fakeSaver{
		canonical: model.ConsensusSettings{
			ID:                      7,
			TaskID:                  3,
			IoUThreshold:            0.55,
			AgreementScoreThreshold: 1.0,
			Sigma:                   0.1,
			LineThickness:           0.01,
			Quorum:                  2,
		},
	}

	var saved []model.ConsensusSettings
	var notices []string
	form := NewSettingsForm(testConsensusSettings(), saver, NewLocalization(),
		func(s model.ConsensusSettings) { saved = append(saved, s) },
		func(message string) { notices = append(notices, message) })

	form.iouEntry.SetText("55")

	if err := form.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if saver.calls != 1 {
		t.Fatalf("Expected exactly one persist call, got %d", saver.calls)
	}
	if saver.settingsID != 7 {
		t.Errorf("Expected settings ID 7, got %d", saver.settingsID)
	}
	if saver.update.IoUThreshold != 0.55 {
		t.Errorf("Expected descaled IoU threshold 0.55, got %f", saver.update.IoUThreshold)
	}
	if saver.update.AgreementScoreThreshold != 1.0 {
		t.Errorf("Expected agreement threshold 1.0, got %f", saver.update.AgreementScoreThreshold)
	}
	if saver.update.Quorum != 2 {
		t.Errorf("Expected quorum 2, got %d", saver.update.Quorum)
	}

	if len(saved) != 1 {
		t.Fatalf("Expected 1 onSaved call, got %d", len(saved))
	}
	if saved[0].IoUThreshold != 0.55 {
		t.Errorf("Expected canonical IoU threshold 0.55, got %f", saved[0].IoUThreshold)
	}

	if form.Saving() {
		t.Error("Saving must be cleared after a successful save")
	}

	if len(notices) == 0 {
		t.Fatal("Expected a success notification")
	}
	want := NewLocalization().GetText(KeySettingsSaved)
	if notices[len(notices)-1] != want {
		t.Errorf("Expected notification %q, got %q", want, notices[len(notices)-1])
	}
}

func TestSettingsForm_SaveFailure(t *testing.T) {
	test.NewApp()

	saver := &fakeSaver{err: errors.New("server unavailable")}

	var saved []model.ConsensusSettings
	var notices []string
	form := NewSettingsForm(testConsensusSettings(), saver, NewLocalization(),
		func(s model.ConsensusSettings) { saved = append(saved, s) },
		func(message string) { notices = append(notices, message) })

	err := form.Save()
	if err == nil {
		t.Fatal("Expected save error")
	}
	if !strings.Contains(err.Error(), "server unavailable") {
		t.Errorf("Expected error to carry the cause, got %v", err)
	}

	if len(saved) != 0 {
		t.Error("onSaved must not run after a failed save")
	}
	if form.Saving() {
		t.Error("Saving must be cleared after a failed save")
	}
	if len(notices) == 0 {
		t.Fatal("Expected a failure notification")
	}
	if !strings.Contains(notices[0], "server unavailable") {
		t.Errorf("Expected failure notification to carry the cause, got %q", notices[0])
	}
}

func TestSettingsForm_ValidationBlocksSave(t *testing.T) {
	test.NewApp()

	tests := []struct {
		name string
		edit func(*SettingsForm)
	}{
		{"quorum above maximum", func(f *SettingsForm) { f.quorumEntry.SetText("11") }},
		{"quorum required", func(f *SettingsForm) { f.quorumEntry.SetText("") }},
		{"iou required", func(f *SettingsForm) { f.iouEntry.SetText("") }},
		{"agreement above maximum", func(f *SettingsForm) { f.agreementEntry.SetText("101") }},
		{"sigma negative", func(f *SettingsForm) { f.sigmaEntry.SetText("-1") }},
		{"thickness above maximum", func(f *SettingsForm) { f.thicknessEntry.SetText("1001") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := &fakeSaver{}
			form := NewSettingsForm(testConsensusSettings(), saver, NewLocalization(), nil, nil)

			tt.edit(form)

			if err := form.Save(); err == nil {
				t.Fatal("Expected validation error")
			}
			if saver.calls != 0 {
				t.Errorf("Expected no persist call, got %d", saver.calls)
			}
		})
	}
}

func TestSettingsForm_LineThicknessAboveHundred(t *testing.T) {
	test.NewApp()

	saver := &fakeSaver{canonical: *testConsensusSettings()}
	form := NewSettingsForm(testConsensusSettings(), saver, NewLocalization(), nil, nil)

	form.thicknessEntry.SetText("250")

	if err := form.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saver.update.LineThickness != 2.5 {
		t.Errorf("Expected line thickness 2.5, got %f", saver.update.LineThickness)
	}
}
