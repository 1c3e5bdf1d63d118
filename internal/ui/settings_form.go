package ui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/annoq/consensus-review/internal/model"
	"github.com/annoq/consensus-review/internal/validate"
)

// Input bounds for the settings form. The four threshold fields are edited as
// integer percents; line thickness may exceed one frame-relative unit.
const (
	QuorumInputMin = 0
	QuorumInputMax = 10

	PercentInputMin = 0
	PercentInputMax = 100

	LineThicknessInputMax = 1000
)

// SettingsSaver persists one consensus settings update and returns the
// canonical server snapshot.
type SettingsSaver interface {
	UpdateConsensusSettings(ctx context.Context, settingsID int, update model.ConsensusSettingsUpdate) (model.ConsensusSettings, error)
}

// SettingsForm edits a task's consensus settings. Threshold fields are shown
// percent-scaled and rescaled back on save. Saving builds an update snapshot,
// sends it once, and adopts the returned canonical settings.
type SettingsForm struct {
	settings *model.ConsensusSettings

	iouEntry       *widget.Entry
	agreementEntry *widget.Entry
	sigmaEntry     *widget.Entry
	thicknessEntry *widget.Entry
	quorumEntry    *widget.Entry

	form       *widget.Form
	saveButton *widget.Button
	spinner    *widget.ProgressBarInfinite
	content    fyne.CanvasObject

	saving bool

	saver        SettingsSaver
	localization *Localization
	onSaved      func(model.ConsensusSettings)
	onNotify     func(message string)
}

// NewSettingsForm creates a settings form seeded from the given settings.
// A nil settings renders a fixed placeholder with no editable fields.
// onSaved receives the server-confirmed snapshot once per successful save.
func NewSettingsForm(settings *model.ConsensusSettings, saver SettingsSaver, localization *Localization,
	onSaved func(model.ConsensusSettings), onNotify func(string)) *SettingsForm {
	f := &SettingsForm{
		settings:     settings,
		saver:        saver,
		localization: localization,
		onSaved:      onSaved,
		onNotify:     onNotify,
	}

	if settings == nil {
		f.content = container.NewCenter(widget.NewLabel(localization.GetText(KeyNoSettings)))
		return f
	}

	f.iouEntry = newPercentEntry(PercentInputMax)
	f.agreementEntry = newPercentEntry(PercentInputMax)
	f.sigmaEntry = newPercentEntry(PercentInputMax)
	f.thicknessEntry = newPercentEntry(LineThicknessInputMax)

	f.quorumEntry = widget.NewEntry()
	f.quorumEntry.Validator = validate.Required("required",
		validate.IntRange(QuorumInputMin, QuorumInputMax).Validator())

	f.seedFields(*settings)

	f.spinner = widget.NewProgressBarInfinite()
	f.spinner.Stop()
	f.spinner.Hide()

	f.saveButton = widget.NewButton(localization.GetText(KeySave), f.onSaveTapped)
	f.saveButton.Importance = widget.HighImportance

	f.form = widget.NewForm(
		&widget.FormItem{Text: localization.GetText(KeyIoUThreshold), Widget: f.iouEntry},
		&widget.FormItem{Text: localization.GetText(KeyAgreementThreshold) + " (%)", Widget: f.agreementEntry},
		&widget.FormItem{Text: localization.GetText(KeySigma), Widget: f.sigmaEntry},
		&widget.FormItem{Text: localization.GetText(KeyLineThickness), Widget: f.thicknessEntry},
		&widget.FormItem{Text: localization.GetText(KeyQuorum), Widget: f.quorumEntry},
	)

	f.content = container.NewVBox(
		f.form,
		f.spinner,
		container.NewHBox(layout.NewSpacer(), f.saveButton),
	)

	return f
}

// newPercentEntry creates a required integer entry bounded by [0,max]
func newPercentEntry(max int) *widget.Entry {
	entry := widget.NewEntry()
	entry.Validator = validate.Required("required",
		validate.IntRange(PercentInputMin, max).Validator())
	return entry
}

// Content returns the root canvas object for embedding into a dialog
func (f *SettingsForm) Content() fyne.CanvasObject {
	return f.content
}

// Saving reports whether a persist call is in flight
func (f *SettingsForm) Saving() bool {
	return f.saving
}

// seedFields fills the entries from a settings snapshot, percent-scaled
// except quorum
func (f *SettingsForm) seedFields(settings model.ConsensusSettings) {
	f.iouEntry.SetText(strconv.Itoa(model.ToPercent(settings.IoUThreshold)))
	f.agreementEntry.SetText(strconv.Itoa(model.ToPercent(settings.AgreementScoreThreshold)))
	f.sigmaEntry.SetText(strconv.Itoa(model.ToPercent(settings.Sigma)))
	f.thicknessEntry.SetText(strconv.Itoa(model.ToPercent(settings.LineThickness)))
	f.quorumEntry.SetText(strconv.Itoa(settings.Quorum))
}

// onSaveTapped starts the save in the background so the persist round trip
// does not block the UI thread
func (f *SettingsForm) onSaveTapped() {
	if f.saving {
		return
	}
	go func() {
		if err := f.Save(); err != nil {
			log.Printf("Consensus settings save failed: %v", err)
		}
	}()
}

// Save validates all fields, persists the descaled values as one update
// request, and adopts the canonical settings the server returns. A persist
// failure is shown as a notification and returned to the caller; the saving
// indicator is cleared on every exit path.
func (f *SettingsForm) Save() error {
	if f.form == nil {
		return ErrFormNotReady
	}

	fields := []struct {
		name  string
		entry *widget.Entry
	}{
		{"iou threshold", f.iouEntry},
		{"agreement score threshold", f.agreementEntry},
		{"sigma", f.sigmaEntry},
		{"line thickness", f.thicknessEntry},
		{"quorum", f.quorumEntry},
	}
	for _, field := range fields {
		if err := field.entry.Validate(); err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
	}

	iou, err := parseIntField(f.iouEntry.Text)
	if err != nil {
		return fmt.Errorf("iou threshold: %w", err)
	}
	agreement, err := parseIntField(f.agreementEntry.Text)
	if err != nil {
		return fmt.Errorf("agreement score threshold: %w", err)
	}
	sigma, err := parseIntField(f.sigmaEntry.Text)
	if err != nil {
		return fmt.Errorf("sigma: %w", err)
	}
	thickness, err := parseIntField(f.thicknessEntry.Text)
	if err != nil {
		return fmt.Errorf("line thickness: %w", err)
	}
	quorum, err := parseIntField(f.quorumEntry.Text)
	if err != nil {
		return fmt.Errorf("quorum: %w", err)
	}

	update := model.UpdateFromPercents(iou, agreement, sigma, thickness, quorum)

	f.setSaving(true)
	defer f.setSaving(false)

	canonical, err := f.saver.UpdateConsensusSettings(context.Background(), f.settings.ID, update)
	if err != nil {
		f.notify(f.localization.GetText(KeySaveFailed) + ": " + err.Error())
		return fmt.Errorf("save consensus settings: %w", err)
	}

	f.settings = &canonical
	fyne.Do(func() {
		f.seedFields(canonical)
	})

	if f.onSaved != nil {
		f.onSaved(canonical)
	}
	f.notify(f.localization.GetText(KeySettingsSaved))

	return nil
}

// setSaving flips the saving state and the widgets bound to it
func (f *SettingsForm) setSaving(saving bool) {
	f.saving = saving
	fyne.Do(func() {
		if saving {
			f.saveButton.Disable()
			f.spinner.Show()
			f.spinner.Start()
		} else {
			f.spinner.Stop()
			f.spinner.Hide()
			f.saveButton.Enable()
		}
	})
}

// notify forwards a message to the notification callback if set
func (f *SettingsForm) notify(message string) {
	if f.onNotify != nil {
		f.onNotify(message)
	}
}

// parseIntField parses a validated integer entry value
func parseIntField(text string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
