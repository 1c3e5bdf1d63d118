package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2/widget"

	"github.com/annoq/consensus-review/internal/model"
	"github.com/annoq/consensus-review/internal/validate"
)

// ErrFormNotReady is returned when a form operation runs before the form
// widgets exist.
var ErrFormNotReady = errors.New("form is not initialized")

// ConfigForm edits the consensus configuration applied when consensus jobs
// are created for a task. Field values are validated on submit and handed to
// the caller as one immutable snapshot.
type ConfigForm struct {
	form *widget.Form

	jobsPerSegmentEntry *widget.Entry
	agreementEntry      *widget.Entry

	onSubmit func(model.ConsensusConfiguration) error
}

// NewConfigForm creates a consensus configuration form. onSubmit receives the
// validated configuration once per successful Submit call.
func NewConfigForm(localization *Localization, onSubmit func(model.ConsensusConfiguration) error) *ConfigForm {
	f := &ConfigForm{onSubmit: onSubmit}

	f.jobsPerSegmentEntry = widget.NewEntry()
	f.jobsPerSegmentEntry.SetText(strconv.Itoa(model.DefaultConsensusJobPerSegment))
	f.jobsPerSegmentEntry.Validator = validate.
		IntRange(model.ConsensusJobPerSegmentMin, model.ConsensusJobPerSegmentMax).
		Exclude(model.ConsensusJobPerSegmentExcluded).
		Validator()

	f.agreementEntry = widget.NewEntry()
	f.agreementEntry.SetText(strconv.Itoa(int(model.DefaultAgreementScoreThreshold)))
	f.agreementEntry.Validator = validate.
		Range(model.AgreementScoreThresholdMin, model.AgreementScoreThresholdMax).
		Validator()

	f.form = widget.NewForm(
		&widget.FormItem{Text: localization.GetText(KeyJobsPerSegment), Widget: f.jobsPerSegmentEntry},
		&widget.FormItem{Text: localization.GetText(KeyAgreementThreshold), Widget: f.agreementEntry},
	)

	return f
}

// Form returns the form widget for embedding into a dialog
func (f *ConfigForm) Form() *widget.Form {
	return f.form
}

// Submit validates every field and, when all pass, builds the configuration
// snapshot and invokes the onSubmit callback. The first validation failure is
// returned and no submission is attempted; field errors stay visible inline.
func (f *ConfigForm) Submit() error {
	if f.form == nil {
		return ErrFormNotReady
	}

	if err := f.jobsPerSegmentEntry.Validate(); err != nil {
		return fmt.Errorf("consensus jobs per segment: %w", err)
	}
	if err := f.agreementEntry.Validate(); err != nil {
		return fmt.Errorf("agreement score threshold: %w", err)
	}

	config := model.ConsensusConfiguration{
		ConsensusJobPerSegment:  model.DefaultConsensusJobPerSegment,
		AgreementScoreThreshold: model.DefaultAgreementScoreThreshold,
	}

	if text := strings.TrimSpace(f.jobsPerSegmentEntry.Text); text != "" {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("consensus jobs per segment: %w", err)
		}
		config.ConsensusJobPerSegment = int(v)
	}
	if text := strings.TrimSpace(f.agreementEntry.Text); text != "" {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("agreement score threshold: %w", err)
		}
		config.AgreementScoreThreshold = v
	}

	return f.onSubmit(config)
}

// ResetFields restores both fields to their initial values
func (f *ConfigForm) ResetFields() {
	if f.form == nil {
		return
	}
	f.jobsPerSegmentEntry.SetText(strconv.Itoa(model.DefaultConsensusJobPerSegment))
	f.agreementEntry.SetText(strconv.Itoa(int(model.DefaultAgreementScoreThreshold)))
}
