package model

import "math"

// ConsensusSettings represents a task's stored consensus parameters. The
// fractional fields live in [0,1] on the wire; the settings form edits them
// as integer percents and rescales on save.
type ConsensusSettings struct {
	ID                      int     `json:"id"`
	TaskID                  int     `json:"task_id"`
	IoUThreshold            float64 `json:"iou_threshold"`
	AgreementScoreThreshold float64 `json:"agreement_score_threshold"`
	Sigma                   float64 `json:"sigma"`
	LineThickness           float64 `json:"line_thickness"`
	Quorum                  int     `json:"quorum"`
}

// ConsensusSettingsUpdate carries the edited values of one save operation.
// The form builds one snapshot, the client sends it, and the server answers
// with a fresh canonical ConsensusSettings; the entity itself is never
// mutated in place.
type ConsensusSettingsUpdate struct {
	IoUThreshold            float64 `json:"iou_threshold"`
	AgreementScoreThreshold float64 `json:"agreement_score_threshold"`
	Sigma                   float64 `json:"sigma"`
	LineThickness           float64 `json:"line_thickness"`
	Quorum                  int     `json:"quorum"`
}

// UpdateFromPercents builds an update snapshot from form values. The four
// fractional fields arrive as integer percents, quorum is taken as is.
func UpdateFromPercents(iou, agreement, sigma, lineThickness, quorum int) ConsensusSettingsUpdate {
	return ConsensusSettingsUpdate{
		IoUThreshold:            FromPercent(iou),
		AgreementScoreThreshold: FromPercent(agreement),
		Sigma:                   FromPercent(sigma),
		LineThickness:           FromPercent(lineThickness),
		Quorum:                  quorum,
	}
}

// ToPercent converts a [0,1] fraction to an integer percent. Rounding is
// half away from zero, matching a precision=0 numeric input; values not
// representable as whole percents lose the extra digits here.
func ToPercent(v float64) int {
	return int(math.Round(v * 100))
}

// FromPercent converts an integer percent back to a fraction
func FromPercent(p int) float64 {
	return float64(p) / 100
}
