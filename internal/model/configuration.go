package model

// Consensus configuration field bounds. The excluded value 1 exists because
// a single consensus replica can never disagree with itself, so the server
// rejects it; 0 disables consensus replication entirely.
const (
	ConsensusJobPerSegmentMin      = 0
	ConsensusJobPerSegmentMax      = 10
	ConsensusJobPerSegmentExcluded = 1

	AgreementScoreThresholdMin = 0.0
	AgreementScoreThresholdMax = 1.0
)

// Configuration form initial values
const (
	DefaultConsensusJobPerSegment  = 0
	DefaultAgreementScoreThreshold = 0.0
)

// ConsensusConfiguration is the immutable snapshot produced by one submit of
// the consensus configuration form. It is applied to a task as a whole, not
// to an individual settings entity; whether its agreement threshold and the
// settings-entity field of the same name ever converge is a server concern.
type ConsensusConfiguration struct {
	ConsensusJobPerSegment  int     `json:"consensus_jobs_per_segment"`
	AgreementScoreThreshold float64 `json:"agreement_score_threshold"`
}
