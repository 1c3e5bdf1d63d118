package model

import "fmt"

// JobType represents the kind of job a task segment is annotated by
type JobType string

const (
	// JobTypeAnnotation is a regular annotation job
	JobTypeAnnotation JobType = "annotation"

	// JobTypeGroundTruth is a hidden job holding reference annotations
	JobTypeGroundTruth JobType = "ground_truth"

	// JobTypeConsensusReplica is a sibling copy of an annotation job,
	// merged back into its parent during consensus
	JobTypeConsensusReplica JobType = "consensus_replica"
)

// String returns the string representation of JobType
func (jt JobType) String() string {
	return string(jt)
}

// JobStage represents the workflow stage a job is currently in
type JobStage string

const (
	// JobStageAnnotation means the job is being annotated
	JobStageAnnotation JobStage = "annotation"

	// JobStageValidation means the job is under review
	JobStageValidation JobStage = "validation"

	// JobStageAcceptance means the job passed review
	JobStageAcceptance JobStage = "acceptance"
)

// String returns the string representation of JobStage
func (js JobStage) String() string {
	return string(js)
}

// JobStages returns all workflow stages in their pipeline order. The stage
// filter offers exactly this set.
func JobStages() []JobStage {
	return []JobStage{JobStageAnnotation, JobStageValidation, JobStageAcceptance}
}

// Assignee identifies the user a job or report is attributed to
type Assignee struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Job represents a single annotation job of a task
type Job struct {
	ID       int       `json:"id"`
	TaskID   int       `json:"task_id"`
	Type     JobType   `json:"type"`
	Stage    JobStage  `json:"stage"`
	State    string    `json:"state"`
	Assignee *Assignee `json:"assignee"`
}

// IsAnnotation returns true for regular annotation jobs. Ground truth jobs
// and consensus replicas are hidden from the review table.
func (j Job) IsAnnotation() bool {
	return j.Type == JobTypeAnnotation
}

// JobPath returns the in-app navigation path for a job detail view
func JobPath(taskID, jobID int) string {
	return fmt.Sprintf("/tasks/%d/jobs/%d", taskID, jobID)
}
