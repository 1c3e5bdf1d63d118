package export

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// reportSchemaJSON describes the shape of a consensus report document as
// served by the report data endpoint. Archiving rejects documents that do
// not match, so a truncated or error-page response never lands on disk as
// a report file.
const reportSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["job_id", "task_id", "summary"],
  "properties": {
    "id": {"type": "integer"},
    "job_id": {"type": "integer"},
    "task_id": {"type": "integer"},
    "created_date": {"type": "string"},
    "target_last_updated": {"type": "string"},
    "consensus_score": {
      "type": ["number", "null"],
      "minimum": 0,
      "maximum": 1
    },
    "assignee": {
      "type": ["object", "null"],
      "properties": {
        "id": {"type": "integer"},
        "username": {"type": "string"}
      }
    },
    "summary": {
      "type": "object",
      "required": ["conflict_count"],
      "properties": {
        "frame_count": {"type": "integer", "minimum": 0},
        "conflict_count": {"type": "integer", "minimum": 0},
        "conflicts_by_type": {
          "type": "object",
          "additionalProperties": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

var reportSchema = jsonschema.MustCompileString("consensus_report.json", reportSchemaJSON)

// ValidateReportDocument checks a fetched report document against the
// report schema
func ValidateReportDocument(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal report: %w", err)
	}
	if err := reportSchema.Validate(v); err != nil {
		return fmt.Errorf("report does not match schema: %w", err)
	}
	return nil
}
