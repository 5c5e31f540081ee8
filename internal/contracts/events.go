package contracts

import (
	"encoding/json"
	"time"
)

const (
	EventTypeSubmissionReceived = "peer_review.submission_received"
	EventTypeGradesCreated      = "peer_review.grades_created"
)

type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	PartitionKey  string          `json:"partition_key"`
	SourceService string          `json:"source_service"`
	SchemaVersion string          `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

type SubmissionReceivedPayload struct {
	CourseID       string `json:"course_id"`
	AssignmentID   int    `json:"assignment_id"`
	ReviewerTeamID string `json:"reviewer_team_id"`
	RevieweeTeamID string `json:"reviewee_team_id,omitempty"`
	SubmissionName string `json:"submission_name"`
	Path           string `json:"path"`
}

type GradesCreatedPayload struct {
	CourseID     string `json:"course_id"`
	AssignmentID int    `json:"assignment_id"`
	RecordCount  int    `json:"record_count"`
	AnswerPath   string `json:"answer_path"`
}
