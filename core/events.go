package core

import "time"

// EventType names a workflow change published to downstream consumers
type EventType string

const (
	EventAssignmentCreated EventType = "assignment.created"
	EventAssignmentUpdated EventType = "assignment.updated"
	EventAssignmentDeleted EventType = "assignment.deleted"
	EventSubmissionCreated EventType = "submission.created"
	EventSubmissionGraded  EventType = "submission.graded"
)

// Event describes a completed storage change
type Event struct {
	Type       EventType `json:"type"`
	RecordID   string    `json:"record_id"`
	Actor      string    `json:"actor,omitempty"` // email of the authenticated caller, if any
	OccurredAt time.Time `json:"occurred_at"`
}
