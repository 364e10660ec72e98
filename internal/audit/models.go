// Package audit captures who touched which medical record, when, and from
// where. Events are emitted from domain logic and fanned out to a sink
// (Kafka in production, memory in tests) by a background worker.
package audit

import "time"

// Event is one access or mutation of a medical record.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	SubjectID string    `json:"subject_id"`
	Action    string    `json:"action"` // "create", "read", "list", "update", "delete"
	RecordID  string    `json:"record_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Device    string    `json:"device,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}
