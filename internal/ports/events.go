package ports

import "time"

type EvaluationEventKind string

const (
	EvaluationCreated EvaluationEventKind = "created"
	EvaluationUpdated EvaluationEventKind = "updated"
)

type EvaluationEvent struct {
	Kind         EvaluationEventKind
	EvaluationID string
	EvaluatorID  string
	MediaID      string
	At           time.Time
}
