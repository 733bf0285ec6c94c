package telemetry

import "time"

type EventType string

const (
	EventCommandExecuted EventType = "command_executed"
	EventCommandRejected EventType = "command_rejected"
	EventBuildCompleted  EventType = "build_completed"
	EventTurnEnded       EventType = "turn_ended"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
