package telemetry

import (
	"encoding/json"
	"time"
)

// Stats summarizes one play session for balance tuning.
type Stats struct {
	Period           string            `json:"period"`
	EventCounts      map[EventType]int `json:"event_counts"`
	CommandsExecuted int               `json:"commands_executed"`
	CommandsRejected int               `json:"commands_rejected"`
	BuildsCompleted  int               `json:"builds_completed"`
	TurnsEnded       int               `json:"turns_ended"`
	BuildsPerTurn    float64           `json:"builds_per_turn"`
	BuildsByType     map[string]int    `json:"builds_by_type"`
}

// CalculateStats computes session stats from events recorded since a cutoff.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:       since.Format("2006-01-02"),
		EventCounts:  make(map[EventType]int),
		BuildsByType: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventCommandExecuted:
			stats.CommandsExecuted++
		case EventCommandRejected:
			stats.CommandsRejected++
		case EventTurnEnded:
			stats.TurnsEnded++
		case EventBuildCompleted:
			stats.BuildsCompleted++
			if buildingType, ok := metadata["building"].(string); ok {
				stats.BuildsByType[buildingType]++
			}
		}
	}

	if stats.TurnsEnded > 0 {
		stats.BuildsPerTurn = float64(stats.BuildsCompleted) / float64(stats.TurnsEnded)
	}
	return stats, nil
}
