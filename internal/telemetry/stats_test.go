package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_RecordAndFilter(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventCommandExecuted, EventMetadata{"input": "status"}))
	require.NoError(t, repo.RecordEvent(EventTurnEnded, EventMetadata{"turn": 1}))

	all, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 2, all[1].ID)

	turns, err := repo.GetEvents(time.Time{}, []EventType{EventTurnEnded})
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, EventTurnEnded, turns[0].Type)

	future, err := repo.GetEvents(time.Now().Add(time.Hour), nil)
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestMemoryRepository_Clear(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventCommandExecuted, nil))
	require.NoError(t, repo.Clear())

	all, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCalculateStats(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventBuildCompleted, EventMetadata{"building": "mineral_mine", "planet": "alpha"}))
	require.NoError(t, repo.RecordEvent(EventBuildCompleted, EventMetadata{"building": "mineral_mine", "planet": "beta"}))
	require.NoError(t, repo.RecordEvent(EventBuildCompleted, EventMetadata{"building": "mineral_silo", "planet": "alpha"}))
	require.NoError(t, repo.RecordEvent(EventTurnEnded, EventMetadata{"turn": 1}))
	require.NoError(t, repo.RecordEvent(EventTurnEnded, EventMetadata{"turn": 2}))
	require.NoError(t, repo.RecordEvent(EventCommandRejected, EventMetadata{"input": "launch"}))

	events, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)

	stats, err := CalculateStats(events, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.BuildsCompleted)
	assert.Equal(t, 2, stats.TurnsEnded)
	assert.Equal(t, 1, stats.CommandsRejected)
	assert.InDelta(t, 1.5, stats.BuildsPerTurn, 1e-9)
	assert.Equal(t, 2, stats.BuildsByType["mineral_mine"])
	assert.Equal(t, 1, stats.BuildsByType["mineral_silo"])
}

func TestCalculateStats_NoTurns(t *testing.T) {
	stats, err := CalculateStats(nil, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, stats.BuildsPerTurn)
	assert.Empty(t, stats.EventCounts)
}
