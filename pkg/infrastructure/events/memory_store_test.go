package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore()

	require.NoError(t, store.AppendEvent("run-1", NewPlanRunStartedEvent("run-1", "baseline", 6)))
	require.NoError(t, store.AppendEvent("run-1", NewPlanRunCompletedEvent("run-1", "baseline", 6, 0)))

	all, err := store.ReadEvents("run-1", 1)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, PlanRunStartedEvent, all[0].Type())
	assert.Equal(t, 1, all[0].Version())
	assert.Equal(t, PlanRunCompletedEvent, all[1].Type())
	assert.Equal(t, 2, all[1].Version())
	assert.Equal(t, "run-1", all[0].StreamID())

	started, ok := all[0].Payload().(PlanRunStarted)
	require.True(t, ok, "expected a PlanRunStarted payload")
	assert.Equal(t, "baseline", started.Scenario)
	assert.Equal(t, 6, started.Horizon)

	completed, ok := all[1].Payload().(PlanRunCompleted)
	require.True(t, ok, "expected a PlanRunCompleted payload")
	assert.Equal(t, 6, completed.Periods)
	assert.Equal(t, 0, completed.Warnings)
}

func TestInMemoryEventStore_ReadFromVersion(t *testing.T) {
	store := NewInMemoryEventStore()
	require.NoError(t, store.AppendEvent("run-1", NewPlanRunStartedEvent("run-1", "baseline", 6)))
	require.NoError(t, store.AppendEvent("run-1", NewPlanRunFailedEvent("run-1", "baseline", "no prices")))

	tail, err := store.ReadEvents("run-1", 2)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, PlanRunFailedEvent, tail[0].Type())

	beyond, err := store.ReadEvents("run-1", 5)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestInMemoryEventStore_UnknownStream(t *testing.T) {
	store := NewInMemoryEventStore()
	events, err := store.ReadEvents("missing", 1)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestInMemoryEventStore_ReadAllAcrossStreams(t *testing.T) {
	store := NewInMemoryEventStore()
	require.NoError(t, store.AppendEvent("run-1", NewPlanRunStartedEvent("run-1", "baseline", 6)))
	require.NoError(t, store.AppendEvent("run-2", NewPlanRunStartedEvent("run-2", "peak", 6)))
	require.NoError(t, store.AppendEvent("run-1", NewPlanRunCompletedEvent("run-1", "baseline", 6, 0)))

	all, err := store.ReadAllEvents(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "run-1", all[0].StreamID())
	assert.Equal(t, "run-2", all[1].StreamID())

	tail, err := store.ReadAllEvents(2)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, PlanRunCompletedEvent, tail[0].Type())
}
