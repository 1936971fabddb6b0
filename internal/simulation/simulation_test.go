package simulation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingleJobDrainsAtRate(t *testing.T) {
	workers := NewWorkers([]int{3}, [][]int{{10}})
	history := Run(workers, 4)

	require.Len(t, history, 4)

	// 10 -> 7 -> 4 -> 1 -> popped.
	require.Equal(t, 7, history[0].WorkRemaining)
	require.Equal(t, 4, history[1].WorkRemaining)
	require.Equal(t, 1, history[2].WorkRemaining)
	require.Equal(t, 0, history[3].WorkRemaining)

	require.Equal(t, 1, history[2].JobsRemaining)
	require.Equal(t, 0, history[3].JobsRemaining)
	require.Equal(t, 0, history[2].CompletedThisStep)
	require.Equal(t, 1, history[3].CompletedThisStep)
}

func TestQueueIsFIFO(t *testing.T) {
	// The second job does not progress until the first one is done.
	workers := NewWorkers([]int{5}, [][]int{{5, 5}})
	history := Run(workers, 2)

	require.Equal(t, []int{1}, history[0].QueueLengths)
	require.Equal(t, 5, history[0].WorkRemaining)
	require.Equal(t, []int{0}, history[1].QueueLengths)
	require.Equal(t, 0, history[1].WorkRemaining)
}

func TestWorkersStepIndependently(t *testing.T) {
	workers := NewWorkers([]int{1, 4}, [][]int{{2}, {8, 8}})
	history := Run(workers, 2)

	require.Equal(t, []int{1, 2}, history[0].QueueLengths)
	require.Equal(t, 0, history[0].CompletedThisStep)
	require.Equal(t, []int{0, 1}, history[1].QueueLengths)
	require.Equal(t, 2, history[1].CompletedThisStep)
}

func TestRunKeepsGoingAfterQueuesDrain(t *testing.T) {
	workers := NewWorkers([]int{5}, [][]int{{3}})
	history := Run(workers, 5)

	require.Len(t, history, 5)
	for _, rec := range history[1:] {
		require.Equal(t, 0, rec.JobsRemaining)
		require.Equal(t, 0, rec.WorkRemaining)
		require.Equal(t, 0, rec.CompletedThisStep)
	}
}

func TestZeroRateWorkerNeverFinishes(t *testing.T) {
	workers := NewWorkers([]int{0}, [][]int{{4}})
	history := Run(workers, 10)

	for _, rec := range history {
		require.Equal(t, 1, rec.JobsRemaining)
		require.Equal(t, 4, rec.WorkRemaining)
	}
}

func TestNewWorkersCopiesAssignment(t *testing.T) {
	assignment := [][]int{{6, 2}, {}}
	workers := NewWorkers([]int{2, 3}, assignment)

	Run(workers, 3)

	require.Equal(t, [][]int{{6, 2}, {}}, assignment)
}

func TestNewWorkersToleratesShortAssignment(t *testing.T) {
	workers := NewWorkers([]int{2, 3, 1}, [][]int{{4}})

	require.Len(t, workers, 3)
	require.Empty(t, workers[1].Queue)
	require.Empty(t, workers[2].Queue)
}
