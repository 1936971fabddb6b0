package optimizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectiveStats(t *testing.T) {
	pop := []*Chromosome{
		{objective: 2},
		{objective: 4},
		{objective: 4},
		{objective: 6},
	}

	mean, std := objectiveStats(pop)
	require.InDelta(t, 4.0, mean, 1e-9)
	require.InDelta(t, 1.4142135, std, 1e-6)
}

func TestObjectiveStatsUniformPopulation(t *testing.T) {
	pop := []*Chromosome{{objective: 5}, {objective: 5}}

	mean, std := objectiveStats(pop)
	require.InDelta(t, 5.0, mean, 1e-9)
	require.Zero(t, std)
}

func TestDiversity(t *testing.T) {
	pop := []*Chromosome{
		{genes: []int{0, 1}},
		{genes: []int{0, 1}},
		{genes: []int{1, 0}},
		{genes: []int{1, 1}},
	}

	require.InDelta(t, 0.75, diversity(pop), 1e-9)
}

func TestLoadStdCountsIdleWorkers(t *testing.T) {
	// Worker 0 carries 6, workers 1 and 2 carry nothing.
	std := loadStd([]int{0, 0}, []int{4, 2}, 3)
	require.InDelta(t, 2.8284271, std, 1e-6)
}

func TestLoadStdBalancedIsZero(t *testing.T) {
	std := loadStd([]int{0, 1}, []int{5, 5}, 2)
	require.Zero(t, std)
}
