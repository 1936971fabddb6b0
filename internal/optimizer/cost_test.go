package optimizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkerCost(t *testing.T) {
	require.Equal(t, 5, workerCost(2, []int{4, 7}))  // floor(11 / 2)
	require.Equal(t, 11, workerCost(1, []int{4, 7}))
	require.Equal(t, 0, workerCost(3, nil))
}

func TestWorkerCostZeroRateFallsBackToSum(t *testing.T) {
	require.Equal(t, 11, workerCost(0, []int{4, 7}))
}

func TestTotalCostOrderInvariant(t *testing.T) {
	rates := []int{2, 3}

	a := totalCost(rates, [][]int{{4, 7, 1}, {5, 2}})
	b := totalCost(rates, [][]int{{1, 4, 7}, {2, 5}})

	require.Equal(t, a, b)
}

func TestDecodePartitionsEveryJob(t *testing.T) {
	jobs := []int{10, 20, 30, 40, 50}
	genes := []int{2, 0, 2, 1, 0}

	lists := decode(genes, jobs, 3)

	require.Len(t, lists, 3)
	require.Equal(t, []int{20, 50}, lists[0])
	require.Equal(t, []int{40}, lists[1])
	require.Equal(t, []int{10, 30}, lists[2])

	total := 0
	for _, list := range lists {
		total += len(list)
	}
	require.Equal(t, len(jobs), total)
}

func TestDecodeEmptyChromosome(t *testing.T) {
	lists := decode(nil, nil, 4)

	require.Len(t, lists, 4)
	for _, list := range lists {
		require.Empty(t, list)
	}
}

func TestEvaluate(t *testing.T) {
	jobs := []int{6, 4}
	rates := []int{2, 5}

	// worker 0 carries job 0 (6/2 = 3), worker 1 carries job 1 (4/5 = 0).
	require.Equal(t, 3, evaluate([]int{0, 1}, jobs, rates))
	// everything on worker 1: floor(10 / 5) = 2.
	require.Equal(t, 2, evaluate([]int{1, 1}, jobs, rates))
}
