package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJobsStayWithinBounds(t *testing.T) {
	jobs := New(1).Jobs(200, 50)

	require.Len(t, jobs, 200)
	for _, size := range jobs {
		require.GreaterOrEqual(t, size, 0)
		require.LessOrEqual(t, size, 50)
	}
}

func TestWorkersStayWithinBounds(t *testing.T) {
	workers := New(1).Workers(100, 2, 5)

	require.Len(t, workers, 100)
	for _, w := range workers {
		require.GreaterOrEqual(t, w.Rate, 2)
		require.LessOrEqual(t, w.Rate, 5)
	}
}

func TestSameSeedSameDataset(t *testing.T) {
	first := New(42)
	second := New(42)

	require.Equal(t, first.Jobs(40, 100), second.Jobs(40, 100))
	require.Equal(t, first.Workers(6, 1, 5), second.Workers(6, 1, 5))
}

func TestSingleValueRange(t *testing.T) {
	for _, w := range New(3).Workers(10, 4, 4) {
		require.Equal(t, 4, w.Rate)
	}
}
