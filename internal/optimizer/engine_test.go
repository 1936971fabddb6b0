package optimizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validParams() *Parameters {
	return &Parameters{
		PopulationSize: 20,
		MaxGenerations: 30,
		CrossoverRate:  0.9,
		MutationRate:   0.05,
		EliteCount:     2,
		TournamentSize: 3,
	}
}

func TestNewRejectsInvalidParameters(t *testing.T) {
	jobs := []int{4, 7, 2}
	rates := []int{2, 3}

	tests := []struct {
		name   string
		mutate func(p *Parameters, jobs *[]int, rates *[]int)
	}{
		{"empty population", func(p *Parameters, _ *[]int, _ *[]int) { p.PopulationSize = 0 }},
		{"negative generations", func(p *Parameters, _ *[]int, _ *[]int) { p.MaxGenerations = -1 }},
		{"crossover rate above 1", func(p *Parameters, _ *[]int, _ *[]int) { p.CrossoverRate = 1.5 }},
		{"negative mutation rate", func(p *Parameters, _ *[]int, _ *[]int) { p.MutationRate = -0.1 }},
		{"elite larger than population", func(p *Parameters, _ *[]int, _ *[]int) { p.EliteCount = 21 }},
		{"empty tournament", func(p *Parameters, _ *[]int, _ *[]int) { p.TournamentSize = 0 }},
		{"tournament larger than population", func(p *Parameters, _ *[]int, _ *[]int) { p.TournamentSize = 21 }},
		{"single worker", func(_ *Parameters, _ *[]int, rates *[]int) { *rates = []int{5} }},
		{"negative rate", func(_ *Parameters, _ *[]int, rates *[]int) { *rates = []int{2, -1} }},
		{"negative job size", func(_ *Parameters, jobs *[]int, _ *[]int) { *jobs = []int{4, -7} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			j := append([]int(nil), jobs...)
			r := append([]int(nil), rates...)
			tt.mutate(p, &j, &r)

			engine, err := New(p, j, r, 1)
			require.Error(t, err)
			require.Nil(t, engine)
		})
	}
}

func TestRunIsReproducible(t *testing.T) {
	jobs := []int{13, 4, 28, 9, 17, 6, 22, 11}
	rates := []int{1, 3, 2}

	first, err := New(validParams(), jobs, rates, 42)
	require.NoError(t, err)
	second, err := New(validParams(), jobs, rates, 42)
	require.NoError(t, err)

	require.Equal(t, first.Run(), second.Run())
}

func TestRunBestNeverRegresses(t *testing.T) {
	jobs := []int{13, 4, 28, 9, 17, 6, 22, 11, 3, 19}
	rates := []int{1, 3, 2, 4}

	engine, err := New(validParams(), jobs, rates, 7)
	require.NoError(t, err)
	result := engine.Run()

	require.Len(t, result.History, 30)

	// Elites survive every generation unchanged, so the per-generation best
	// can only improve or hold.
	for i := 1; i < len(result.History); i++ {
		require.LessOrEqual(t, result.History[i].Best, result.History[i-1].Best)
	}
	require.Equal(t, result.History[len(result.History)-1].Best, result.Objective)
}

func TestRunHistoryStatsAreSane(t *testing.T) {
	jobs := []int{13, 4, 28, 9, 17}
	rates := []int{2, 3}

	engine, err := New(validParams(), jobs, rates, 3)
	require.NoError(t, err)
	result := engine.Run()

	for _, rec := range result.History {
		require.GreaterOrEqual(t, rec.Mean, float64(rec.Best))
		require.GreaterOrEqual(t, rec.Std, 0.0)
		require.Greater(t, rec.Diversity, 0.0)
		require.LessOrEqual(t, rec.Diversity, 1.0)
		require.GreaterOrEqual(t, rec.BestLoadStd, 0.0)
	}
}

func TestRunAssignmentCoversEveryJob(t *testing.T) {
	jobs := []int{13, 4, 28, 9, 17, 6}
	rates := []int{1, 3, 2}

	engine, err := New(validParams(), jobs, rates, 5)
	require.NoError(t, err)
	result := engine.Run()

	require.Len(t, result.Assignment, len(rates))
	assigned := 0
	for _, list := range result.Assignment {
		assigned += len(list)
	}
	require.Equal(t, len(jobs), assigned)
	require.Equal(t, result.Objective, totalCost(rates, result.Assignment))
}

func TestRunWithoutJobs(t *testing.T) {
	engine, err := New(validParams(), nil, []int{2, 3}, 1)
	require.NoError(t, err)
	result := engine.Run()

	require.Equal(t, 0, result.Objective)
	require.Equal(t, [][]int{{}, {}}, result.Assignment)
}

func TestRunZeroGenerations(t *testing.T) {
	p := validParams()
	p.MaxGenerations = 0

	engine, err := New(p, []int{13, 4, 28}, []int{2, 3}, 1)
	require.NoError(t, err)
	result := engine.Run()

	require.Empty(t, result.History)
	require.Equal(t, result.Objective, totalCost([]int{2, 3}, result.Assignment))
}
