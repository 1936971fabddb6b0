package optimizer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMutateNeverKeepsGene(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ch := &Chromosome{genes: []int{0, 1, 2, 3, 0, 1, 2, 3, 0, 1}}
	before := ch.Genes()

	// With rate 1 every gene must change, and always stay a valid index.
	mutate(rng, ch, 1.0, 4)

	for i, gene := range ch.genes {
		require.NotEqual(t, before[i], gene, "gene %d was not reassigned", i)
		require.GreaterOrEqual(t, gene, 0)
		require.Less(t, gene, 4)
	}
}

func TestMutateRateZeroIsNoop(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ch := &Chromosome{genes: []int{0, 1, 2, 3}}
	before := ch.Genes()

	mutate(rng, ch, 0.0, 4)

	require.Equal(t, before, ch.genes)
}

func TestUniformCrossoverNoSwapCopiesParents(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p1 := &Chromosome{genes: []int{0, 0, 0, 0}}
	p2 := &Chromosome{genes: []int{1, 1, 1, 1}}

	c1, c2 := uniformCrossover(rng, p1, p2, 0.0)

	require.Equal(t, p1.genes, c1.genes)
	require.Equal(t, p2.genes, c2.genes)
}

func TestUniformCrossoverFullSwapExchangesParents(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p1 := &Chromosome{genes: []int{0, 0, 0, 0}}
	p2 := &Chromosome{genes: []int{1, 1, 1, 1}}

	c1, c2 := uniformCrossover(rng, p1, p2, 1.0)

	require.Equal(t, p2.genes, c1.genes)
	require.Equal(t, p1.genes, c2.genes)
}

func TestUniformCrossoverDoesNotMutateParents(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p1 := &Chromosome{genes: []int{0, 1, 0, 1}}
	p2 := &Chromosome{genes: []int{1, 0, 1, 0}}

	_, _ = uniformCrossover(rng, p1, p2, 0.5)

	require.Equal(t, []int{0, 1, 0, 1}, p1.genes)
	require.Equal(t, []int{1, 0, 1, 0}, p2.genes)
}

func TestTournamentPicksLowestObjective(t *testing.T) {
	e := &Engine{
		params: &Parameters{TournamentSize: 32},
		rng:    rand.New(rand.NewSource(1)),
	}

	pop := []*Chromosome{
		{genes: []int{0}, objective: 9},
		{genes: []int{1}, objective: 3},
		{genes: []int{2}, objective: 7},
		{genes: []int{3}, objective: 1},
	}

	// 32 draws over 4 chromosomes hit the global best for this seed.
	winner := e.tournament(pop)
	require.Equal(t, 1, winner.objective)
}
