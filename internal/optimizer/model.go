package optimizer

import "github.com/optiwork-dev/optiwork/backend/internal/domain"

// Chromosome encodes one candidate assignment: gene i is the index of the
// worker that job i is assigned to.
type Chromosome struct {
	genes     []int
	objective int
}

// Genes returns a copy of the gene sequence.
func (c *Chromosome) Genes() []int {
	genes := make([]int, len(c.genes))
	copy(genes, c.genes)
	return genes
}

// Objective is the cost of the chromosome; lower is better.
func (c *Chromosome) Objective() int {
	return c.objective
}

func (c *Chromosome) clone() *Chromosome {
	genes := make([]int, len(c.genes))
	copy(genes, c.genes)
	return &Chromosome{genes: genes, objective: c.objective}
}

// Parameters of the genetic algorithm.
type Parameters struct {
	PopulationSize int     // number of chromosomes per generation
	MaxGenerations int     // evolution iterations after the initial evaluation
	CrossoverRate  float64 // per-pair probability that crossover is applied
	MutationRate   float64 // per-gene reassignment probability
	EliteCount     int     // chromosomes carried over unchanged
	TournamentSize int     // candidates drawn per tournament
}

// Result is what a finished run hands back to the caller: the decoded best
// assignment (worker index -> job sizes), its objective value and the full
// per-generation history.
type Result struct {
	Assignment [][]int
	Objective  int
	History    []domain.GenerationRecord
}
