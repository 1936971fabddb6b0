package optimizer

import "math/rand"

// Per-gene swap probability of the uniform crossover. The crossover rate
// decides whether a pair is crossed at all; this decides how much.
const swapProbability = 0.5

// tournament draws k chromosomes uniformly at random with replacement and
// returns the one with the lowest objective. Ties go to the first drawn, so
// the outcome is fully determined by the draw order.
func (e *Engine) tournament(pop []*Chromosome) *Chromosome {
	winner := pop[e.rng.Intn(len(pop))]
	for i := 1; i < e.params.TournamentSize; i++ {
		candidate := pop[e.rng.Intn(len(pop))]
		if candidate.objective < winner.objective {
			winner = candidate
		}
	}
	return winner
}

// uniformCrossover produces two children from two parents. At each position,
// with probability swapProb, the children take the other parent's gene;
// otherwise each keeps its own parent's gene.
func uniformCrossover(rng *rand.Rand, p1, p2 *Chromosome, swapProb float64) (*Chromosome, *Chromosome) {
	c1 := make([]int, len(p1.genes))
	c2 := make([]int, len(p2.genes))

	for i := range p1.genes {
		if rng.Float64() < swapProb {
			c1[i] = p2.genes[i]
			c2[i] = p1.genes[i]
		} else {
			c1[i] = p1.genes[i]
			c2[i] = p2.genes[i]
		}
	}

	return &Chromosome{genes: c1}, &Chromosome{genes: c2}
}

// mutate reassigns each gene with probability rate to a worker chosen
// uniformly among the other workerCount-1 indices. A mutation is never a
// no-op reassignment to the current worker.
func mutate(rng *rand.Rand, ch *Chromosome, rate float64, workerCount int) {
	for i := range ch.genes {
		if rng.Float64() >= rate {
			continue
		}

		next := rng.Intn(workerCount - 1)
		if next >= ch.genes[i] {
			next++
		}
		ch.genes[i] = next
	}
}
