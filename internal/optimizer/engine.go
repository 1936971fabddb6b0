package optimizer

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/optiwork-dev/optiwork/backend/internal/domain"
)

// Engine owns the population and drives the evolution. All randomness is
// drawn from a single seeded generator in a fixed order (initialization,
// then per pair: two tournaments, crossover gate, crossover swaps, mutation),
// so a run is reproducible from its parameters and seed.
type Engine struct {
	params *Parameters
	jobs   []int
	rates  []int
	rng    *rand.Rand
}

// New validates the configuration and builds an engine. Invalid parameters
// are rejected here instead of producing silent nonsense later: an empty
// tournament, an oversized elite or a single worker (which leaves mutation
// with no alternative index to pick) are all construction errors.
func New(params *Parameters, jobs []int, rates []int, seed int64) (*Engine, error) {
	if params.PopulationSize < 1 {
		return nil, fmt.Errorf("population size must be at least 1, got %d", params.PopulationSize)
	}
	if params.MaxGenerations < 0 {
		return nil, fmt.Errorf("max generations must not be negative, got %d", params.MaxGenerations)
	}
	if params.CrossoverRate < 0 || params.CrossoverRate > 1 {
		return nil, fmt.Errorf("crossover rate must be in [0, 1], got %g", params.CrossoverRate)
	}
	if params.MutationRate < 0 || params.MutationRate > 1 {
		return nil, fmt.Errorf("mutation rate must be in [0, 1], got %g", params.MutationRate)
	}
	if params.EliteCount < 0 || params.EliteCount > params.PopulationSize {
		return nil, fmt.Errorf("elite count must be in [0, %d], got %d", params.PopulationSize, params.EliteCount)
	}
	if params.TournamentSize < 1 || params.TournamentSize > params.PopulationSize {
		return nil, fmt.Errorf("tournament size must be in [1, %d], got %d", params.PopulationSize, params.TournamentSize)
	}
	if len(rates) < 2 {
		return nil, fmt.Errorf("at least 2 workers are required, got %d", len(rates))
	}
	for w, rate := range rates {
		if rate < 0 {
			return nil, fmt.Errorf("worker %d has a negative rate %d", w, rate)
		}
	}
	for i, size := range jobs {
		if size < 0 {
			return nil, fmt.Errorf("job %d has a negative size %d", i, size)
		}
	}

	return &Engine{
		params: params,
		jobs:   jobs,
		rates:  rates,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Run evolves the population for MaxGenerations generations and returns the
// best assignment ever seen together with the per-generation history.
func (e *Engine) Run() *Result {
	workerCount := len(e.rates)

	// Initial population: every gene uniform over the worker indices.
	pop := make([]*Chromosome, e.params.PopulationSize)
	for i := range pop {
		genes := make([]int, len(e.jobs))
		for j := range genes {
			genes[j] = e.rng.Intn(workerCount)
		}
		pop[i] = &Chromosome{genes: genes}
		pop[i].objective = evaluate(genes, e.jobs, e.rates)
	}

	// The global best only ever improves on a strictly lower objective; ties
	// keep the earlier chromosome so runs stay deterministic.
	best := pop[0]
	for _, ch := range pop[1:] {
		if ch.objective < best.objective {
			best = ch
		}
	}
	best = best.clone()

	history := make([]domain.GenerationRecord, 0, e.params.MaxGenerations)

	for gen := 0; gen < e.params.MaxGenerations; gen++ {
		// Elitism: the top chromosomes survive unchanged. Deep copies, so
		// later breeding cannot corrupt them through shared gene slices.
		sort.SliceStable(pop, func(i, j int) bool {
			return pop[i].objective < pop[j].objective
		})

		newPop := make([]*Chromosome, 0, e.params.PopulationSize)
		for i := 0; i < e.params.EliteCount; i++ {
			newPop = append(newPop, pop[i].clone())
		}

		for len(newPop) < e.params.PopulationSize {
			p1 := e.tournament(pop)
			p2 := e.tournament(pop)

			var c1, c2 *Chromosome
			if e.rng.Float64() < e.params.CrossoverRate {
				c1, c2 = uniformCrossover(e.rng, p1, p2, swapProbability)
			} else {
				c1, c2 = p1.clone(), p2.clone()
			}

			mutate(e.rng, c1, e.params.MutationRate, workerCount)
			mutate(e.rng, c2, e.params.MutationRate, workerCount)

			newPop = append(newPop, c1)
			if len(newPop) < e.params.PopulationSize {
				newPop = append(newPop, c2)
			}
		}

		pop = newPop
		for _, ch := range pop {
			ch.objective = evaluate(ch.genes, e.jobs, e.rates)
		}

		genBest := pop[0]
		for _, ch := range pop[1:] {
			if ch.objective < genBest.objective {
				genBest = ch
			}
		}

		mean, std := objectiveStats(pop)
		history = append(history, domain.GenerationRecord{
			Generation:  gen,
			Best:        genBest.objective,
			Mean:        mean,
			Std:         std,
			Diversity:   diversity(pop),
			BestLoadStd: loadStd(genBest.genes, e.jobs, workerCount),
		})

		if genBest.objective < best.objective {
			best = genBest.clone()
		}
	}

	return &Result{
		Assignment: decode(best.genes, e.jobs, workerCount),
		Objective:  best.objective,
		History:    history,
	}
}
