package optimizer

import (
	"fmt"
	"math"
)

// objectiveStats returns the mean and standard deviation of the population's
// objective values.
func objectiveStats(pop []*Chromosome) (float64, float64) {
	mean := 0.0
	for _, ch := range pop {
		mean += float64(ch.objective)
	}
	mean /= float64(len(pop))

	variance := 0.0
	for _, ch := range pop {
		variance += math.Pow(float64(ch.objective)-mean, 2)
	}
	variance /= float64(len(pop))

	return mean, math.Sqrt(variance)
}

// diversity is the fraction of distinct gene sequences in the population.
// It is 1 only when all chromosomes are pairwise distinct.
func diversity(pop []*Chromosome) float64 {
	distinct := make(map[string]struct{}, len(pop))
	for _, ch := range pop {
		distinct[fmt.Sprint(ch.genes)] = struct{}{}
	}
	return float64(len(distinct)) / float64(len(pop))
}

// loadStd is the standard deviation of the total job size each worker carries
// under the given assignment. Workers without jobs count as zero load.
func loadStd(genes []int, jobs []int, workerCount int) float64 {
	loads := make([]float64, workerCount)
	for i, w := range genes {
		loads[w] += float64(jobs[i])
	}

	mean := 0.0
	for _, load := range loads {
		mean += load
	}
	mean /= float64(workerCount)

	variance := 0.0
	for _, load := range loads {
		variance += math.Pow(load-mean, 2)
	}
	variance /= float64(workerCount)

	return math.Sqrt(variance)
}
