package generator

import (
	"math/rand"

	"github.com/optiwork-dev/optiwork/backend/internal/domain"
)

// Generator produces random plan datasets from its own seeded source, so a
// dataset is reproducible from the seed alone.
type Generator struct {
	rng *rand.Rand
}

func New(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Jobs returns count random job sizes, each uniform in [0, maxLength].
func (g *Generator) Jobs(count, maxLength int) []int {
	jobs := make([]int, count)
	for i := range jobs {
		jobs[i] = g.rng.Intn(maxLength + 1)
	}
	return jobs
}

// Workers returns count worker slots with rates uniform in [minRate, maxRate].
func (g *Generator) Workers(count, minRate, maxRate int) []domain.PlanWorker {
	workers := make([]domain.PlanWorker, count)
	for i := range workers {
		workers[i] = domain.PlanWorker{
			Rate: minRate + g.rng.Intn(maxRate-minRate+1),
		}
	}
	return workers
}
