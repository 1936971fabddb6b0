package domain

import "time"

// PlanWorker describes one worker slot of a plan. Rate is the amount of work
// the worker burns through per simulation step, and the divisor of its cost.
type PlanWorker struct {
	Rate int `json:"rate"`
}

// Plan is a named input dataset for the optimizer: the jobs that have to be
// assigned and the workers they can be assigned to.
type Plan struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Jobs        []int        `json:"jobs"`
	Workers     []PlanWorker `json:"workers"`
	CreatedAt   time.Time    `json:"createdAt"`
	Version     int32        `json:"-"`
}

// WorkerRates flattens the worker slots into the rate slice the optimizer and
// simulation consume.
func (p *Plan) WorkerRates() []int {
	rates := make([]int, len(p.Workers))
	for i, w := range p.Workers {
		rates[i] = w.Rate
	}
	return rates
}
