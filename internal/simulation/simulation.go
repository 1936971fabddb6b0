package simulation

import (
	"github.com/optiwork-dev/optiwork/backend/internal/domain"
)

// Worker is the mutable simulation state of one worker: its processing rate
// and the FIFO queue of remaining job sizes it was assigned.
type Worker struct {
	Index int
	Rate  int
	Queue []int
}

// NewWorkers builds simulation workers from the plan's rates and the
// optimizer's decoded assignment. The queues are copies; the assignment
// itself is never mutated.
func NewWorkers(rates []int, assignment [][]int) []*Worker {
	workers := make([]*Worker, len(rates))
	for w, rate := range rates {
		queue := []int{}
		if w < len(assignment) {
			queue = make([]int, len(assignment[w]))
			copy(queue, assignment[w])
		}
		workers[w] = &Worker{
			Index: w,
			Rate:  rate,
			Queue: queue,
		}
	}
	return workers
}

// step advances one worker by one time step: the job at the front of the
// queue loses Rate size, and is popped once its remaining size drops to or
// below zero. Workers with empty queues are no-ops.
func (w *Worker) step() {
	if len(w.Queue) == 0 {
		return
	}

	w.Queue[0] -= w.Rate
	if w.Queue[0] <= 0 {
		w.Queue = w.Queue[1:]
	}
}

// Run steps all workers forward for a fixed number of steps and snapshots the
// aggregate progress after each step. It always runs the full step count even
// if every queue drains early; callers inspect the history to find the
// completion time.
func Run(workers []*Worker, steps int) []domain.StepRecord {
	history := make([]domain.StepRecord, 0, steps)

	prevRemaining := 0
	for _, w := range workers {
		prevRemaining += len(w.Queue)
	}

	for step := 0; step < steps; step++ {
		for _, w := range workers {
			w.step()
		}

		record := domain.StepRecord{
			Step:         step,
			QueueLengths: make([]int, len(workers)),
		}
		for i, w := range workers {
			record.QueueLengths[i] = len(w.Queue)
			record.JobsRemaining += len(w.Queue)
			for _, size := range w.Queue {
				record.WorkRemaining += size
			}
		}

		if completed := prevRemaining - record.JobsRemaining; completed > 0 {
			record.CompletedThisStep = completed
		}
		prevRemaining = record.JobsRemaining

		history = append(history, record)
	}

	return history
}
