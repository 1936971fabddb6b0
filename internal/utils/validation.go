package utils

import (
	"fmt"

	"github.com/optiwork-dev/optiwork/backend/internal/domain"
)

// ValidatePlanData checks that a plan dataset is something the optimizer and
// simulation can actually work with. Mutation needs at least two workers to
// have an alternative index to reassign to, so single-worker plans are
// rejected up front.
func ValidatePlanData(plan *domain.Plan) error {
	if len(plan.Workers) < 2 {
		return fmt.Errorf("a plan needs at least 2 workers, got %d", len(plan.Workers))
	}

	for w, worker := range plan.Workers {
		if worker.Rate <= 0 {
			return fmt.Errorf("worker %d must have a positive rate, got %d", w, worker.Rate)
		}
	}

	for i, size := range plan.Jobs {
		if size < 0 {
			return fmt.Errorf("job %d must not have a negative size, got %d", i, size)
		}
	}

	return nil
}
