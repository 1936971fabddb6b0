package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optiwork-dev/optiwork/backend/internal/domain"
)

func TestValidatePlanData(t *testing.T) {
	tests := []struct {
		name    string
		plan    domain.Plan
		wantErr string
	}{
		{
			name: "valid plan",
			plan: domain.Plan{
				Jobs:    []int{3, 0, 7},
				Workers: []domain.PlanWorker{{Rate: 1}, {Rate: 2}},
			},
		},
		{
			name: "single worker",
			plan: domain.Plan{
				Jobs:    []int{3},
				Workers: []domain.PlanWorker{{Rate: 1}},
			},
			wantErr: "at least 2 workers",
		},
		{
			name: "zero rate",
			plan: domain.Plan{
				Jobs:    []int{3},
				Workers: []domain.PlanWorker{{Rate: 2}, {Rate: 0}},
			},
			wantErr: "positive rate",
		},
		{
			name: "negative job size",
			plan: domain.Plan{
				Jobs:    []int{3, -1},
				Workers: []domain.PlanWorker{{Rate: 1}, {Rate: 2}},
			},
			wantErr: "negative size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlanData(&tt.plan)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
