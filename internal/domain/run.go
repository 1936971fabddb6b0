package domain

import "time"

// RunKey is the redis key a run document is stored under. The API and the
// optimizer worker have to agree on it.
func RunKey(runID string) string {
	return "run_" + runID
}

type RunStatus string

const (
	RunStatusQueued    RunStatus = "queued"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// GenerationRecord captures the population statistics of one generation.
// Records are append-only and ordered by generation index.
type GenerationRecord struct {
	Generation  int     `json:"generation"`
	Best        int     `json:"best"`
	Mean        float64 `json:"mean"`
	Std         float64 `json:"std"`
	Diversity   float64 `json:"diversity"`
	BestLoadStd float64 `json:"bestLoadStd"`
}

// StepRecord captures the aggregate state after one simulation step.
type StepRecord struct {
	Step              int   `json:"step"`
	JobsRemaining     int   `json:"jobsRemaining"`
	WorkRemaining     int   `json:"workRemaining"`
	CompletedThisStep int   `json:"completedThisStep"`
	QueueLengths      []int `json:"queueLengths"`
}

// RunRequest is the message the API publishes to the optimization queue and
// the optimizer worker consumes.
type RunRequest struct {
	RunID           string  `json:"runID"`
	PlanID          int64   `json:"planID"`
	PopulationSize  int     `json:"populationSize"`
	MaxGenerations  int     `json:"maxGenerations"`
	CrossoverRate   float64 `json:"crossoverRate"`
	MutationRate    float64 `json:"mutationRate"`
	EliteCount      int     `json:"eliteCount"`
	TournamentSize  int     `json:"tournamentSize"`
	Seed            int64   `json:"seed"`
	SimulationSteps int     `json:"simulationSteps"`
	NotifyEmail     string  `json:"notifyEmail,omitempty"`
}

// OptimizationRun is the run document stored in redis under the run ID. It is
// an expiring cache entry, not durable storage: solutions are never persisted
// across runs.
type OptimizationRun struct {
	RunID       string             `json:"runID"`
	PlanID      int64              `json:"planID"`
	Status      RunStatus          `json:"status"`
	Error       string             `json:"error,omitempty"`
	Objective   int                `json:"objective"`
	Assignment  [][]int            `json:"assignment,omitempty"`
	History     []GenerationRecord `json:"history,omitempty"`
	Simulation  []StepRecord       `json:"simulation,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
}
