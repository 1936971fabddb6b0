package domain

// RunCompletedMailData feeds the completion-notice email template rendered by
// the optimizer worker.
type RunCompletedMailData struct {
	PlanName        string `json:"planName"`
	RunID           string `json:"runID"`
	Objective       int    `json:"objective"`
	Generations     int    `json:"generations"`
	SimulationSteps int    `json:"simulationSteps"`
}
