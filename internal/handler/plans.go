package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/optiwork-dev/optiwork/backend/internal/domain"
	"github.com/optiwork-dev/optiwork/backend/internal/generator"
	"github.com/optiwork-dev/optiwork/backend/internal/optimizer"
	"github.com/optiwork-dev/optiwork/backend/internal/simulation"
	"github.com/optiwork-dev/optiwork/backend/internal/utils"
)

func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
		Jobs        []int  `json:"jobs"`
		Workers     []struct {
			Rate int `json:"rate" validate:"min=1"`
		} `json:"workers" validate:"omitempty,dive"`
		Generate *struct {
			JobCount     *int   `json:"jobCount" validate:"omitempty,min=0"`
			MaxJobLength *int   `json:"maxJobLength" validate:"omitempty,min=0"`
			WorkerCount  *int   `json:"workerCount" validate:"omitempty,min=2"`
			MinRate      *int   `json:"minRate" validate:"omitempty,min=1"`
			MaxRate      *int   `json:"maxRate" validate:"omitempty,min=1"`
			Seed         *int64 `json:"seed"`
		} `json:"generate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	plan := &domain.Plan{
		Name:        req.Name,
		Description: req.Description,
		Jobs:        req.Jobs,
	}
	for _, worker := range req.Workers {
		plan.Workers = append(plan.Workers, domain.PlanWorker{Rate: worker.Rate})
	}

	// A plan is either spelled out in the request or generated from the
	// request's (or the configured) generator parameters.
	if req.Generate != nil {
		if len(req.Jobs) > 0 || len(req.Workers) > 0 {
			h.badRequest(w, r, errors.New("a plan is either explicit or generated, not both"))
			return
		}

		jobCount := h.config.Generator.JobCount
		if req.Generate.JobCount != nil {
			jobCount = *req.Generate.JobCount
		}
		maxJobLength := h.config.Generator.MaxJobLength
		if req.Generate.MaxJobLength != nil {
			maxJobLength = *req.Generate.MaxJobLength
		}
		workerCount := h.config.Generator.WorkerCount
		if req.Generate.WorkerCount != nil {
			workerCount = *req.Generate.WorkerCount
		}
		minRate := h.config.Generator.MinRate
		if req.Generate.MinRate != nil {
			minRate = *req.Generate.MinRate
		}
		maxRate := h.config.Generator.MaxRate
		if req.Generate.MaxRate != nil {
			maxRate = *req.Generate.MaxRate
		}
		seed := time.Now().UnixNano()
		if req.Generate.Seed != nil {
			seed = *req.Generate.Seed
		}

		if maxRate < minRate {
			h.badRequest(w, r, errors.New("maxRate must not be smaller than minRate"))
			return
		}

		gen := generator.New(seed)
		plan.Jobs = gen.Jobs(jobCount, maxJobLength)
		plan.Workers = gen.Workers(workerCount, minRate, maxRate)
	}

	if err := utils.ValidatePlanData(plan); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreatePlan(plan); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "plans_name_key":
				h.errorResponse(w, r, "plan name already exists")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "plan created", plan)
}

func (h *Handler) GetAllPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.repository.GetAllPlans()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "plans retrieved", plans)
}

func (h *Handler) GetPlanByID(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(PlanCtx).(*domain.Plan)

	h.successResponse(w, r, "plan retrieved", plan)
}

func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(PlanCtx).(*domain.Plan)

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}

	if err := h.repository.UpdatePlan(plan); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "plans_name_key":
				h.errorResponse(w, r, "plan name already exists")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "plan updated", plan)
}

func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(PlanCtx).(*domain.Plan)

	if err := h.repository.DeletePlan(plan.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "plan deleted", nil)
}

// runRequestBody carries the GA and simulation parameters of a run. Every
// field is optional; omitted ones fall back to the configured defaults.
type runRequestBody struct {
	PopulationSize  *int     `json:"populationSize" validate:"omitempty,min=1"`
	MaxGenerations  *int     `json:"maxGenerations" validate:"omitempty,min=0"`
	CrossoverRate   *float64 `json:"crossoverRate" validate:"omitempty,min=0,max=1"`
	MutationRate    *float64 `json:"mutationRate" validate:"omitempty,min=0,max=1"`
	EliteCount      *int     `json:"eliteCount" validate:"omitempty,min=0"`
	TournamentSize  *int     `json:"tournamentSize" validate:"omitempty,min=1"`
	Seed            *int64   `json:"seed"`
	SimulationSteps *int     `json:"simulationSteps" validate:"omitempty,min=1"`
	NotifyEmail     string   `json:"notifyEmail" validate:"omitempty,email"`
}

func (h *Handler) runRequestFromBody(planID int64, req *runRequestBody) *domain.RunRequest {
	run := &domain.RunRequest{
		PlanID:          planID,
		PopulationSize:  h.config.Optimizer.PopulationSize,
		MaxGenerations:  h.config.Optimizer.MaxGenerations,
		CrossoverRate:   h.config.Optimizer.CrossoverRate,
		MutationRate:    h.config.Optimizer.MutationRate,
		EliteCount:      h.config.Optimizer.EliteCount,
		TournamentSize:  h.config.Optimizer.TournamentSize,
		Seed:            h.config.Optimizer.Seed,
		SimulationSteps: h.config.Simulation.Steps,
		NotifyEmail:     req.NotifyEmail,
	}

	if req.PopulationSize != nil {
		run.PopulationSize = *req.PopulationSize
	}
	if req.MaxGenerations != nil {
		run.MaxGenerations = *req.MaxGenerations
	}
	if req.CrossoverRate != nil {
		run.CrossoverRate = *req.CrossoverRate
	}
	if req.MutationRate != nil {
		run.MutationRate = *req.MutationRate
	}
	if req.EliteCount != nil {
		run.EliteCount = *req.EliteCount
	}
	if req.TournamentSize != nil {
		run.TournamentSize = *req.TournamentSize
	}
	if req.Seed != nil {
		run.Seed = *req.Seed
	}
	if req.SimulationSteps != nil {
		run.SimulationSteps = *req.SimulationSteps
	}

	return run
}

func parameters(run *domain.RunRequest) *optimizer.Parameters {
	return &optimizer.Parameters{
		PopulationSize: run.PopulationSize,
		MaxGenerations: run.MaxGenerations,
		CrossoverRate:  run.CrossoverRate,
		MutationRate:   run.MutationRate,
		EliteCount:     run.EliteCount,
		TournamentSize: run.TournamentSize,
	}
}

// OptimizePlan runs the GA and the follow-up simulation synchronously and
// returns the full result. Meant for small plans; anything bigger should go
// through the run queue instead.
func (h *Handler) OptimizePlan(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(PlanCtx).(*domain.Plan)

	var req runRequestBody
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	run := h.runRequestFromBody(plan.ID, &req)
	rates := plan.WorkerRates()

	engine, err := optimizer.New(parameters(run), plan.Jobs, rates, run.Seed)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	result := engine.Run()

	workers := simulation.NewWorkers(rates, result.Assignment)
	stepHistory := simulation.Run(workers, run.SimulationSteps)

	h.successResponse(w, r, "plan optimized", struct {
		Objective  int                       `json:"objective"`
		Assignment [][]int                   `json:"assignment"`
		History    []domain.GenerationRecord `json:"history"`
		Simulation []domain.StepRecord       `json:"simulation"`
	}{
		Objective:  result.Objective,
		Assignment: result.Assignment,
		History:    result.History,
		Simulation: stepHistory,
	})
}

// EnqueueOptimizationRun validates the request, registers a queued run
// document in redis and hands the work to the optimizer worker through the
// optimization queue.
func (h *Handler) EnqueueOptimizationRun(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(PlanCtx).(*domain.Plan)

	var req runRequestBody
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	run := h.runRequestFromBody(plan.ID, &req)
	run.RunID = utils.GenerateRandomID(8, 4)

	// Reject configurations the engine would refuse before anything is
	// queued, so failures surface here and not in the worker log.
	if _, err := optimizer.New(parameters(run), plan.Jobs, plan.WorkerRates(), run.Seed); err != nil {
		h.badRequest(w, r, err)
		return
	}

	doc := &domain.OptimizationRun{
		RunID:     run.RunID,
		PlanID:    plan.ID,
		Status:    domain.RunStatusQueued,
		CreatedAt: time.Now(),
	}

	docData, err := json.Marshal(doc)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, domain.RunKey(run.RunID), docData, time.Duration(h.config.Run.ResultExpiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	runData, err := json.Marshal(run)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.runChannel.PublishWithContext(
		ctx,
		"",
		"optimization_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        runData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "optimization run enqueued", doc)
}

func (h *Handler) GetOptimizationRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	docData, err := h.redisClient.Get(ctx, domain.RunKey(runID)).Result()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.errorResponse(w, r, "run does not exist or has expired")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	doc := &domain.OptimizationRun{}
	if err := json.Unmarshal([]byte(docData), doc); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "run retrieved", doc)
}
