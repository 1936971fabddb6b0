package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/wneessen/go-mail"

	"github.com/optiwork-dev/optiwork/backend/internal/config"
	"github.com/optiwork-dev/optiwork/backend/internal/domain"
	"github.com/optiwork-dev/optiwork/backend/internal/optimizer"
	"github.com/optiwork-dev/optiwork/backend/internal/repository"
	"github.com/optiwork-dev/optiwork/backend/internal/simulation"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var runCompletedTemplate = template.Must(template.New("run_completed").Parse(`
<p>The optimization run <strong>{{.RunID}}</strong> for plan <strong>{{.PlanName}}</strong> has finished.</p>
<p>Best objective: {{.Objective}} (after {{.Generations}} generations, simulated for {{.SimulationSteps}} steps).</p>
<p>The full result can be fetched from the API while it has not expired.</p>
`))

type worker struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	mailer *mail.Client
	logger *slog.Logger
}

// storeRun writes the run document back to redis with a fresh expiration.
func (w *worker) storeRun(run *domain.OptimizationRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(w.cfg.Redis.OperationTimeout)*time.Second)
	defer cancel()

	return w.rdb.Set(ctx, domain.RunKey(run.RunID), data, time.Duration(w.cfg.Run.ResultExpiration)*time.Second).Err()
}

func (w *worker) fail(run *domain.OptimizationRun, err error) {
	w.logger.Error("optimization run failed", "runID", run.RunID, "error", err)

	now := time.Now()
	run.Status = domain.RunStatusFailed
	run.Error = err.Error()
	run.CompletedAt = &now

	if err := w.storeRun(run); err != nil {
		w.logger.Error("failed to store failed run", "runID", run.RunID, "error", err)
	}
}

// handleRun executes one queued optimization: GA search, then the follow-up
// simulation of the best assignment, then the result write-back.
func (w *worker) handleRun(req *domain.RunRequest) {
	run := &domain.OptimizationRun{
		RunID:     req.RunID,
		PlanID:    req.PlanID,
		Status:    domain.RunStatusRunning,
		CreatedAt: time.Now(),
	}
	if err := w.storeRun(run); err != nil {
		w.logger.Error("failed to mark run as running", "runID", run.RunID, "error", err)
	}

	plan, err := w.repo.GetPlanByID(req.PlanID)
	if err != nil {
		w.fail(run, fmt.Errorf("failed to load plan %d: %w", req.PlanID, err))
		return
	}

	rates := plan.WorkerRates()

	engine, err := optimizer.New(&optimizer.Parameters{
		PopulationSize: req.PopulationSize,
		MaxGenerations: req.MaxGenerations,
		CrossoverRate:  req.CrossoverRate,
		MutationRate:   req.MutationRate,
		EliteCount:     req.EliteCount,
		TournamentSize: req.TournamentSize,
	}, plan.Jobs, rates, req.Seed)
	if err != nil {
		w.fail(run, err)
		return
	}

	result := engine.Run()

	workers := simulation.NewWorkers(rates, result.Assignment)
	stepHistory := simulation.Run(workers, req.SimulationSteps)

	now := time.Now()
	run.Status = domain.RunStatusCompleted
	run.Objective = result.Objective
	run.Assignment = result.Assignment
	run.History = result.History
	run.Simulation = stepHistory
	run.CompletedAt = &now

	if err := w.storeRun(run); err != nil {
		w.logger.Error("failed to store run result", "runID", run.RunID, "error", err)
		return
	}

	w.logger.Info("optimization run completed", "runID", run.RunID, "planID", run.PlanID, "objective", run.Objective)

	if req.NotifyEmail != "" && w.mailer != nil {
		if err := w.notify(req, plan.Name, run); err != nil {
			// Notification failures do not fail the run; the result is
			// already stored.
			w.logger.Error("failed to send completion notice", "runID", run.RunID, "error", err)
		}
	}
}

func (w *worker) notify(req *domain.RunRequest, planName string, run *domain.OptimizationRun) error {
	msg := mail.NewMsg()
	if err := msg.From(w.cfg.Email.SMTP.Username); err != nil {
		return err
	}
	if err := msg.To(req.NotifyEmail); err != nil {
		return err
	}
	msg.Subject("Optiwork - optimization run completed")

	if err := msg.SetBodyHTMLTemplate(runCompletedTemplate, domain.RunCompletedMailData{
		PlanName:        planName,
		RunID:           run.RunID,
		Objective:       run.Objective,
		Generations:     req.MaxGenerations,
		SimulationSteps: req.SimulationSteps,
	}); err != nil {
		return err
	}

	return w.mailer.DialAndSend(msg)
}

func main() {
	/**********************************************
	 * Logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * Configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Database
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * Redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	/**********************************************
	 * Mail client (optional)
	 **********************************************/
	var mailer *mail.Client
	if cfg.Email.SMTP.Host != "" {
		mailer, err = mail.NewClient(cfg.Email.SMTP.Host,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithSSL(),
			mail.WithPort(cfg.Email.SMTP.Port),
			mail.WithUsername(cfg.Email.SMTP.Username),
			mail.WithPassword(cfg.Email.SMTP.Password),
		)
		if err != nil {
			logger.Error("failed to create mail client", slog.String("error", err.Error()))
			return
		}
		defer mailer.Close()

		dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
		defer cancel()
		if err := mailer.DialWithContext(dialCtx); err != nil {
			logger.Error("failed to connect to mail server", slog.String("error", err.Error()))
			return
		}
	}

	/**********************************************
	 * RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"optimization_queue", // queue name
		true,                 // durable
		false,                // do not auto-delete when no consumer is around
		false,                // not exclusive
		false,                // wait for the broker to confirm the declaration
		nil,                  // no extra arguments
	)
	if err != nil {
		logger.Error("failed to declare queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name, // queue
		"",     // consumer tag assigned by the broker
		false,  // manual acks
		false,  // not exclusive
		false,  // no-local is unsupported by RabbitMQ, must stay false
		false,  // wait for the broker's response
		nil,    // no extra arguments
	)
	if err != nil {
		logger.Error("failed to consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	w := &worker{
		cfg:    cfg,
		repo:   repo,
		rdb:    rdb,
		mailer: mailer,
		logger: logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("run request received", slog.String("message", string(msg.Body)))

				req := &domain.RunRequest{}
				if err := json.Unmarshal(msg.Body, req); err != nil {
					logger.Error("failed to decode run request", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				w.handleRun(req)
				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for run requests... (CTRL+C to quit)")
	<-sigChan

	slog.Info("shutting down optimizer worker...")
	cancel()
	wg.Wait()
	slog.Info("optimizer worker stopped")
}
