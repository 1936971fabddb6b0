package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/optiwork-dev/optiwork/backend/internal/config"
	"github.com/optiwork-dev/optiwork/backend/internal/domain"
	"github.com/optiwork-dev/optiwork/backend/internal/generator"
	"github.com/optiwork-dev/optiwork/backend/internal/repository"
	"github.com/optiwork-dev/optiwork/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: insert random plans)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object; ping to make sure the database
	// is actually reachable.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 1:
		seedUsers(logger, cfg, repo, n)
	case 2:
		seedPlans(logger, cfg, repo, n)
	default:
		logger.Error("unknown operation", "op", op)
		os.Exit(1)
	}
}

func seedUsers(logger *slog.Logger, cfg *config.Config, repo *repository.Repository, n int) {
	if cfg.Seed.User.Password == "" {
		logger.Error("SEED_USER_PASSWORD is required for op 1")
		os.Exit(1)
	}

	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, "optiwork.dev")
		if err != nil {
			logger.Error("failed to generate user", "error", err)
			return
		}

		if err := repo.CreateUser(user); err != nil {
			logger.Error("failed to insert user", "username", user.Username, "error", err)
			continue
		}

		logger.Info("user inserted", "username", user.Username, "role", user.Role)
	}
}

func seedPlans(logger *slog.Logger, cfg *config.Config, repo *repository.Repository, n int) {
	for i := 0; i < n; i++ {
		seed := rand.Int63()
		gen := generator.New(seed)

		plan := &domain.Plan{
			Name:        "plan-" + utils.GenerateRandomID(3, 3),
			Description: fmt.Sprintf("randomly generated dataset (seed %d)", seed),
			Jobs:        gen.Jobs(cfg.Generator.JobCount, cfg.Generator.MaxJobLength),
			Workers:     gen.Workers(cfg.Generator.WorkerCount, cfg.Generator.MinRate, cfg.Generator.MaxRate),
		}

		if err := repo.CreatePlan(plan); err != nil {
			logger.Error("failed to insert plan", "name", plan.Name, "error", err)
			continue
		}

		logger.Info("plan inserted", "name", plan.Name, "jobs", len(plan.Jobs), "workers", len(plan.Workers))
	}
}
