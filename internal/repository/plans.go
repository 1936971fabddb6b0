package repository

import (
	"context"
	"time"

	"github.com/optiwork-dev/optiwork/backend/internal/domain"
)

func (r *Repository) CreatePlan(plan *domain.Plan) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO plans (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	if err := tx.QueryRowContext(ctx, query, plan.Name, plan.Description).Scan(&plan.ID, &plan.CreatedAt, &plan.Version); err != nil {
		return err
	}

	for idx, size := range plan.Jobs {
		query := `
			INSERT INTO plan_jobs (plan_id, idx, size)
			VALUES ($1, $2, $3)
		`

		if _, err := tx.ExecContext(ctx, query, plan.ID, idx, size); err != nil {
			return err
		}
	}

	for idx, worker := range plan.Workers {
		query := `
			INSERT INTO plan_workers (plan_id, idx, rate)
			VALUES ($1, $2, $3)
		`

		if _, err := tx.ExecContext(ctx, query, plan.ID, idx, worker.Rate); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPlanByID(id int64) (*domain.Plan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT name, description, created_at, version
		FROM plans
		WHERE id = $1
	`

	plan := &domain.Plan{
		ID: id,
	}

	dst := []any{&plan.Name, &plan.Description, &plan.CreatedAt, &plan.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	// Job sizes and worker rates are stored by index, so ordering by idx
	// reproduces the dataset in submission order.
	query = `
		SELECT size FROM plan_jobs WHERE plan_id = $1 ORDER BY idx
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plan.Jobs = []int{}
	for rows.Next() {
		var size int
		if err := rows.Scan(&size); err != nil {
			return nil, err
		}
		plan.Jobs = append(plan.Jobs, size)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query = `
		SELECT rate FROM plan_workers WHERE plan_id = $1 ORDER BY idx
	`

	workerRows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer workerRows.Close()

	plan.Workers = []domain.PlanWorker{}
	for workerRows.Next() {
		var rate int
		if err := workerRows.Scan(&rate); err != nil {
			return nil, err
		}
		plan.Workers = append(plan.Workers, domain.PlanWorker{Rate: rate})
	}
	if err := workerRows.Err(); err != nil {
		return nil, err
	}

	return plan, nil
}

// PlanMeta is the list-view projection of a plan: everything except the job
// and worker rows themselves.
type PlanMeta struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	JobCount    int       `json:"jobCount"`
	WorkerCount int       `json:"workerCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r *Repository) GetAllPlans() ([]*PlanMeta, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.description,
			(SELECT COUNT(*) FROM plan_jobs pj WHERE pj.plan_id = p.id),
			(SELECT COUNT(*) FROM plan_workers pw WHERE pw.plan_id = p.id),
			p.created_at
		FROM plans p
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []*PlanMeta{}
	for rows.Next() {
		var plan PlanMeta
		dst := []any{
			&plan.ID,
			&plan.Name,
			&plan.Description,
			&plan.JobCount,
			&plan.WorkerCount,
			&plan.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		plans = append(plans, &plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *Repository) UpdatePlan(plan *domain.Plan) error {
	// Only the metadata is updatable. Changing the dataset under queued runs
	// would make their results meaningless, so jobs and workers are immutable
	// once created.
	query := `
		UPDATE plans
		SET
			name = $1,
			description = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, plan.Name, plan.Description, plan.ID, plan.Version).Scan(&plan.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeletePlan(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, query := range []string{
		`DELETE FROM plan_jobs WHERE plan_id = $1`,
		`DELETE FROM plan_workers WHERE plan_id = $1`,
		`DELETE FROM plans WHERE id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
