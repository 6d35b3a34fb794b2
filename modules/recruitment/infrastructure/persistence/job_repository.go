package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amasqis/hrms/modules/recruitment/domain/aggregates/job"
	"github.com/amasqis/hrms/pkg/composables"
)

const (
	selectJobsQuery = `
		SELECT id, title, category, location, description, salary_raw, salary_min, salary_max, kind, status, posted_at, created_at, updated_at
		FROM jobs`
	insertJobQuery = `
		INSERT INTO jobs (id, title, category, location, description, salary_raw, salary_min, salary_max, kind, status, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, title, category, location, description, salary_raw, salary_min, salary_max, kind, status, posted_at, created_at, updated_at`
	updateJobQuery = `
		UPDATE jobs
		SET title = $2, category = $3, location = $4, description = $5, salary_raw = $6, salary_min = $7, salary_max = $8, kind = $9, status = $10, updated_at = now()
		WHERE id = $1
		RETURNING id, title, category, location, description, salary_raw, salary_min, salary_max, kind, status, posted_at, created_at, updated_at`
	deleteJobQuery = `DELETE FROM jobs WHERE id = $1`
)

type JobRepository struct{}

func NewJobRepository() job.Repository {
	return &JobRepository{}
}

func (r *JobRepository) GetAll(ctx context.Context) ([]job.Job, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectJobsQuery+` ORDER BY posted_at DESC`)
	if err != nil {
		return nil, gerrors.Wrap(err, "query jobs")
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		entity, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return job.Job{}, err
	}
	entity, err := scanJob(tx.QueryRow(ctx, selectJobsQuery+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return entity, nil
}

func (r *JobRepository) Create(ctx context.Context, data job.Job) (job.Job, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return job.Job{}, err
	}
	created, err := scanJob(tx.QueryRow(ctx, insertJobQuery,
		uuid.New(),
		data.Title(),
		data.Category(),
		data.Location(),
		data.Description(),
		data.SalaryRaw(),
		data.SalaryMin(),
		data.SalaryMax(),
		string(data.Kind()),
		string(data.Status()),
		data.PostedAt(),
	))
	if err != nil {
		return job.Job{}, gerrors.Wrap(err, "create job")
	}
	return created, nil
}

func (r *JobRepository) Update(ctx context.Context, data job.Job) (job.Job, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return job.Job{}, err
	}
	updated, err := scanJob(tx.QueryRow(ctx, updateJobQuery,
		data.ID(),
		data.Title(),
		data.Category(),
		data.Location(),
		data.Description(),
		data.SalaryRaw(),
		data.SalaryMin(),
		data.SalaryMax(),
		string(data.Kind()),
		string(data.Status()),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, gerrors.Wrap(err, "update job")
	}
	return updated, nil
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, deleteJobQuery, id)
	if err != nil {
		return gerrors.Wrap(err, "delete job")
	}
	if tag.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (job.Job, error) {
	var (
		id          uuid.UUID
		title       string
		category    string
		location    string
		description string
		salaryRaw   string
		salaryMin   int
		salaryMax   int
		kind        string
		status      string
		postedAt    time.Time
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&id, &title, &category, &location, &description, &salaryRaw, &salaryMin, &salaryMax, &kind, &status, &postedAt, &createdAt, &updatedAt); err != nil {
		return job.Job{}, err
	}
	return job.Hydrate(
		id,
		title,
		category,
		location,
		description,
		salaryRaw,
		salaryMin,
		salaryMax,
		job.EmploymentType(kind),
		job.Status(status),
		postedAt,
		createdAt,
		updatedAt,
	), nil
}
