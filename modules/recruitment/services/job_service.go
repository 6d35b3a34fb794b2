package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/amasqis/hrms/modules/recruitment/domain/aggregates/job"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/eventbus"
	"github.com/amasqis/hrms/pkg/listview"
)

type JobService struct {
	repo      job.Repository
	publisher eventbus.EventBus
}

func NewJobService(repo job.Repository, publisher eventbus.EventBus) *JobService {
	return &JobService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *JobService) GetAll(ctx context.Context) ([]job.Job, error) {
	return s.repo.GetAll(ctx)
}

// Search narrows the job list by fuzzy-matching titles.
func (s *JobService) Search(ctx context.Context, q string) ([]job.Job, error) {
	jobs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return listview.FuzzyFind(jobs, q, func(j job.Job) string { return j.Title() }), nil
}

func (s *JobService) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JobService) Create(ctx context.Context, data *job.CreateDTO) (job.Job, error) {
	if data == nil {
		return job.Job{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (job.Job, error) {
		created, err := s.repo.Create(txCtx, data.ToEntity())
		if err != nil {
			return job.Job{}, err
		}
		s.publisher.Publish(&job.CreatedEvent{Result: created})
		return created, nil
	})
}

func (s *JobService) Update(ctx context.Context, id uuid.UUID, data *job.UpdateDTO) (job.Job, error) {
	if data == nil {
		return job.Job{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (job.Job, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return job.Job{}, err
		}
		updated, err := s.repo.Update(txCtx, data.Apply(existing))
		if err != nil {
			return job.Job{}, err
		}
		s.publisher.Publish(&job.UpdatedEvent{Result: updated})
		return updated, nil
	})
}

func (s *JobService) Delete(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (job.Job, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return job.Job{}, err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return job.Job{}, err
		}
		s.publisher.Publish(&job.DeletedEvent{Result: entity})
		return entity, nil
	})
}
