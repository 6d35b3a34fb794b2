package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/amasqis/hrms/modules/recruitment/domain/aggregates/job"
)

type mockJobRepo struct {
	jobs  map[uuid.UUID]job.Job
	order []uuid.UUID
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: make(map[uuid.UUID]job.Job)}
}

func (m *mockJobRepo) GetAll(ctx context.Context) ([]job.Job, error) {
	out := make([]job.Job, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.jobs[id])
	}
	return out, nil
}

func (m *mockJobRepo) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (m *mockJobRepo) Create(ctx context.Context, data job.Job) (job.Job, error) {
	created := job.Hydrate(
		uuid.New(),
		data.Title(),
		data.Category(),
		data.Location(),
		data.Description(),
		data.SalaryRaw(),
		data.SalaryMin(),
		data.SalaryMax(),
		data.Kind(),
		data.Status(),
		data.PostedAt(),
		time.Now(),
		time.Now(),
	)
	m.jobs[created.ID()] = created
	m.order = append(m.order, created.ID())
	return created, nil
}

func (m *mockJobRepo) Update(ctx context.Context, data job.Job) (job.Job, error) {
	if _, ok := m.jobs[data.ID()]; !ok {
		return job.Job{}, job.ErrNotFound
	}
	m.jobs[data.ID()] = data
	return data, nil
}

func (m *mockJobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.jobs[id]; !ok {
		return job.ErrNotFound
	}
	delete(m.jobs, id)
	return nil
}

type stubPublisher struct {
	published []interface{}
}

func (s *stubPublisher) Publish(args ...interface{})     { s.published = append(s.published, args...) }
func (s *stubPublisher) Subscribe(handler interface{})   {}
func (s *stubPublisher) Unsubscribe(handler interface{}) {}
func (s *stubPublisher) Clear()                          {}
func (s *stubPublisher) SubscribersCount() int           { return 0 }

func TestJobService_CreateParsesSalaryAndDefaults(t *testing.T) {
	publisher := &stubPublisher{}
	svc := NewJobService(newMockJobRepo(), publisher)

	created, err := svc.Create(context.Background(), &job.CreateDTO{
		Title:    "Backend Engineer",
		Category: "Engineering",
		Salary:   "40k - 60k",
	})
	require.NoError(t, err)
	require.Equal(t, job.StatusActive, created.Status())
	require.Equal(t, job.TypeFullTime, created.Kind())
	require.Equal(t, 40000, created.SalaryMin())
	require.Equal(t, 60000, created.SalaryMax())

	last := publisher.published[len(publisher.published)-1]
	ev, ok := last.(*job.CreatedEvent)
	require.True(t, ok)
	require.Equal(t, created.ID(), ev.Result.ID())
}

func TestJobService_UpdateKeepsPostedAt(t *testing.T) {
	svc := NewJobService(newMockJobRepo(), &stubPublisher{})

	created, err := svc.Create(context.Background(), &job.CreateDTO{Title: "Designer"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID(), &job.UpdateDTO{
		Title:  "Senior Designer",
		Salary: "55k",
		Status: "Inactive",
	})
	require.NoError(t, err)
	require.Equal(t, "Senior Designer", updated.Title())
	require.Equal(t, job.StatusInactive, updated.Status())
	require.Equal(t, 55000, updated.SalaryMin())
	require.Equal(t, created.PostedAt(), updated.PostedAt())
}

func TestJobService_UpdateMissing(t *testing.T) {
	svc := NewJobService(newMockJobRepo(), &stubPublisher{})

	_, err := svc.Update(context.Background(), uuid.New(), &job.UpdateDTO{Title: "Ghost", Status: "Active"})
	require.ErrorIs(t, err, job.ErrNotFound)
}

func TestJobService_SearchMatchesTitle(t *testing.T) {
	svc := NewJobService(newMockJobRepo(), &stubPublisher{})

	for _, title := range []string{"Backend Engineer", "Frontend Engineer", "Recruiter"} {
		_, err := svc.Create(context.Background(), &job.CreateDTO{Title: title})
		require.NoError(t, err)
	}

	found, err := svc.Search(context.Background(), "engineer")
	require.NoError(t, err)
	require.Len(t, found, 2)
}

func TestJobService_DeletePublishesEvent(t *testing.T) {
	publisher := &stubPublisher{}
	svc := NewJobService(newMockJobRepo(), publisher)

	created, err := svc.Create(context.Background(), &job.CreateDTO{Title: "Analyst"})
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), created.ID())
	require.NoError(t, err)

	last := publisher.published[len(publisher.published)-1]
	_, ok := last.(*job.DeletedEvent)
	require.True(t, ok)
}
