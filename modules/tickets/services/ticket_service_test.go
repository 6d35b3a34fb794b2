package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/amasqis/hrms/modules/tickets/domain/aggregates/ticket"
)

type mockTicketRepo struct {
	tickets map[uuid.UUID]ticket.Ticket
	order   []uuid.UUID
	// collisions makes the next n Create calls fail as if the generated
	// number already existed.
	collisions int
}

func newMockTicketRepo() *mockTicketRepo {
	return &mockTicketRepo{tickets: make(map[uuid.UUID]ticket.Ticket)}
}

func (m *mockTicketRepo) GetAll(ctx context.Context, params *ticket.FindParams) ([]ticket.Ticket, error) {
	out := make([]ticket.Ticket, 0, len(m.order))
	for _, id := range m.order {
		t := m.tickets[id]
		if params != nil {
			if params.Status != "" && t.Status() != params.Status {
				continue
			}
			if params.Priority != "" && t.Priority() != params.Priority {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (ticket.Ticket, error) {
	t, ok := m.tickets[id]
	if !ok {
		return ticket.Ticket{}, ticket.ErrNotFound
	}
	return t, nil
}

func (m *mockTicketRepo) Create(ctx context.Context, data ticket.Ticket) (ticket.Ticket, error) {
	if m.collisions > 0 {
		m.collisions--
		return ticket.Ticket{}, ticket.ErrNumberTaken
	}
	created := ticket.Hydrate(
		uuid.New(),
		data.Number(),
		data.Title(),
		data.Description(),
		data.Category(),
		data.SubCategory(),
		data.Priority(),
		data.Status(),
		data.AssignedTo(),
		data.CreatedBy(),
		data.Tags(),
		data.DueDate(),
		data.SLADeadline(),
		data.History(),
		data.Comments(),
		data.ClosedAt(),
		data.CreatedAt(),
		data.CreatedAt(),
	)
	m.tickets[created.ID()] = created
	m.order = append(m.order, created.ID())
	return created, nil
}

func (m *mockTicketRepo) Update(ctx context.Context, data ticket.Ticket) (ticket.Ticket, error) {
	if _, ok := m.tickets[data.ID()]; !ok {
		return ticket.Ticket{}, ticket.ErrNotFound
	}
	m.tickets[data.ID()] = data
	return data, nil
}

func (m *mockTicketRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.tickets[id]; !ok {
		return ticket.ErrNotFound
	}
	delete(m.tickets, id)
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

func createTicket(t *testing.T, svc *TicketService, priority string) ticket.Ticket {
	t.Helper()
	created, err := svc.Create(context.Background(), &ticket.CreateDTO{
		Title:     "VPN down",
		Category:  "IT",
		Priority:  priority,
		CreatedBy: "amira",
	})
	require.NoError(t, err)
	return created
}

func TestTicketService_CreateOpensWithNumber(t *testing.T) {
	publisher := &stubPublisher{}
	svc := NewTicketService(newMockTicketRepo(), publisher)

	created := createTicket(t, svc, "Critical")
	require.Equal(t, ticket.StatusOpen, created.Status())
	require.Contains(t, created.Number(), "TKT-")
	require.False(t, created.SLADeadline().IsZero())

	last := publisher.published[len(publisher.published)-1]
	_, ok := last.(*ticket.CreatedEvent)
	require.True(t, ok)
}

func TestTicketService_CreateRetriesOnNumberCollision(t *testing.T) {
	publisher := &stubPublisher{}
	repo := newMockTicketRepo()
	repo.collisions = 2
	svc := NewTicketService(repo, publisher)

	created := createTicket(t, svc, "High")
	require.Contains(t, created.Number(), "TKT-")
	require.Len(t, repo.order, 1)
}

func TestTicketService_CreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := newMockTicketRepo()
	repo.collisions = 3
	svc := NewTicketService(repo, &stubPublisher{})

	_, err := svc.Create(context.Background(), &ticket.CreateDTO{
		Title:     "VPN down",
		Category:  "IT",
		CreatedBy: "amira",
	})
	require.ErrorIs(t, err, ticket.ErrNumberTaken)
}

func TestTicketService_ChangeStatusAppendsHistory(t *testing.T) {
	publisher := &stubPublisher{}
	svc := NewTicketService(newMockTicketRepo(), publisher)
	created := createTicket(t, svc, "High")

	changed, err := svc.ChangeStatus(context.Background(), created.ID(), ticket.StatusAssigned, "omar", "taking this")
	require.NoError(t, err)
	require.Equal(t, ticket.StatusAssigned, changed.Status())
	require.Len(t, changed.History(), 1)

	last := publisher.published[len(publisher.published)-1]
	ev, ok := last.(*ticket.StatusChangedEvent)
	require.True(t, ok)
	require.Equal(t, ticket.StatusOpen, ev.From)
}

func TestTicketService_InvalidTransitionLeavesTicketUntouched(t *testing.T) {
	repo := newMockTicketRepo()
	svc := NewTicketService(repo, &stubPublisher{})
	created := createTicket(t, svc, "High")

	_, err := svc.ChangeStatus(context.Background(), created.ID(), ticket.StatusReopened, "omar", "")
	require.ErrorIs(t, err, ticket.ErrInvalidTransition)

	stored, err := repo.GetByID(context.Background(), created.ID())
	require.NoError(t, err)
	require.Equal(t, ticket.StatusOpen, stored.Status())
	require.Empty(t, stored.History())
}

func TestTicketService_AssignSetsAssignee(t *testing.T) {
	svc := NewTicketService(newMockTicketRepo(), &stubPublisher{})
	created := createTicket(t, svc, "Medium")

	assigned, err := svc.Assign(context.Background(), created.ID(), "omar", "amira")
	require.NoError(t, err)
	require.Equal(t, "omar", assigned.AssignedTo())
	require.Equal(t, ticket.StatusAssigned, assigned.Status())
}

func TestTicketService_AddComment(t *testing.T) {
	publisher := &stubPublisher{}
	svc := NewTicketService(newMockTicketRepo(), publisher)
	created := createTicket(t, svc, "Low")

	updated, err := svc.AddComment(context.Background(), created.ID(), "restarted the gateway", "omar", true)
	require.NoError(t, err)
	require.Len(t, updated.Comments(), 1)

	last := publisher.published[len(publisher.published)-1]
	_, ok := last.(*ticket.CommentAddedEvent)
	require.True(t, ok)
}

func TestTicketService_GetAllFilters(t *testing.T) {
	svc := NewTicketService(newMockTicketRepo(), &stubPublisher{})
	createTicket(t, svc, "Critical")
	createTicket(t, svc, "Low")

	critical, err := svc.GetAll(context.Background(), &ticket.FindParams{Priority: ticket.PriorityCritical})
	require.NoError(t, err)
	require.Len(t, critical, 1)

	all, err := svc.GetAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestTicketService_ChangeStatusMissing(t *testing.T) {
	svc := NewTicketService(newMockTicketRepo(), &stubPublisher{})

	_, err := svc.ChangeStatus(context.Background(), uuid.New(), ticket.StatusClosed, "omar", "")
	require.ErrorIs(t, err, ticket.ErrNotFound)
}
