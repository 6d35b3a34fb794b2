package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/amasqis/hrms/modules/tickets/domain/aggregates/ticket"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/eventbus"
)

type TicketService struct {
	repo      ticket.Repository
	publisher eventbus.EventBus
}

func NewTicketService(repo ticket.Repository, publisher eventbus.EventBus) *TicketService {
	return &TicketService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *TicketService) GetAll(ctx context.Context, params *ticket.FindParams) ([]ticket.Ticket, error) {
	return s.repo.GetAll(ctx, params)
}

func (s *TicketService) GetByID(ctx context.Context, id uuid.UUID) (ticket.Ticket, error) {
	return s.repo.GetByID(ctx, id)
}

// createAttempts bounds retries when a generated ticket number collides
// with an existing one.
const createAttempts = 3

func (s *TicketService) Create(ctx context.Context, data *ticket.CreateDTO) (ticket.Ticket, error) {
	if data == nil {
		return ticket.Ticket{}, errors.New("missing dto")
	}
	var (
		created ticket.Ticket
		err     error
	)
	// Each attempt runs in a fresh transaction with a fresh number, since
	// a unique violation aborts the one it happened in.
	for attempt := 0; attempt < createAttempts; attempt++ {
		created, err = composables.InTxResult(ctx, func(txCtx context.Context) (ticket.Ticket, error) {
			return s.repo.Create(txCtx, data.ToEntity())
		})
		if !errors.Is(err, ticket.ErrNumberTaken) {
			break
		}
	}
	if err != nil {
		return ticket.Ticket{}, err
	}
	s.publisher.Publish(&ticket.CreatedEvent{Result: created})
	return created, nil
}

func (s *TicketService) Update(ctx context.Context, id uuid.UUID, data *ticket.UpdateDTO) (ticket.Ticket, error) {
	if data == nil {
		return ticket.Ticket{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (ticket.Ticket, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return ticket.Ticket{}, err
		}
		updated, err := s.repo.Update(txCtx, data.Apply(existing))
		if err != nil {
			return ticket.Ticket{}, err
		}
		s.publisher.Publish(&ticket.UpdatedEvent{Result: updated})
		return updated, nil
	})
}

// ChangeStatus moves the ticket and persists the appended audit entry
// in the same transaction.
func (s *TicketService) ChangeStatus(ctx context.Context, id uuid.UUID, to ticket.Status, changedBy, note string) (ticket.Ticket, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (ticket.Ticket, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return ticket.Ticket{}, err
		}
		from := existing.Status()
		changed, err := existing.ChangeStatus(to, changedBy, note)
		if err != nil {
			return ticket.Ticket{}, err
		}
		updated, err := s.repo.Update(txCtx, changed)
		if err != nil {
			return ticket.Ticket{}, err
		}
		s.publisher.Publish(&ticket.StatusChangedEvent{From: from, Result: updated})
		return updated, nil
	})
}

func (s *TicketService) Assign(ctx context.Context, id uuid.UUID, assignee, changedBy string) (ticket.Ticket, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (ticket.Ticket, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return ticket.Ticket{}, err
		}
		assigned, err := existing.Assign(assignee, changedBy)
		if err != nil {
			return ticket.Ticket{}, err
		}
		updated, err := s.repo.Update(txCtx, assigned)
		if err != nil {
			return ticket.Ticket{}, err
		}
		s.publisher.Publish(&ticket.UpdatedEvent{Result: updated})
		return updated, nil
	})
}

func (s *TicketService) AddComment(ctx context.Context, id uuid.UUID, text, author string, isInternal bool) (ticket.Ticket, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (ticket.Ticket, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return ticket.Ticket{}, err
		}
		updated, err := s.repo.Update(txCtx, existing.AddComment(text, author, isInternal))
		if err != nil {
			return ticket.Ticket{}, err
		}
		s.publisher.Publish(&ticket.CommentAddedEvent{Result: updated})
		return updated, nil
	})
}

func (s *TicketService) Delete(ctx context.Context, id uuid.UUID) (ticket.Ticket, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (ticket.Ticket, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return ticket.Ticket{}, err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return ticket.Ticket{}, err
		}
		s.publisher.Publish(&ticket.DeletedEvent{Result: entity})
		return entity, nil
	})
}
