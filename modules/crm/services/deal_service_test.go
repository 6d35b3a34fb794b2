package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/amasqis/hrms/modules/crm/domain/aggregates/deal"
)

type mockDealRepo struct {
	deals map[uuid.UUID]deal.Deal
	order []uuid.UUID
}

func newMockDealRepo() *mockDealRepo {
	return &mockDealRepo{deals: make(map[uuid.UUID]deal.Deal)}
}

func (m *mockDealRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.deals)), nil
}

func (m *mockDealRepo) GetAll(ctx context.Context) ([]deal.Deal, error) {
	out := make([]deal.Deal, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.deals[id])
	}
	return out, nil
}

func (m *mockDealRepo) GetByID(ctx context.Context, id uuid.UUID) (deal.Deal, error) {
	d, ok := m.deals[id]
	if !ok {
		return deal.Deal{}, deal.ErrNotFound
	}
	return d, nil
}

func (m *mockDealRepo) Create(ctx context.Context, data deal.Deal) (deal.Deal, error) {
	created := deal.Hydrate(
		uuid.New(),
		data.Name(),
		data.CompanyID(),
		data.Stage(),
		data.Amount(),
		data.Currency(),
		data.Probability(),
		data.ExpectedCloseDate(),
		data.Owner(),
		time.Now(),
		time.Now(),
	)
	m.deals[created.ID()] = created
	m.order = append(m.order, created.ID())
	return created, nil
}

func (m *mockDealRepo) Update(ctx context.Context, data deal.Deal) (deal.Deal, error) {
	if _, ok := m.deals[data.ID()]; !ok {
		return deal.Deal{}, deal.ErrNotFound
	}
	m.deals[data.ID()] = data
	return data, nil
}

func (m *mockDealRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.deals[id]; !ok {
		return deal.ErrNotFound
	}
	delete(m.deals, id)
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

func TestDealService_NewDealsStartInFirstStage(t *testing.T) {
	svc := NewDealService(newMockDealRepo(), &stubPublisher{})

	created, err := svc.Create(context.Background(), &deal.CreateDTO{
		Name:   "BrightWave rollout",
		Amount: 250_000_00,
	})
	require.NoError(t, err)
	require.Equal(t, deal.StageNew, created.Stage())
	require.Equal(t, "USD", created.Currency())
	require.Equal(t, "$250,000.00", created.Value().Display())
}

func TestDealService_MoveStage(t *testing.T) {
	repo := newMockDealRepo()
	publisher := &stubPublisher{}
	svc := NewDealService(repo, publisher)

	created, err := svc.Create(context.Background(), &deal.CreateDTO{Name: "BrightWave rollout"})
	require.NoError(t, err)

	moved, err := svc.MoveStage(context.Background(), created.ID(), deal.StageProposal)
	require.NoError(t, err)
	require.Equal(t, deal.StageProposal, moved.Stage())

	last := publisher.published[len(publisher.published)-1]
	ev, ok := last.(*deal.StageMovedEvent)
	require.True(t, ok)
	require.Equal(t, deal.StageNew, ev.From)
}

func TestDealService_MoveStageUnknown(t *testing.T) {
	svc := NewDealService(newMockDealRepo(), &stubPublisher{})

	created, err := svc.Create(context.Background(), &deal.CreateDTO{Name: "BrightWave rollout"})
	require.NoError(t, err)

	_, err = svc.MoveStage(context.Background(), created.ID(), deal.Stage("Archived"))
	require.ErrorIs(t, err, deal.ErrUnknownStage)

	unchanged, err := svc.GetByID(context.Background(), created.ID())
	require.NoError(t, err)
	require.Equal(t, deal.StageNew, unchanged.Stage())
}

func TestDealService_BoardKeepsEveryDeal(t *testing.T) {
	svc := NewDealService(newMockDealRepo(), &stubPublisher{})

	first, err := svc.Create(context.Background(), &deal.CreateDTO{Name: "First"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &deal.CreateDTO{Name: "Second"})
	require.NoError(t, err)

	_, err = svc.MoveStage(context.Background(), first.ID(), deal.StageWon)
	require.NoError(t, err)

	board, err := svc.Board(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, board.Total())
	require.Len(t, board.Columns, len(deal.Stages()))

	won, ok := board.Column(string(deal.StageWon))
	require.True(t, ok)
	require.Equal(t, 1, won.Count())
	require.Equal(t, "First", won.Cards[0].Name())
}

func TestParseStageFallsBackToNew(t *testing.T) {
	require.Equal(t, deal.StageProposal, deal.ParseStage(" proposal "))
	require.Equal(t, deal.StageNew, deal.ParseStage("something-else"))
	require.Equal(t, deal.StageNew, deal.ParseStage(""))
}
