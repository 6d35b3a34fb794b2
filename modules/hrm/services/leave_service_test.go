package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leaverequest"
	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leavetype"
)

type mockLeaveTypeRepo struct {
	types map[uuid.UUID]leavetype.LeaveType
}

func newMockLeaveTypeRepo() *mockLeaveTypeRepo {
	return &mockLeaveTypeRepo{types: make(map[uuid.UUID]leavetype.LeaveType)}
}

func (m *mockLeaveTypeRepo) add(name string, code leavetype.Code, allowance float64) leavetype.LeaveType {
	lt := leavetype.Hydrate(uuid.New(), name, code, allowance, leavetype.StatusActive, time.Now(), time.Now())
	m.types[lt.ID()] = lt
	return lt
}

func (m *mockLeaveTypeRepo) GetAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	out := make([]leavetype.LeaveType, 0, len(m.types))
	for _, lt := range m.types {
		out = append(out, lt)
	}
	return out, nil
}

func (m *mockLeaveTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (leavetype.LeaveType, error) {
	lt, ok := m.types[id]
	if !ok {
		return leavetype.LeaveType{}, leavetype.ErrNotFound
	}
	return lt, nil
}

func (m *mockLeaveTypeRepo) Create(ctx context.Context, data leavetype.LeaveType) (leavetype.LeaveType, error) {
	created := leavetype.Hydrate(uuid.New(), data.Name(), data.Code(), data.AnnualAllowance(), data.Status(), time.Now(), time.Now())
	m.types[created.ID()] = created
	return created, nil
}

func (m *mockLeaveTypeRepo) Update(ctx context.Context, data leavetype.LeaveType) (leavetype.LeaveType, error) {
	if _, ok := m.types[data.ID()]; !ok {
		return leavetype.LeaveType{}, leavetype.ErrNotFound
	}
	m.types[data.ID()] = data
	return data, nil
}

func (m *mockLeaveTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.types[id]; !ok {
		return leavetype.ErrNotFound
	}
	delete(m.types, id)
	return nil
}

type mockLeaveRequestRepo struct {
	requests map[uuid.UUID]leaverequest.LeaveRequest
}

func newMockLeaveRequestRepo() *mockLeaveRequestRepo {
	return &mockLeaveRequestRepo{requests: make(map[uuid.UUID]leaverequest.LeaveRequest)}
}

func (m *mockLeaveRequestRepo) GetAll(ctx context.Context, params *leaverequest.FindParams) ([]leaverequest.LeaveRequest, error) {
	out := make([]leaverequest.LeaveRequest, 0, len(m.requests))
	for _, lr := range m.requests {
		if params != nil {
			if params.EmployeeID != uuid.Nil && lr.EmployeeID() != params.EmployeeID {
				continue
			}
			if params.TypeID != uuid.Nil && lr.TypeID() != params.TypeID {
				continue
			}
			if params.Status != "" && lr.Status() != params.Status {
				continue
			}
		}
		out = append(out, lr)
	}
	return out, nil
}

func (m *mockLeaveRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (leaverequest.LeaveRequest, error) {
	lr, ok := m.requests[id]
	if !ok {
		return leaverequest.LeaveRequest{}, leaverequest.ErrNotFound
	}
	return lr, nil
}

func (m *mockLeaveRequestRepo) Create(ctx context.Context, data leaverequest.LeaveRequest) (leaverequest.LeaveRequest, error) {
	created := leaverequest.Hydrate(
		uuid.New(),
		data.EmployeeID(),
		data.TypeID(),
		data.ReportingManagerID(),
		data.StartDate(),
		data.EndDate(),
		data.Session(),
		data.Days(),
		data.Reason(),
		data.Status(),
		data.ManagerStatus(),
		data.ReviewerNote(),
		time.Now(),
		time.Now(),
	)
	m.requests[created.ID()] = created
	return created, nil
}

func (m *mockLeaveRequestRepo) Update(ctx context.Context, data leaverequest.LeaveRequest) (leaverequest.LeaveRequest, error) {
	if _, ok := m.requests[data.ID()]; !ok {
		return leaverequest.LeaveRequest{}, leaverequest.ErrNotFound
	}
	m.requests[data.ID()] = data
	return data, nil
}

func (m *mockLeaveRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.requests[id]; !ok {
		return leaverequest.ErrNotFound
	}
	delete(m.requests, id)
	return nil
}

func (m *mockLeaveRequestRepo) SumApprovedDays(ctx context.Context, employeeID, typeID uuid.UUID, ref time.Time) (float64, error) {
	var sum float64
	for _, lr := range m.requests {
		if lr.EmployeeID() != employeeID || lr.TypeID() != typeID {
			continue
		}
		if lr.Status() != leaverequest.StatusApproved {
			continue
		}
		if lr.StartDate().Year() != ref.Year() {
			continue
		}
		sum += lr.Days()
	}
	return sum, nil
}

type stubPublisher struct {
	published []interface{}
}

func (s *stubPublisher) Publish(args ...interface{})     { s.published = append(s.published, args...) }
func (s *stubPublisher) Subscribe(handler interface{})   {}
func (s *stubPublisher) Unsubscribe(handler interface{}) {}
func (s *stubPublisher) Clear()                          {}
func (s *stubPublisher) SubscribersCount() int           { return 0 }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newLeaveFixture(t *testing.T, allowance float64) (*LeaveService, *mockLeaveRequestRepo, leavetype.LeaveType, uuid.UUID) {
	t.Helper()
	types := newMockLeaveTypeRepo()
	requests := newMockLeaveRequestRepo()
	lt := types.add("Annual", leavetype.CodeAnnual, allowance)
	svc := NewLeaveService(requests, types, &stubPublisher{})
	return svc, requests, lt, uuid.New()
}

func TestLeaveService_CreateDerivesDays(t *testing.T) {
	svc, _, lt, employee := newLeaveFixture(t, 20)

	created, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     lt.ID(),
		StartDate:  date(2025, time.January, 1),
		EndDate:    date(2025, time.January, 3),
	})
	require.NoError(t, err)
	require.Equal(t, 3.0, created.Days())
	require.Equal(t, leaverequest.StatusPending, created.Status())
}

func TestLeaveService_CreateHalfDay(t *testing.T) {
	svc, _, lt, employee := newLeaveFixture(t, 20)

	created, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     lt.ID(),
		StartDate:  date(2025, time.March, 10),
		EndDate:    date(2025, time.March, 10),
		Session:    "First Half",
	})
	require.NoError(t, err)
	require.Equal(t, 0.5, created.Days())
}

func TestLeaveService_CreateInvertedRange(t *testing.T) {
	svc, _, lt, employee := newLeaveFixture(t, 20)

	_, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     lt.ID(),
		StartDate:  date(2025, time.January, 5),
		EndDate:    date(2025, time.January, 1),
	})
	require.ErrorIs(t, err, leaverequest.ErrInvalidRange)
}

func TestLeaveService_UpdateRecomputesDays(t *testing.T) {
	svc, _, lt, employee := newLeaveFixture(t, 20)

	created, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     lt.ID(),
		StartDate:  date(2025, time.April, 1),
		EndDate:    date(2025, time.April, 2),
	})
	require.NoError(t, err)
	require.Equal(t, 2.0, created.Days())

	updated, err := svc.Update(context.Background(), created.ID(), &leaverequest.UpdateDTO{
		TypeID:    lt.ID(),
		StartDate: date(2025, time.April, 1),
		EndDate:   date(2025, time.April, 5),
		Reason:    "extended trip",
	})
	require.NoError(t, err)
	require.Equal(t, 5.0, updated.Days())
	require.Equal(t, "extended trip", updated.Reason())
	require.Equal(t, leaverequest.StatusPending, updated.Status())
}

func TestLeaveService_UpdateHalfDayRecomputesDays(t *testing.T) {
	svc, _, lt, employee := newLeaveFixture(t, 20)

	created, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     lt.ID(),
		StartDate:  date(2025, time.April, 1),
		EndDate:    date(2025, time.April, 3),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID(), &leaverequest.UpdateDTO{
		TypeID:    lt.ID(),
		StartDate: date(2025, time.April, 1),
		EndDate:   date(2025, time.April, 1),
		Session:   "Second Half",
	})
	require.NoError(t, err)
	require.Equal(t, 0.5, updated.Days())
}

func TestLeaveService_UpdateApprovedRequest(t *testing.T) {
	svc, _, lt, employee := newLeaveFixture(t, 20)

	created, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     lt.ID(),
		StartDate:  date(2025, time.April, 1),
		EndDate:    date(2025, time.April, 2),
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID(), "")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID(), &leaverequest.UpdateDTO{
		TypeID:    lt.ID(),
		StartDate: date(2025, time.April, 1),
		EndDate:   date(2025, time.April, 9),
	})
	require.ErrorIs(t, err, leaverequest.ErrInvalidTransition)
}

func TestLeaveService_UpdateInvertedRange(t *testing.T) {
	svc, _, lt, employee := newLeaveFixture(t, 20)

	created, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     lt.ID(),
		StartDate:  date(2025, time.April, 1),
		EndDate:    date(2025, time.April, 2),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID(), &leaverequest.UpdateDTO{
		TypeID:    lt.ID(),
		StartDate: date(2025, time.April, 9),
		EndDate:   date(2025, time.April, 1),
	})
	require.ErrorIs(t, err, leaverequest.ErrInvalidRange)
}

func TestLeaveService_ApproveAndBalance(t *testing.T) {
	svc, _, lt, employee := newLeaveFixture(t, 20)
	svc.now = func() time.Time { return date(2025, time.June, 1) }

	created, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     lt.ID(),
		StartDate:  date(2025, time.February, 3),
		EndDate:    date(2025, time.February, 7),
	})
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), created.ID(), "enjoy")
	require.NoError(t, err)
	require.Equal(t, leaverequest.StatusApproved, approved.Status())
	require.Equal(t, leaverequest.StatusApproved, approved.ManagerStatus())
	require.Equal(t, "enjoy", approved.ReviewerNote())

	balances, err := svc.Balances(context.Background(), employee)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.Equal(t, 5.0, balances[0].Used)
	require.Equal(t, 15.0, balances[0].Remaining)
}

func TestLeaveService_ApproveBeyondAllowance(t *testing.T) {
	svc, _, lt, employee := newLeaveFixture(t, 4)

	created, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     lt.ID(),
		StartDate:  date(2025, time.February, 3),
		EndDate:    date(2025, time.February, 7),
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID(), "")
	require.ErrorIs(t, err, leaverequest.ErrInsufficientBalance)

	unchanged, err := svc.GetByID(context.Background(), created.ID())
	require.NoError(t, err)
	require.Equal(t, leaverequest.StatusPending, unchanged.Status())
}

func TestLeaveService_ApproveTwice(t *testing.T) {
	svc, _, lt, employee := newLeaveFixture(t, 20)

	created, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     lt.ID(),
		StartDate:  date(2025, time.February, 3),
		EndDate:    date(2025, time.February, 4),
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID(), "")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID(), "")
	require.ErrorIs(t, err, leaverequest.ErrInvalidTransition)
}

func TestLeaveService_CancelApprovedFreesBalance(t *testing.T) {
	svc, _, lt, employee := newLeaveFixture(t, 20)
	svc.now = func() time.Time { return date(2025, time.June, 1) }

	created, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     lt.ID(),
		StartDate:  date(2025, time.February, 3),
		EndDate:    date(2025, time.February, 7),
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID(), "")
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), created.ID())
	require.NoError(t, err)
	require.Equal(t, leaverequest.StatusCancelled, cancelled.Status())

	balances, err := svc.Balances(context.Background(), employee)
	require.NoError(t, err)
	require.Equal(t, 0.0, balances[0].Used)
	require.Equal(t, 20.0, balances[0].Remaining)
}

func TestLeaveService_RejectCancelled(t *testing.T) {
	svc, _, lt, employee := newLeaveFixture(t, 20)

	created, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     lt.ID(),
		StartDate:  date(2025, time.February, 3),
		EndDate:    date(2025, time.February, 4),
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.ID())
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), created.ID(), "no")
	require.ErrorIs(t, err, leaverequest.ErrInvalidTransition)
}

func TestLeaveService_CreateUnknownType(t *testing.T) {
	svc, _, _, employee := newLeaveFixture(t, 20)

	_, err := svc.Create(context.Background(), &leaverequest.CreateDTO{
		EmployeeID: employee,
		TypeID:     uuid.New(),
		StartDate:  date(2025, time.January, 1),
		EndDate:    date(2025, time.January, 2),
	})
	require.ErrorIs(t, err, leavetype.ErrNotFound)
}
