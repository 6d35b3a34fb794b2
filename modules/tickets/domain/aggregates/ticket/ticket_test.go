package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTicketDerivesSLADeadline(t *testing.T) {
	cases := []struct {
		priority Priority
		window   time.Duration
	}{
		{PriorityCritical, 4 * time.Hour},
		{PriorityHigh, 8 * time.Hour},
		{PriorityMedium, 24 * time.Hour},
		{PriorityLow, 72 * time.Hour},
	}
	for _, tc := range cases {
		entity := New("VPN down", "", "IT", "", "amira", tc.priority, time.Time{})
		require.Equal(t, StatusOpen, entity.Status())
		require.WithinDuration(t, entity.CreatedAt().Add(tc.window), entity.SLADeadline(), time.Second, "priority %s", tc.priority)
	}
}

func TestNewTicketDefaultsToMediumPriority(t *testing.T) {
	entity := New("VPN down", "", "IT", "", "amira", "", time.Time{})
	require.Equal(t, PriorityMedium, entity.Priority())
}

func TestChangeStatusAppendsHistory(t *testing.T) {
	entity := New("VPN down", "", "IT", "", "amira", PriorityHigh, time.Time{})

	assigned, err := entity.ChangeStatus(StatusAssigned, "omar", "taking this")
	require.NoError(t, err)
	require.Equal(t, StatusAssigned, assigned.Status())
	require.Len(t, assigned.History(), 1)
	require.Equal(t, StatusOpen, assigned.History()[0].From)
	require.Equal(t, StatusAssigned, assigned.History()[0].To)
	require.Equal(t, "omar", assigned.History()[0].ChangedBy)

	// The original value is untouched.
	require.Equal(t, StatusOpen, entity.Status())
	require.Empty(t, entity.History())
}

func TestReopenOnlyFromResolvedOrClosed(t *testing.T) {
	entity := New("VPN down", "", "IT", "", "amira", PriorityHigh, time.Time{})

	_, err := entity.ChangeStatus(StatusReopened, "omar", "")
	require.ErrorIs(t, err, ErrInvalidTransition)

	assigned, err := entity.ChangeStatus(StatusAssigned, "omar", "")
	require.NoError(t, err)
	resolved, err := assigned.ChangeStatus(StatusResolved, "omar", "")
	require.NoError(t, err)
	reopened, err := resolved.ChangeStatus(StatusReopened, "amira", "still broken")
	require.NoError(t, err)
	require.Equal(t, StatusReopened, reopened.Status())
	require.Len(t, reopened.History(), 3)
}

func TestCloseStampsClosedAtAndReopenClearsIt(t *testing.T) {
	entity := New("VPN down", "", "IT", "", "amira", PriorityLow, time.Time{})

	closed, err := entity.ChangeStatus(StatusClosed, "omar", "")
	require.NoError(t, err)
	require.False(t, closed.ClosedAt().IsZero())

	reopened, err := closed.ChangeStatus(StatusReopened, "amira", "")
	require.NoError(t, err)
	require.True(t, reopened.ClosedAt().IsZero())
}

func TestAssignMovesOpenTicketToAssigned(t *testing.T) {
	entity := New("VPN down", "", "IT", "", "amira", PriorityHigh, time.Time{})

	assigned, err := entity.Assign("omar", "amira")
	require.NoError(t, err)
	require.Equal(t, "omar", assigned.AssignedTo())
	require.Equal(t, StatusAssigned, assigned.Status())
	require.Len(t, assigned.History(), 1)

	// Reassignment on an in-flight ticket does not touch the status.
	inProgress, err := assigned.ChangeStatus(StatusInProgress, "omar", "")
	require.NoError(t, err)
	reassigned, err := inProgress.Assign("lena", "amira")
	require.NoError(t, err)
	require.Equal(t, "lena", reassigned.AssignedTo())
	require.Equal(t, StatusInProgress, reassigned.Status())
	require.Len(t, reassigned.History(), 2)
}

func TestAddCommentKeepsOrder(t *testing.T) {
	entity := New("VPN down", "", "IT", "", "amira", PriorityHigh, time.Time{})

	entity = entity.AddComment("restarted the gateway", "omar", true)
	entity = entity.AddComment("still failing for me", "amira", false)

	require.Len(t, entity.Comments(), 2)
	require.Equal(t, "restarted the gateway", entity.Comments()[0].Text)
	require.True(t, entity.Comments()[0].IsInternal)
	require.False(t, entity.Comments()[1].IsInternal)
}
