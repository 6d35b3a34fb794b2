package controllers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leaverequest"
	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leavetype"
	"github.com/amasqis/hrms/pkg/dateutil"
	"github.com/amasqis/hrms/pkg/listview"
)

func leaveFixture(t *testing.T, lt leavetype.LeaveType, status leaverequest.Status, start, end time.Time) leaverequest.LeaveRequest {
	t.Helper()
	return leaverequest.Hydrate(
		uuid.New(),
		uuid.New(),
		lt.ID(),
		uuid.Nil,
		start,
		end,
		dateutil.SessionFullDay,
		dateutil.LeaveDays(start, end, dateutil.SessionFullDay),
		"",
		status,
		status,
		"",
		time.Now(),
		time.Now(),
	)
}

func TestLeaveList_PendingSickFilter(t *testing.T) {
	sick := leavetype.Hydrate(uuid.New(), "Sick", leavetype.CodeMedical, 10, leavetype.StatusActive, time.Now(), time.Now())
	annual := leavetype.Hydrate(uuid.New(), "Annual", leavetype.CodeAnnual, 20, leavetype.StatusActive, time.Now(), time.Now())
	types := map[uuid.UUID]leavetype.LeaveType{
		sick.ID():   sick,
		annual.ID(): annual,
	}

	day := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	requests := []leaverequest.LeaveRequest{
		leaveFixture(t, sick, leaverequest.StatusPending, day, day),
		leaveFixture(t, sick, leaverequest.StatusApproved, day, day.AddDate(0, 0, 2)),
		leaveFixture(t, annual, leaverequest.StatusPending, day, day.AddDate(0, 0, 4)),
	}

	rows := listview.Derive(leaveListConfig(types), requests, listview.Params{
		Filters: map[string]string{"status": "pending", "leaveType": "sick"},
	})
	require.Len(t, rows, 1)
	require.Equal(t, "1 Day", rows[0].Display["Duration"])
	require.Equal(t, "Sick", rows[0].Display["Type"])
	require.Equal(t, "pending", rows[0].Display["Status"])
}

func TestLeaveList_SearchByTypeName(t *testing.T) {
	sick := leavetype.Hydrate(uuid.New(), "Sick", leavetype.CodeMedical, 10, leavetype.StatusActive, time.Now(), time.Now())
	annual := leavetype.Hydrate(uuid.New(), "Annual", leavetype.CodeAnnual, 20, leavetype.StatusActive, time.Now(), time.Now())
	types := map[uuid.UUID]leavetype.LeaveType{
		sick.ID():   sick,
		annual.ID(): annual,
	}

	day := time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC)
	requests := []leaverequest.LeaveRequest{
		leaveFixture(t, sick, leaverequest.StatusPending, day, day),
		leaveFixture(t, annual, leaverequest.StatusPending, day, day),
	}

	rows := listview.Derive(leaveListConfig(types), requests, listview.Params{Search: "annu"})
	require.Len(t, rows, 1)
	require.Equal(t, "Annual", rows[0].Display["Type"])
}
