package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leaverequest"
	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leavetype"
	"github.com/amasqis/hrms/modules/hrm/services"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/dateutil"
	"github.com/amasqis/hrms/pkg/httpapi"
	"github.com/amasqis/hrms/pkg/listview"
)

// leaveListConfig projects leave requests for both admin and employee list
// screens. Filters match lowercase, so ?status=pending and ?leaveType=sick
// work as the UI sends them.
func leaveListConfig(types map[uuid.UUID]leavetype.LeaveType) listview.Config[leaverequest.LeaveRequest] {
	typeName := func(e leaverequest.LeaveRequest) string {
		return types[e.TypeID()].Name()
	}
	return listview.Config[leaverequest.LeaveRequest]{
		Key: func(e leaverequest.LeaveRequest) string { return e.ID().String() },
		SearchFields: []func(leaverequest.LeaveRequest) string{
			func(e leaverequest.LeaveRequest) string { return e.Reason() },
			typeName,
		},
		FilterFields: map[string]func(leaverequest.LeaveRequest) string{
			"status": func(e leaverequest.LeaveRequest) string { return string(e.Status()) },
			"leaveType": func(e leaverequest.LeaveRequest) string {
				return strings.ToLower(typeName(e))
			},
			"session": func(e leaverequest.LeaveRequest) string { return string(e.Session()) },
		},
		Columns: []listview.Column[leaverequest.LeaveRequest]{
			{
				Name:    "Employee",
				Display: func(e leaverequest.LeaveRequest) string { return e.EmployeeID().String() },
				Value:   func(e leaverequest.LeaveRequest) any { return e.EmployeeID().String() },
			},
			{
				Name:    "Type",
				Display: typeName,
				Value:   func(e leaverequest.LeaveRequest) any { return typeName(e) },
			},
			{
				Name:    "From",
				Display: func(e leaverequest.LeaveRequest) string { return e.StartDate().Format("2006-01-02") },
				Value:   func(e leaverequest.LeaveRequest) any { return e.StartDate() },
			},
			{
				Name:    "To",
				Display: func(e leaverequest.LeaveRequest) string { return e.EndDate().Format("2006-01-02") },
				Value:   func(e leaverequest.LeaveRequest) any { return e.EndDate() },
			},
			{
				Name:    "Duration",
				Display: func(e leaverequest.LeaveRequest) string { return dateutil.FormatDuration(e.Days()) },
				Value:   func(e leaverequest.LeaveRequest) any { return e.Days() },
			},
			{
				Name:    "Status",
				Display: func(e leaverequest.LeaveRequest) string { return string(e.Status()) },
				Value:   func(e leaverequest.LeaveRequest) any { return string(e.Status()) },
			},
		},
	}
}

func leaveTypeIndex(r *http.Request, types *services.LeaveTypeService) (map[uuid.UUID]leavetype.LeaveType, error) {
	all, err := types.GetAll(r.Context())
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]leavetype.LeaveType, len(all))
	for _, lt := range all {
		index[lt.ID()] = lt
	}
	return index, nil
}

func deriveLeaveRows(r *http.Request, leaves *services.LeaveService, types *services.LeaveTypeService) ([]listview.Row[leaverequest.LeaveRequest], listview.Config[leaverequest.LeaveRequest], error) {
	index, err := leaveTypeIndex(r, types)
	if err != nil {
		return nil, listview.Config[leaverequest.LeaveRequest]{}, err
	}

	findParams := &leaverequest.FindParams{}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			findParams.EmployeeID = id
		}
	}
	requests, err := leaves.GetAll(r.Context(), findParams)
	if err != nil {
		return nil, listview.Config[leaverequest.LeaveRequest]{}, err
	}

	cfg := leaveListConfig(index)
	params := composables.UseListParams(r, "status", "leaveType", "session")
	return listview.Derive(cfg, requests, params), cfg, nil
}

func leaveInternalError(w http.ResponseWriter, r *http.Request, err error) {
	composables.UseLogger(r.Context()).WithError(err).Error("hrm api request failed")
	_ = httpapi.WriteServerError(w, err)
}
