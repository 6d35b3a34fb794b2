package mappers

import (
	"time"

	"github.com/google/uuid"

	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leaverequest"
	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leavetype"
	"github.com/amasqis/hrms/modules/hrm/presentation/viewmodels"
	"github.com/amasqis/hrms/modules/hrm/services"
	"github.com/amasqis/hrms/pkg/dateutil"
)

func LeaveTypeToViewModel(entity leavetype.LeaveType) *viewmodels.LeaveType {
	return &viewmodels.LeaveType{
		ID:              entity.ID().String(),
		Name:            entity.Name(),
		Code:            string(entity.Code()),
		AnnualAllowance: entity.AnnualAllowance(),
		Status:          string(entity.Status()),
	}
}

func LeaveRequestToViewModel(entity leaverequest.LeaveRequest) *viewmodels.LeaveRequest {
	vm := &viewmodels.LeaveRequest{
		ID:            entity.ID().String(),
		EmployeeID:    entity.EmployeeID().String(),
		TypeID:        entity.TypeID().String(),
		StartDate:     entity.StartDate().Format("2006-01-02"),
		EndDate:       entity.EndDate().Format("2006-01-02"),
		Session:       string(entity.Session()),
		Days:          entity.Days(),
		Duration:      dateutil.FormatDuration(entity.Days()),
		Reason:        entity.Reason(),
		Status:        string(entity.Status()),
		ManagerStatus: string(entity.ManagerStatus()),
		ReviewerNote:  entity.ReviewerNote(),
		CreatedAt:     entity.CreatedAt().Format(time.RFC3339),
	}
	if entity.ReportingManagerID() != uuid.Nil {
		vm.ReportingManagerID = entity.ReportingManagerID().String()
	}
	return vm
}

func BalanceToViewModel(balance services.Balance) *viewmodels.LeaveBalance {
	return &viewmodels.LeaveBalance{
		TypeID:    balance.TypeID.String(),
		TypeName:  balance.TypeName,
		Allowance: balance.Allowance,
		Used:      balance.Used,
		Remaining: balance.Remaining,
	}
}
