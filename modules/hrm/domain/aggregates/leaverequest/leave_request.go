package leaverequest

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amasqis/hrms/pkg/dateutil"
)

var (
	ErrNotFound            = errors.New("leave request not found")
	ErrInvalidRange        = errors.New("leave range is empty or inverted")
	ErrInvalidTransition   = errors.New("invalid leave status transition")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

type LeaveRequest struct {
	id                 uuid.UUID
	employeeID         uuid.UUID
	typeID             uuid.UUID
	reportingManagerID uuid.UUID
	startDate          time.Time
	endDate            time.Time
	session            dateutil.Session
	days               float64
	reason             string
	status             Status
	managerStatus      Status
	reviewerNote       string
	createdAt          time.Time
	updatedAt          time.Time
}

// New builds a pending request. The day count is derived from the range
// and session, never supplied by the caller.
func New(employeeID, typeID, reportingManagerID uuid.UUID, startDate, endDate time.Time, session dateutil.Session, reason string) (LeaveRequest, error) {
	days := dateutil.LeaveDays(startDate, endDate, session)
	if days <= 0 {
		return LeaveRequest{}, ErrInvalidRange
	}
	return LeaveRequest{
		employeeID:         employeeID,
		typeID:             typeID,
		reportingManagerID: reportingManagerID,
		startDate:          dateutil.Midnight(startDate),
		endDate:            dateutil.Midnight(endDate),
		session:            session,
		days:               days,
		reason:             strings.TrimSpace(reason),
		status:             StatusPending,
		managerStatus:      StatusPending,
	}, nil
}

func Hydrate(
	id uuid.UUID,
	employeeID uuid.UUID,
	typeID uuid.UUID,
	reportingManagerID uuid.UUID,
	startDate time.Time,
	endDate time.Time,
	session dateutil.Session,
	days float64,
	reason string,
	status Status,
	managerStatus Status,
	reviewerNote string,
	createdAt time.Time,
	updatedAt time.Time,
) LeaveRequest {
	return LeaveRequest{
		id:                 id,
		employeeID:         employeeID,
		typeID:             typeID,
		reportingManagerID: reportingManagerID,
		startDate:          startDate,
		endDate:            endDate,
		session:            session,
		days:               days,
		reason:             strings.TrimSpace(reason),
		status:             status,
		managerStatus:      managerStatus,
		reviewerNote:       strings.TrimSpace(reviewerNote),
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (l LeaveRequest) ID() uuid.UUID                 { return l.id }
func (l LeaveRequest) EmployeeID() uuid.UUID         { return l.employeeID }
func (l LeaveRequest) TypeID() uuid.UUID             { return l.typeID }
func (l LeaveRequest) ReportingManagerID() uuid.UUID { return l.reportingManagerID }
func (l LeaveRequest) StartDate() time.Time          { return l.startDate }
func (l LeaveRequest) EndDate() time.Time            { return l.endDate }
func (l LeaveRequest) Session() dateutil.Session     { return l.session }
func (l LeaveRequest) Days() float64                 { return l.days }
func (l LeaveRequest) Reason() string                { return l.reason }
func (l LeaveRequest) Status() Status                { return l.status }
func (l LeaveRequest) ManagerStatus() Status         { return l.managerStatus }
func (l LeaveRequest) ReviewerNote() string          { return l.reviewerNote }
func (l LeaveRequest) CreatedAt() time.Time          { return l.createdAt }
func (l LeaveRequest) UpdatedAt() time.Time          { return l.updatedAt }

// Reschedule replaces the type, range, session and reason of a pending
// request. The day count is re-derived from the new range; decided
// requests cannot be edited.
func (l *LeaveRequest) Reschedule(typeID uuid.UUID, startDate, endDate time.Time, session dateutil.Session, reason string) error {
	if l.status != StatusPending {
		return ErrInvalidTransition
	}
	days := dateutil.LeaveDays(startDate, endDate, session)
	if days <= 0 {
		return ErrInvalidRange
	}
	l.typeID = typeID
	l.startDate = dateutil.Midnight(startDate)
	l.endDate = dateutil.Midnight(endDate)
	l.session = session
	l.days = days
	l.reason = strings.TrimSpace(reason)
	return nil
}

// Approve moves a pending request to approved. The manager verdict and
// the overall status move together.
func (l *LeaveRequest) Approve(note string) error {
	if l.status != StatusPending {
		return ErrInvalidTransition
	}
	l.status = StatusApproved
	l.managerStatus = StatusApproved
	l.reviewerNote = strings.TrimSpace(note)
	return nil
}

// Reject moves a pending request to rejected.
func (l *LeaveRequest) Reject(note string) error {
	if l.status != StatusPending {
		return ErrInvalidTransition
	}
	l.status = StatusRejected
	l.managerStatus = StatusRejected
	l.reviewerNote = strings.TrimSpace(note)
	return nil
}

// Cancel withdraws a request that has not been finally declined. Approved
// requests may still be cancelled, which frees the reserved balance.
func (l *LeaveRequest) Cancel() error {
	if l.status != StatusPending && l.status != StatusApproved {
		return ErrInvalidTransition
	}
	l.status = StatusCancelled
	return nil
}
