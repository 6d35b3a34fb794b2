package ticket

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("ticket not found")
	ErrInvalidTransition = errors.New("invalid ticket status transition")
	ErrNumberTaken       = errors.New("ticket number already taken")
)

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// SLA returns the resolution window granted by the priority. Unknown
// priorities get the Medium window.
func (p Priority) SLA() time.Duration {
	switch p {
	case PriorityCritical:
		return 4 * time.Hour
	case PriorityHigh:
		return 8 * time.Hour
	case PriorityLow:
		return 72 * time.Hour
	default:
		return 24 * time.Hour
	}
}

type Status string

const (
	StatusOpen       Status = "Open"
	StatusAssigned   Status = "Assigned"
	StatusInProgress Status = "In Progress"
	StatusOnHold     Status = "On Hold"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
	StatusReopened   Status = "Reopened"
)

// transitions lists the statuses reachable from each status. Reopened
// is only reachable once a ticket has been resolved or closed.
var transitions = map[Status][]Status{
	StatusOpen:       {StatusAssigned, StatusInProgress, StatusOnHold, StatusClosed},
	StatusAssigned:   {StatusInProgress, StatusOnHold, StatusResolved, StatusClosed},
	StatusInProgress: {StatusOnHold, StatusResolved, StatusClosed},
	StatusOnHold:     {StatusInProgress, StatusResolved, StatusClosed},
	StatusResolved:   {StatusClosed, StatusReopened},
	StatusClosed:     {StatusReopened},
	StatusReopened:   {StatusAssigned, StatusInProgress, StatusResolved, StatusClosed},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusChange is one entry in a ticket's audit trail.
type StatusChange struct {
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
	Note      string    `json:"note,omitempty"`
}

type Comment struct {
	Text       string    `json:"text"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	IsInternal bool      `json:"is_internal"`
}

type Ticket struct {
	id          uuid.UUID
	number      string
	title       string
	description string
	category    string
	subCategory string
	priority    Priority
	status      Status
	assignedTo  string
	createdBy   string
	tags        []string
	dueDate     time.Time
	slaDeadline time.Time
	history     []StatusChange
	comments    []Comment
	closedAt    time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// newTicketNumber derives a short human-facing reference. Uniqueness is
// enforced by the store.
func newTicketNumber() string {
	return "TKT-" + strings.ToUpper(uuid.NewString()[:4])
}

func New(title, description, category, subCategory, createdBy string, priority Priority, dueDate time.Time) Ticket {
	if priority == "" {
		priority = PriorityMedium
	}
	now := time.Now()
	return Ticket{
		number:      newTicketNumber(),
		title:       strings.TrimSpace(title),
		description: strings.TrimSpace(description),
		category:    strings.TrimSpace(category),
		subCategory: strings.TrimSpace(subCategory),
		priority:    priority,
		status:      StatusOpen,
		createdBy:   strings.TrimSpace(createdBy),
		dueDate:     dueDate,
		slaDeadline: now.Add(priority.SLA()),
		createdAt:   now,
	}
}

func Hydrate(
	id uuid.UUID,
	number string,
	title string,
	description string,
	category string,
	subCategory string,
	priority Priority,
	status Status,
	assignedTo string,
	createdBy string,
	tags []string,
	dueDate time.Time,
	slaDeadline time.Time,
	history []StatusChange,
	comments []Comment,
	closedAt time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) Ticket {
	return Ticket{
		id:          id,
		number:      number,
		title:       title,
		description: description,
		category:    category,
		subCategory: subCategory,
		priority:    priority,
		status:      status,
		assignedTo:  assignedTo,
		createdBy:   createdBy,
		tags:        tags,
		dueDate:     dueDate,
		slaDeadline: slaDeadline,
		history:     history,
		comments:    comments,
		closedAt:    closedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (t Ticket) ID() uuid.UUID           { return t.id }
func (t Ticket) Number() string          { return t.number }
func (t Ticket) Title() string           { return t.title }
func (t Ticket) Description() string     { return t.description }
func (t Ticket) Category() string        { return t.category }
func (t Ticket) SubCategory() string     { return t.subCategory }
func (t Ticket) Priority() Priority      { return t.priority }
func (t Ticket) Status() Status          { return t.status }
func (t Ticket) AssignedTo() string      { return t.assignedTo }
func (t Ticket) CreatedBy() string       { return t.createdBy }
func (t Ticket) Tags() []string          { return t.tags }
func (t Ticket) DueDate() time.Time      { return t.dueDate }
func (t Ticket) SLADeadline() time.Time  { return t.slaDeadline }
func (t Ticket) History() []StatusChange { return t.history }
func (t Ticket) Comments() []Comment     { return t.comments }
func (t Ticket) ClosedAt() time.Time     { return t.closedAt }
func (t Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t Ticket) UpdatedAt() time.Time    { return t.updatedAt }

// ChangeStatus validates the transition and appends it to the audit
// trail. Closing stamps closedAt, reopening clears it.
func (t Ticket) ChangeStatus(to Status, changedBy, note string) (Ticket, error) {
	if !CanTransition(t.status, to) {
		return Ticket{}, ErrInvalidTransition
	}
	now := time.Now()
	t.history = append(append([]StatusChange(nil), t.history...), StatusChange{
		From:      t.status,
		To:        to,
		ChangedBy: changedBy,
		ChangedAt: now,
		Note:      note,
	})
	t.status = to
	switch to {
	case StatusClosed:
		t.closedAt = now
	case StatusReopened:
		t.closedAt = time.Time{}
	}
	return t, nil
}

// Assign sets the assignee and, for fresh tickets, records the
// Open→Assigned transition.
func (t Ticket) Assign(assignee, changedBy string) (Ticket, error) {
	assignee = strings.TrimSpace(assignee)
	if t.status == StatusOpen {
		changed, err := t.ChangeStatus(StatusAssigned, changedBy, "assigned to "+assignee)
		if err != nil {
			return Ticket{}, err
		}
		t = changed
	}
	t.assignedTo = assignee
	return t, nil
}

func (t Ticket) AddComment(text, author string, isInternal bool) Ticket {
	t.comments = append(append([]Comment(nil), t.comments...), Comment{
		Text:       strings.TrimSpace(text),
		Author:     strings.TrimSpace(author),
		CreatedAt:  time.Now(),
		IsInternal: isInternal,
	})
	return t
}

func (t Ticket) WithTags(tags []string) Ticket {
	t.tags = tags
	return t
}

type FindParams struct {
	Status   Status
	Priority Priority
}

type Repository interface {
	GetAll(ctx context.Context, params *FindParams) ([]Ticket, error)
	GetByID(ctx context.Context, id uuid.UUID) (Ticket, error)
	Create(ctx context.Context, data Ticket) (Ticket, error)
	Update(ctx context.Context, data Ticket) (Ticket, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatedEvent struct {
	Result Ticket
}

type UpdatedEvent struct {
	Result Ticket
}

type StatusChangedEvent struct {
	From   Status
	Result Ticket
}

type CommentAddedEvent struct {
	Result Ticket
}

type DeletedEvent struct {
	Result Ticket
}
