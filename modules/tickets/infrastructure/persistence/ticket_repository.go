package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/amasqis/hrms/modules/tickets/domain/aggregates/ticket"
	"github.com/amasqis/hrms/pkg/composables"
)

const (
	selectTicketsQuery = `
		SELECT id, number, title, description, category, sub_category, priority, status, assigned_to, created_by,
		       tags, due_date, sla_deadline, status_history, comments, closed_at, created_at, updated_at
		FROM tickets`
	insertTicketQuery = `
		INSERT INTO tickets (id, number, title, description, category, sub_category, priority, status, assigned_to, created_by,
		                     tags, due_date, sla_deadline, status_history, comments, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, number, title, description, category, sub_category, priority, status, assigned_to, created_by,
		          tags, due_date, sla_deadline, status_history, comments, closed_at, created_at, updated_at`
	updateTicketQuery = `
		UPDATE tickets
		SET title = $2, description = $3, category = $4, sub_category = $5, priority = $6, status = $7,
		    assigned_to = $8, tags = $9, due_date = $10, status_history = $11, comments = $12, closed_at = $13,
		    updated_at = now()
		WHERE id = $1
		RETURNING id, number, title, description, category, sub_category, priority, status, assigned_to, created_by,
		          tags, due_date, sla_deadline, status_history, comments, closed_at, created_at, updated_at`
	deleteTicketQuery = `DELETE FROM tickets WHERE id = $1`
)

type TicketRepository struct{}

func NewTicketRepository() ticket.Repository {
	return &TicketRepository{}
}

func (r *TicketRepository) GetAll(ctx context.Context, params *ticket.FindParams) ([]ticket.Ticket, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := selectTicketsQuery
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if params != nil {
		if params.Status != "" {
			args = append(args, string(params.Status))
			where = append(where, "status = $"+strconv.Itoa(len(args)))
		}
		if params.Priority != "" {
			args = append(args, string(params.Priority))
			where = append(where, "priority = $"+strconv.Itoa(len(args)))
		}
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "query tickets")
	}
	defer rows.Close()

	out := make([]ticket.Ticket, 0)
	for rows.Next() {
		entity, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (ticket.Ticket, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return ticket.Ticket{}, err
	}
	entity, err := scanTicket(tx.QueryRow(ctx, selectTicketsQuery+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.Ticket{}, ticket.ErrNotFound
		}
		return ticket.Ticket{}, err
	}
	return entity, nil
}

func (r *TicketRepository) Create(ctx context.Context, data ticket.Ticket) (ticket.Ticket, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return ticket.Ticket{}, err
	}
	history, comments, err := marshalTrail(data)
	if err != nil {
		return ticket.Ticket{}, err
	}
	created, err := scanTicket(tx.QueryRow(ctx, insertTicketQuery,
		uuid.New(),
		data.Number(),
		data.Title(),
		data.Description(),
		data.Category(),
		data.SubCategory(),
		string(data.Priority()),
		string(data.Status()),
		data.AssignedTo(),
		data.CreatedBy(),
		data.Tags(),
		nullableTime(data.DueDate()),
		data.SLADeadline(),
		history,
		comments,
		nullableTime(data.ClosedAt()),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ticket.Ticket{}, ticket.ErrNumberTaken
		}
		return ticket.Ticket{}, gerrors.Wrap(err, "create ticket")
	}
	return created, nil
}

func (r *TicketRepository) Update(ctx context.Context, data ticket.Ticket) (ticket.Ticket, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return ticket.Ticket{}, err
	}
	history, comments, err := marshalTrail(data)
	if err != nil {
		return ticket.Ticket{}, err
	}
	updated, err := scanTicket(tx.QueryRow(ctx, updateTicketQuery,
		data.ID(),
		data.Title(),
		data.Description(),
		data.Category(),
		data.SubCategory(),
		string(data.Priority()),
		string(data.Status()),
		data.AssignedTo(),
		data.Tags(),
		nullableTime(data.DueDate()),
		history,
		comments,
		nullableTime(data.ClosedAt()),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.Ticket{}, ticket.ErrNotFound
		}
		return ticket.Ticket{}, gerrors.Wrap(err, "update ticket")
	}
	return updated, nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, deleteTicketQuery, id)
	if err != nil {
		return gerrors.Wrap(err, "delete ticket")
	}
	if tag.RowsAffected() == 0 {
		return ticket.ErrNotFound
	}
	return nil
}

func marshalTrail(data ticket.Ticket) ([]byte, []byte, error) {
	history, err := json.Marshal(data.History())
	if err != nil {
		return nil, nil, gerrors.Wrap(err, "marshal status history")
	}
	comments, err := json.Marshal(data.Comments())
	if err != nil {
		return nil, nil, gerrors.Wrap(err, "marshal comments")
	}
	return history, comments, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func scanTicket(row pgx.Row) (ticket.Ticket, error) {
	var (
		id          uuid.UUID
		number      string
		title       string
		description string
		category    string
		subCategory string
		priority    string
		status      string
		assignedTo  string
		createdBy   string
		tags        []string
		dueDate     *time.Time
		slaDeadline time.Time
		rawHistory  []byte
		rawComments []byte
		closedAt    *time.Time
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&id, &number, &title, &description, &category, &subCategory, &priority, &status, &assignedTo, &createdBy,
		&tags, &dueDate, &slaDeadline, &rawHistory, &rawComments, &closedAt, &createdAt, &updatedAt); err != nil {
		return ticket.Ticket{}, err
	}

	var history []ticket.StatusChange
	if len(rawHistory) > 0 {
		if err := json.Unmarshal(rawHistory, &history); err != nil {
			return ticket.Ticket{}, gerrors.Wrap(err, "unmarshal status history")
		}
	}
	var comments []ticket.Comment
	if len(rawComments) > 0 {
		if err := json.Unmarshal(rawComments, &comments); err != nil {
			return ticket.Ticket{}, gerrors.Wrap(err, "unmarshal comments")
		}
	}

	return ticket.Hydrate(
		id,
		number,
		title,
		description,
		category,
		subCategory,
		ticket.Priority(priority),
		ticket.Status(status),
		assignedTo,
		createdBy,
		tags,
		timeOrZero(dueDate),
		slaDeadline,
		history,
		comments,
		timeOrZero(closedAt),
		createdAt,
		updatedAt,
	), nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
