package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amasqis/hrms/modules/crm/domain/aggregates/client"
	"github.com/amasqis/hrms/pkg/composables"
)

const (
	selectClientsQuery = `
		SELECT id, name, email, phone, company, status, created_at, updated_at
		FROM clients`
	insertClientQuery = `
		INSERT INTO clients (id, name, email, phone, company, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, phone, company, status, created_at, updated_at`
	updateClientQuery = `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, company = $5, status = $6, updated_at = now()
		WHERE id = $1
		RETURNING id, name, email, phone, company, status, created_at, updated_at`
	deleteClientQuery = `DELETE FROM clients WHERE id = $1`
	countClientsQuery = `SELECT COUNT(*) FROM clients`
)

type ClientRepository struct{}

func NewClientRepository() client.Repository {
	return &ClientRepository{}
}

func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, countClientsQuery).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "count clients")
	}
	return count, nil
}

func (r *ClientRepository) GetAll(ctx context.Context) ([]client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectClientsQuery+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, gerrors.Wrap(err, "query clients")
	}
	defer rows.Close()

	out := make([]client.Client, 0)
	for rows.Next() {
		entity, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return client.Client{}, err
	}
	entity, err := scanClient(tx.QueryRow(ctx, selectClientsQuery+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrNotFound
		}
		return client.Client{}, err
	}
	return entity, nil
}

func (r *ClientRepository) Create(ctx context.Context, data client.Client) (client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return client.Client{}, err
	}
	created, err := scanClient(tx.QueryRow(ctx, insertClientQuery,
		uuid.New(),
		data.Name(),
		data.Email(),
		data.Phone(),
		data.Company(),
		string(data.Status()),
	))
	if err != nil {
		return client.Client{}, gerrors.Wrap(err, "create client")
	}
	return created, nil
}

func (r *ClientRepository) Update(ctx context.Context, data client.Client) (client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return client.Client{}, err
	}
	updated, err := scanClient(tx.QueryRow(ctx, updateClientQuery,
		data.ID(),
		data.Name(),
		data.Email(),
		data.Phone(),
		data.Company(),
		string(data.Status()),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrNotFound
		}
		return client.Client{}, gerrors.Wrap(err, "update client")
	}
	return updated, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, deleteClientQuery, id)
	if err != nil {
		return gerrors.Wrap(err, "delete client")
	}
	if tag.RowsAffected() == 0 {
		return client.ErrNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (client.Client, error) {
	var (
		id        uuid.UUID
		name      string
		email     string
		phone     string
		company   string
		status    string
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &email, &phone, &company, &status, &createdAt, &updatedAt); err != nil {
		return client.Client{}, err
	}
	return client.Hydrate(
		id,
		name,
		email,
		phone,
		company,
		client.Status(status),
		createdAt,
		updatedAt,
	), nil
}
