package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amasqis/hrms/modules/crm/domain/aggregates/deal"
	"github.com/amasqis/hrms/pkg/composables"
)

const (
	selectDealsQuery = `
		SELECT id, name, company_id, stage, amount, currency, probability, expected_close_date, owner, created_at, updated_at
		FROM deals`
	insertDealQuery = `
		INSERT INTO deals (id, name, company_id, stage, amount, currency, probability, expected_close_date, owner)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, name, company_id, stage, amount, currency, probability, expected_close_date, owner, created_at, updated_at`
	updateDealQuery = `
		UPDATE deals
		SET name = $2, company_id = $3, stage = $4, amount = $5, currency = $6, probability = $7, expected_close_date = $8, owner = $9, updated_at = now()
		WHERE id = $1
		RETURNING id, name, company_id, stage, amount, currency, probability, expected_close_date, owner, created_at, updated_at`
	deleteDealQuery = `DELETE FROM deals WHERE id = $1`
	countDealsQuery = `SELECT COUNT(*) FROM deals`
)

type DealRepository struct{}

func NewDealRepository() deal.Repository {
	return &DealRepository{}
}

func (r *DealRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, countDealsQuery).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "count deals")
	}
	return count, nil
}

func (r *DealRepository) GetAll(ctx context.Context) ([]deal.Deal, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectDealsQuery+` ORDER BY created_at ASC`)
	if err != nil {
		return nil, gerrors.Wrap(err, "query deals")
	}
	defer rows.Close()

	out := make([]deal.Deal, 0)
	for rows.Next() {
		entity, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (r *DealRepository) GetByID(ctx context.Context, id uuid.UUID) (deal.Deal, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return deal.Deal{}, err
	}
	entity, err := scanDeal(tx.QueryRow(ctx, selectDealsQuery+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return deal.Deal{}, deal.ErrNotFound
		}
		return deal.Deal{}, err
	}
	return entity, nil
}

func (r *DealRepository) Create(ctx context.Context, data deal.Deal) (deal.Deal, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return deal.Deal{}, err
	}
	created, err := scanDeal(tx.QueryRow(ctx, insertDealQuery,
		uuid.New(),
		data.Name(),
		nullableUUID(data.CompanyID()),
		string(data.Stage()),
		data.Amount(),
		data.Currency(),
		data.Probability(),
		nullableTime(data.ExpectedCloseDate()),
		data.Owner(),
	))
	if err != nil {
		return deal.Deal{}, gerrors.Wrap(err, "create deal")
	}
	return created, nil
}

func (r *DealRepository) Update(ctx context.Context, data deal.Deal) (deal.Deal, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return deal.Deal{}, err
	}
	updated, err := scanDeal(tx.QueryRow(ctx, updateDealQuery,
		data.ID(),
		data.Name(),
		nullableUUID(data.CompanyID()),
		string(data.Stage()),
		data.Amount(),
		data.Currency(),
		data.Probability(),
		nullableTime(data.ExpectedCloseDate()),
		data.Owner(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return deal.Deal{}, deal.ErrNotFound
		}
		return deal.Deal{}, gerrors.Wrap(err, "update deal")
	}
	return updated, nil
}

func (r *DealRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, deleteDealQuery, id)
	if err != nil {
		return gerrors.Wrap(err, "delete deal")
	}
	if tag.RowsAffected() == 0 {
		return deal.ErrNotFound
	}
	return nil
}

func scanDeal(row pgx.Row) (deal.Deal, error) {
	var (
		id                uuid.UUID
		name              string
		companyID         *uuid.UUID
		stage             string
		amount            int64
		currency          string
		probability       int
		expectedCloseDate *time.Time
		owner             string
		createdAt         time.Time
		updatedAt         time.Time
	)
	if err := row.Scan(&id, &name, &companyID, &stage, &amount, &currency, &probability, &expectedCloseDate, &owner, &createdAt, &updatedAt); err != nil {
		return deal.Deal{}, err
	}
	cid := uuid.Nil
	if companyID != nil {
		cid = *companyID
	}
	closeDate := time.Time{}
	if expectedCloseDate != nil {
		closeDate = *expectedCloseDate
	}
	return deal.Hydrate(
		id,
		name,
		cid,
		deal.Stage(stage),
		amount,
		currency,
		probability,
		closeDate,
		owner,
		createdAt,
		updatedAt,
	), nil
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
