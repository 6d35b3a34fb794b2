package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amasqis/hrms/modules/crm/domain/aggregates/company"
	"github.com/amasqis/hrms/pkg/composables"
)

const (
	selectCompaniesQuery = `
		SELECT id, name, email, phone, location, owner, rating, contacts, status, created_at, updated_at
		FROM companies`
	insertCompanyQuery = `
		INSERT INTO companies (id, name, email, phone, location, owner, rating, contacts, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, name, email, phone, location, owner, rating, contacts, status, created_at, updated_at`
	updateCompanyQuery = `
		UPDATE companies
		SET name = $2, email = $3, phone = $4, location = $5, owner = $6, rating = $7, status = $8, updated_at = now()
		WHERE id = $1
		RETURNING id, name, email, phone, location, owner, rating, contacts, status, created_at, updated_at`
	deleteCompanyQuery = `DELETE FROM companies WHERE id = $1`
	countCompaniesQuery = `SELECT COUNT(*) FROM companies`
)

type CompanyRepository struct{}

func NewCompanyRepository() company.Repository {
	return &CompanyRepository{}
}

func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, countCompaniesQuery).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "count companies")
	}
	return count, nil
}

func (r *CompanyRepository) GetAll(ctx context.Context) ([]company.Company, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectCompaniesQuery+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, gerrors.Wrap(err, "query companies")
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		entity, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return company.Company{}, err
	}
	entity, err := scanCompany(tx.QueryRow(ctx, selectCompaniesQuery+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	return entity, nil
}

func (r *CompanyRepository) Create(ctx context.Context, data company.Company) (company.Company, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return company.Company{}, err
	}
	created, err := scanCompany(tx.QueryRow(ctx, insertCompanyQuery,
		uuid.New(),
		data.Name(),
		data.Email(),
		data.Phone(),
		data.Location(),
		data.Owner(),
		data.Rating(),
		data.Contacts(),
		string(data.Status()),
	))
	if err != nil {
		return company.Company{}, gerrors.Wrap(err, "create company")
	}
	return created, nil
}

func (r *CompanyRepository) Update(ctx context.Context, data company.Company) (company.Company, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return company.Company{}, err
	}
	updated, err := scanCompany(tx.QueryRow(ctx, updateCompanyQuery,
		data.ID(),
		data.Name(),
		data.Email(),
		data.Phone(),
		data.Location(),
		data.Owner(),
		data.Rating(),
		string(data.Status()),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, gerrors.Wrap(err, "update company")
	}
	return updated, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, deleteCompanyQuery, id)
	if err != nil {
		return gerrors.Wrap(err, "delete company")
	}
	if tag.RowsAffected() == 0 {
		return company.ErrNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (company.Company, error) {
	var (
		id        uuid.UUID
		name      string
		email     string
		phone     string
		location  string
		owner     string
		rating    float64
		contacts  int
		status    string
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &email, &phone, &location, &owner, &rating, &contacts, &status, &createdAt, &updatedAt); err != nil {
		return company.Company{}, err
	}
	return company.Hydrate(
		id,
		name,
		email,
		phone,
		location,
		owner,
		rating,
		contacts,
		company.Status(status),
		createdAt,
		updatedAt,
	), nil
}
