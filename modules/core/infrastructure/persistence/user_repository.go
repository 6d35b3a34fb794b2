package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/amasqis/hrms/modules/core/domain/aggregates/user"
	"github.com/amasqis/hrms/pkg/composables"
)

const (
	selectUsersQuery = `
		SELECT id, first_name, last_name, email, phone, role, avatar_url, status, password_hash, created_at, updated_at
		FROM users`
	insertUserQuery = `
		INSERT INTO users (id, first_name, last_name, email, phone, role, avatar_url, status, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, first_name, last_name, email, phone, role, avatar_url, status, password_hash, created_at, updated_at`
	updateUserQuery = `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, phone = $5, role = $6, avatar_url = $7, status = $8, updated_at = now()
		WHERE id = $1
		RETURNING id, first_name, last_name, email, phone, role, avatar_url, status, password_hash, created_at, updated_at`
	updateUserPasswordQuery = `
		UPDATE users
		SET password_hash = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, first_name, last_name, email, phone, role, avatar_url, status, password_hash, created_at, updated_at`
	deleteUserQuery = `DELETE FROM users WHERE id = $1`
	countUsersQuery = `SELECT COUNT(*) FROM users`
)

type UserRepository struct{}

func NewUserRepository() user.Repository {
	return &UserRepository{}
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, countUsersQuery).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "count users")
	}
	return count, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]user.User, error) {
	return r.query(ctx, selectUsersQuery+` ORDER BY created_at DESC`)
}

func (r *UserRepository) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	if params == nil {
		params = &user.FindParams{}
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	return r.query(ctx, selectUsersQuery+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.queryOne(ctx, selectUsersQuery+` WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.queryOne(ctx, selectUsersQuery+` WHERE email = $1`, email)
}

func (r *UserRepository) Create(ctx context.Context, data user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}
	row := tx.QueryRow(ctx, insertUserQuery,
		uuid.New(),
		data.FirstName(),
		data.LastName(),
		data.Email(),
		data.Phone(),
		string(data.Role()),
		data.AvatarURL(),
		string(data.Status()),
		data.PasswordHash(),
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, gerrors.Wrap(err, "create user")
	}
	return created, nil
}

func (r *UserRepository) Update(ctx context.Context, data user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}
	row := tx.QueryRow(ctx, updateUserQuery,
		data.ID(),
		data.FirstName(),
		data.LastName(),
		data.Email(),
		data.Phone(),
		string(data.Role()),
		data.AvatarURL(),
		string(data.Status()),
	)
	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, gerrors.Wrap(err, "update user")
	}
	return updated, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}
	updated, err := scanUser(tx.QueryRow(ctx, updateUserPasswordQuery, id, passwordHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, gerrors.Wrap(err, "update user password")
	}
	return updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, deleteUserQuery, id)
	if err != nil {
		return gerrors.Wrap(err, "delete user")
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) query(ctx context.Context, sql string, args ...any) ([]user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "query users")
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		entity, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (r *UserRepository) queryOne(ctx context.Context, sql string, args ...any) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}
	entity, err := scanUser(tx.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return entity, nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var (
		id           uuid.UUID
		firstName    string
		lastName     string
		email        string
		phone        string
		role         string
		avatarURL    string
		status       string
		passwordHash string
		createdAt    time.Time
		updatedAt    time.Time
	)
	if err := row.Scan(&id, &firstName, &lastName, &email, &phone, &role, &avatarURL, &status, &passwordHash, &createdAt, &updatedAt); err != nil {
		return user.User{}, err
	}
	return user.Hydrate(
		id,
		firstName,
		lastName,
		email,
		phone,
		user.Role(role),
		avatarURL,
		user.Status(status),
		passwordHash,
		createdAt,
		updatedAt,
	), nil
}
