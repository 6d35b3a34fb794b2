package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/amasqis/hrms/modules/core/domain/aggregates/user"
)

type mockUserRepo struct {
	users   map[uuid.UUID]user.User
	created []user.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]user.User)}
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) GetAll(ctx context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	return m.GetAll(ctx)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, data user.User) (user.User, error) {
	for _, u := range m.users {
		if u.Email() == data.Email() {
			return user.User{}, user.ErrEmailTaken
		}
	}
	created := user.Hydrate(
		uuid.New(),
		data.FirstName(),
		data.LastName(),
		data.Email(),
		data.Phone(),
		data.Role(),
		data.AvatarURL(),
		data.Status(),
		data.PasswordHash(),
		data.CreatedAt(),
		data.UpdatedAt(),
	)
	m.users[created.ID()] = created
	m.created = append(m.created, created)
	return created, nil
}

func (m *mockUserRepo) Update(ctx context.Context, data user.User) (user.User, error) {
	if _, ok := m.users[data.ID()]; !ok {
		return user.User{}, user.ErrNotFound
	}
	m.users[data.ID()] = data
	return data, nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (user.User, error) {
	existing, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	updated := user.Hydrate(
		existing.ID(),
		existing.FirstName(),
		existing.LastName(),
		existing.Email(),
		existing.Phone(),
		existing.Role(),
		existing.AvatarURL(),
		existing.Status(),
		passwordHash,
		existing.CreatedAt(),
		existing.UpdatedAt(),
	)
	m.users[id] = updated
	return updated, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type stubPublisher struct {
	published []interface{}
}

func (s *stubPublisher) Publish(args ...interface{})     { s.published = append(s.published, args...) }
func (s *stubPublisher) Subscribe(handler interface{})   {}
func (s *stubPublisher) Unsubscribe(handler interface{}) {}
func (s *stubPublisher) Clear()                          {}
func (s *stubPublisher) SubscribersCount() int           { return 0 }

func TestUserService_CreateHashesPassword(t *testing.T) {
	repo := newMockUserRepo()
	publisher := &stubPublisher{}
	svc := NewUserService(repo, publisher)

	created, err := svc.Create(context.Background(), &user.CreateDTO{
		FirstName:       "Ava",
		LastName:        "Stone",
		Email:           "Ava.Stone@Example.com",
		Role:            "hr",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	})
	require.NoError(t, err)
	require.Equal(t, "ava.stone@example.com", created.Email())
	require.NotEqual(t, "s3cret-pass", created.PasswordHash())
	require.True(t, created.CheckPassword("s3cret-pass"))
	require.False(t, created.CheckPassword("wrong"))
	require.Len(t, publisher.published, 1)
	require.IsType(t, &user.CreatedEvent{}, publisher.published[0])
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, &stubPublisher{})

	dto := &user.CreateDTO{
		FirstName:       "Ava",
		LastName:        "Stone",
		Email:           "ava@example.com",
		Role:            "hr",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	}
	_, err := svc.Create(context.Background(), dto)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto)
	require.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestUserService_UpdateMissingUser(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), &stubPublisher{})

	_, err := svc.Update(context.Background(), uuid.New(), &user.UpdateDTO{
		FirstName: "Ava",
		LastName:  "Stone",
		Email:     "ava@example.com",
		Role:      "hr",
		Status:    "active",
	})
	require.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, &stubPublisher{})

	created, err := svc.Create(context.Background(), &user.CreateDTO{
		FirstName:       "Ava",
		LastName:        "Stone",
		Email:           "ava@example.com",
		Role:            "hr",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	})
	require.NoError(t, err)

	updated, err := svc.ChangePassword(context.Background(), created.ID(), &user.ChangePasswordDTO{
		Password:        "brand-new-pass",
		ConfirmPassword: "brand-new-pass",
	})
	require.NoError(t, err)
	require.True(t, updated.CheckPassword("brand-new-pass"))
	require.False(t, updated.CheckPassword("s3cret-pass"))
}

func TestUserService_DeletePublishesEvent(t *testing.T) {
	repo := newMockUserRepo()
	publisher := &stubPublisher{}
	svc := NewUserService(repo, publisher)

	created, err := svc.Create(context.Background(), &user.CreateDTO{
		FirstName:       "Ava",
		LastName:        "Stone",
		Email:           "ava@example.com",
		Role:            "admin",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID())
	require.NoError(t, err)
	require.Equal(t, created.ID(), deleted.ID())
	require.IsType(t, &user.DeletedEvent{}, publisher.published[len(publisher.published)-1])

	_, err = svc.GetByID(context.Background(), created.ID())
	require.ErrorIs(t, err, user.ErrNotFound)
}
