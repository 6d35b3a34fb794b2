package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

func Roles() []Role {
	return []Role{RoleAdmin, RoleHR, RoleEmployee}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type User struct {
	id           uuid.UUID
	firstName    string
	lastName     string
	email        string
	phone        string
	role         Role
	avatarURL    string
	status       Status
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

func New(firstName, lastName, email, phone string, role Role) User {
	return User{
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		email:     normalizeEmail(email),
		phone:     strings.TrimSpace(phone),
		role:      role,
		status:    StatusActive,
	}
}

func Hydrate(
	id uuid.UUID,
	firstName string,
	lastName string,
	email string,
	phone string,
	role Role,
	avatarURL string,
	status Status,
	passwordHash string,
	createdAt time.Time,
	updatedAt time.Time,
) User {
	return User{
		id:           id,
		firstName:    strings.TrimSpace(firstName),
		lastName:     strings.TrimSpace(lastName),
		email:        normalizeEmail(email),
		phone:        strings.TrimSpace(phone),
		role:         role,
		avatarURL:    strings.TrimSpace(avatarURL),
		status:       status,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u User) ID() uuid.UUID        { return u.id }
func (u User) FirstName() string    { return u.firstName }
func (u User) LastName() string     { return u.lastName }
func (u User) Email() string        { return u.email }
func (u User) Phone() string        { return u.phone }
func (u User) Role() Role           { return u.role }
func (u User) AvatarURL() string    { return u.avatarURL }
func (u User) Status() Status       { return u.status }
func (u User) PasswordHash() string { return u.passwordHash }
func (u User) CreatedAt() time.Time { return u.createdAt }
func (u User) UpdatedAt() time.Time { return u.updatedAt }
func (u User) IsZero() bool         { return u.id == uuid.Nil && u.email == "" }

func (u User) FullName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

// SetPassword hashes and stores the raw password.
func (u *User) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.passwordHash = string(hash)
	return nil
}

func (u User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(raw)) == nil
}

func (u *User) SetStatus(status Status) { u.status = status }

func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
