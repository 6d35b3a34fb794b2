package company

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Company struct {
	id        uuid.UUID
	name      string
	email     string
	phone     string
	location  string
	owner     string
	rating    float64
	contacts  int
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func New(name, email, phone, location, owner string, rating float64) Company {
	return Company{
		name:     strings.TrimSpace(name),
		email:    strings.ToLower(strings.TrimSpace(email)),
		phone:    strings.TrimSpace(phone),
		location: strings.TrimSpace(location),
		owner:    strings.TrimSpace(owner),
		rating:   rating,
		status:   StatusActive,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	email string,
	phone string,
	location string,
	owner string,
	rating float64,
	contacts int,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) Company {
	return Company{
		id:        id,
		name:      strings.TrimSpace(name),
		email:     strings.ToLower(strings.TrimSpace(email)),
		phone:     strings.TrimSpace(phone),
		location:  strings.TrimSpace(location),
		owner:     strings.TrimSpace(owner),
		rating:    rating,
		contacts:  contacts,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c Company) ID() uuid.UUID        { return c.id }
func (c Company) Name() string         { return c.name }
func (c Company) Email() string        { return c.email }
func (c Company) Phone() string        { return c.phone }
func (c Company) Location() string     { return c.location }
func (c Company) Owner() string        { return c.owner }
func (c Company) Rating() float64      { return c.rating }
func (c Company) Contacts() int        { return c.contacts }
func (c Company) Status() Status       { return c.status }
func (c Company) CreatedAt() time.Time { return c.createdAt }
func (c Company) UpdatedAt() time.Time { return c.updatedAt }
