package deal

import (
	"errors"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

type Stage string

const (
	StageNew      Stage = "New"
	StageProspect Stage = "Prospect"
	StageProposal Stage = "Proposal"
	StageWon      Stage = "Won"
)

// Stages returns the pipeline columns in board order.
func Stages() []Stage {
	return []Stage{StageNew, StageProspect, StageProposal, StageWon}
}

// ParseStage maps a raw string onto a pipeline stage. Unknown values land
// in the first column so no deal falls off the board.
func ParseStage(v string) Stage {
	for _, stage := range Stages() {
		if strings.EqualFold(strings.TrimSpace(v), string(stage)) {
			return stage
		}
	}
	return StageNew
}

var ErrUnknownStage = errors.New("unknown deal stage")

type Deal struct {
	id                uuid.UUID
	name              string
	companyID         uuid.UUID
	stage             Stage
	amount            int64
	currency          string
	probability       int
	expectedCloseDate time.Time
	owner             string
	createdAt         time.Time
	updatedAt         time.Time
}

func New(name string, companyID uuid.UUID, amount int64, currency string, probability int, expectedCloseDate time.Time, owner string) Deal {
	if strings.TrimSpace(currency) == "" {
		currency = money.USD
	}
	return Deal{
		name:              strings.TrimSpace(name),
		companyID:         companyID,
		stage:             StageNew,
		amount:            amount,
		currency:          currency,
		probability:       probability,
		expectedCloseDate: expectedCloseDate,
		owner:             strings.TrimSpace(owner),
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	companyID uuid.UUID,
	stage Stage,
	amount int64,
	currency string,
	probability int,
	expectedCloseDate time.Time,
	owner string,
	createdAt time.Time,
	updatedAt time.Time,
) Deal {
	return Deal{
		id:                id,
		name:              strings.TrimSpace(name),
		companyID:         companyID,
		stage:             stage,
		amount:            amount,
		currency:          currency,
		probability:       probability,
		expectedCloseDate: expectedCloseDate,
		owner:             strings.TrimSpace(owner),
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (d Deal) ID() uuid.UUID                { return d.id }
func (d Deal) Name() string                 { return d.name }
func (d Deal) CompanyID() uuid.UUID         { return d.companyID }
func (d Deal) Stage() Stage                 { return d.stage }
func (d Deal) Amount() int64                { return d.amount }
func (d Deal) Currency() string             { return d.currency }
func (d Deal) Probability() int             { return d.probability }
func (d Deal) ExpectedCloseDate() time.Time { return d.expectedCloseDate }
func (d Deal) Owner() string                { return d.owner }
func (d Deal) CreatedAt() time.Time         { return d.createdAt }
func (d Deal) UpdatedAt() time.Time         { return d.updatedAt }

// Value returns the deal amount as money in minor units.
func (d Deal) Value() *money.Money {
	return money.New(d.amount, d.currency)
}

// MoveStage transitions the deal to the target pipeline stage.
func (d *Deal) MoveStage(target Stage) error {
	for _, stage := range Stages() {
		if stage == target {
			d.stage = target
			return nil
		}
	}
	return ErrUnknownStage
}
