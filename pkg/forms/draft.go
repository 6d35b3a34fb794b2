// Package forms owns the transient state of one in-progress create/edit
// action: field values, fail-fast validation, and a single-flight submit.
package forms

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-faster/errors"
)

// State of a draft. Terminal state is Empty (after success or cancel).
type State string

const (
	StateEmpty      State = "empty"
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateFailed     State = "failed"
)

var ErrSubmitInFlight = errors.New("a submission is already in progress")

// Rule is one ordered required-field check. The first failing rule wins.
type Rule struct {
	Field string
	Check func(draft *Draft, value string) error
}

// Draft holds pending form field values keyed by field name.
type Draft struct {
	fields  map[string]string
	rules   []Rule
	state   State
	lastErr error
}

func NewDraft(rules []Rule) *Draft {
	return &Draft{
		fields: map[string]string{},
		rules:  rules,
		state:  StateEmpty,
	}
}

func (d *Draft) State() State { return d.state }

// LastError returns the error surfaced by the most recent failed submit.
func (d *Draft) LastError() error { return d.lastErr }

func (d *Draft) Field(name string) string { return d.fields[name] }

func (d *Draft) SetField(name, value string) {
	d.fields[name] = value
	if d.state == StateEmpty || d.state == StateFailed {
		d.state = StateEditing
	}
}

// Reset discards the draft; used on cancel and after a successful submit.
func (d *Draft) Reset() {
	d.fields = map[string]string{}
	d.state = StateEmpty
	d.lastErr = nil
}

// Validate runs the ordered rules and returns the FIRST violation only.
func (d *Draft) Validate() error {
	for _, rule := range d.rules {
		if err := rule.Check(d, d.fields[rule.Field]); err != nil {
			return err
		}
	}
	return nil
}

// Submit validates and then delegates to fn. On success the draft resets;
// on failure it is preserved unchanged for correction. Only one submission
// may be outstanding at a time; there are no automatic retries.
func (d *Draft) Submit(ctx context.Context, fn func(ctx context.Context, fields map[string]string) error) error {
	if d.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	if err := d.Validate(); err != nil {
		d.state = StateEditing
		return err
	}

	d.state = StateSubmitting
	payload := make(map[string]string, len(d.fields))
	for k, v := range d.fields {
		payload[k] = v
	}

	if err := fn(ctx, payload); err != nil {
		d.state = StateFailed
		d.lastErr = err
		return err
	}

	d.Reset()
	return nil
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required fails when the field is empty or whitespace.
func Required(field, label string) Rule {
	return Rule{Field: field, Check: func(_ *Draft, value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.Errorf("%s is required", label)
		}
		return nil
	}}
}

func Email(field, label string) Rule {
	return Rule{Field: field, Check: func(_ *Draft, value string) error {
		if value != "" && !emailPattern.MatchString(value) {
			return errors.Errorf("%s must be a valid email address", label)
		}
		return nil
	}}
}

func MinLen(field, label string, n int) Rule {
	return Rule{Field: field, Check: func(_ *Draft, value string) error {
		if utf8.RuneCountInString(value) < n {
			return errors.Errorf("%s must be at least %d characters", label, n)
		}
		return nil
	}}
}

// MatchesField enforces equality with another field, e.g. password and
// confirmPassword.
func MatchesField(field, other, label string) Rule {
	return Rule{Field: field, Check: func(d *Draft, value string) error {
		if value != d.Field(other) {
			return errors.Errorf("%s does not match", label)
		}
		return nil
	}}
}
