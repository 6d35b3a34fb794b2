package forms

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
)

func registrationRules() []Rule {
	return []Rule{
		Required("firstName", "First name"),
		Required("email", "Email"),
		Email("email", "Email"),
		MinLen("password", "Password", 8),
		MatchesField("confirmPassword", "password", "Confirm password"),
	}
}

func TestDraftLifecycle(t *testing.T) {
	d := NewDraft(registrationRules())
	require.Equal(t, StateEmpty, d.State())

	d.SetField("firstName", "Ada")
	require.Equal(t, StateEditing, d.State())

	d.Reset()
	require.Equal(t, StateEmpty, d.State())
	require.Empty(t, d.Field("firstName"))
}

func TestValidateFailFastFirstRuleWins(t *testing.T) {
	d := NewDraft(registrationRules())
	// Everything is missing; only the first rule's message surfaces.
	err := d.Validate()
	require.EqualError(t, err, "First name is required")
}

func TestSubmitRejectsPasswordMismatchBeforeDelegate(t *testing.T) {
	d := NewDraft(registrationRules())
	d.SetField("firstName", "Ada")
	d.SetField("email", "ada@example.com")
	d.SetField("password", "hunter2hunter2")
	d.SetField("confirmPassword", "different")

	called := false
	err := d.Submit(context.Background(), func(ctx context.Context, fields map[string]string) error {
		called = true
		return nil
	})
	require.EqualError(t, err, "Confirm password does not match")
	require.False(t, called, "delegate must not run when validation fails")
	require.Equal(t, StateEditing, d.State())
}

func TestSubmitSuccessResetsDraft(t *testing.T) {
	d := NewDraft(registrationRules())
	d.SetField("firstName", "Ada")
	d.SetField("email", "ada@example.com")
	d.SetField("password", "hunter2hunter2")
	d.SetField("confirmPassword", "hunter2hunter2")

	err := d.Submit(context.Background(), func(ctx context.Context, fields map[string]string) error {
		require.Equal(t, "Ada", fields["firstName"])
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, StateEmpty, d.State())
	require.Empty(t, d.Field("email"))
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	d := NewDraft(registrationRules())
	d.SetField("firstName", "Ada")
	d.SetField("email", "ada@example.com")
	d.SetField("password", "hunter2hunter2")
	d.SetField("confirmPassword", "hunter2hunter2")

	submitErr := errors.New("server unavailable")
	err := d.Submit(context.Background(), func(ctx context.Context, fields map[string]string) error {
		return submitErr
	})
	require.ErrorIs(t, err, submitErr)
	require.Equal(t, StateFailed, d.State())
	require.Equal(t, "Ada", d.Field("firstName"), "fields kept for correction")
	require.ErrorIs(t, d.LastError(), submitErr)

	// Editing again leaves the failed state.
	d.SetField("firstName", "Ada L.")
	require.Equal(t, StateEditing, d.State())
}

func TestEmailRuleSkipsEmptyValue(t *testing.T) {
	d := NewDraft([]Rule{Email("email", "Email")})
	require.NoError(t, d.Validate())

	d.SetField("email", "not-an-email")
	require.Error(t, d.Validate())
}
