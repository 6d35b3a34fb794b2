package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateDTO_PasswordMismatch(t *testing.T) {
	dto := &CreateDTO{
		FirstName:       "Ava",
		LastName:        "Stone",
		Email:           "ava@example.com",
		Role:            "hr",
		Password:        "s3cret-pass",
		ConfirmPassword: "different",
	}
	errs, ok := dto.Ok(context.Background())
	require.False(t, ok)
	require.Contains(t, errs, "ConfirmPassword")
}

func TestCreateDTO_NormalizesEmail(t *testing.T) {
	dto := &CreateDTO{
		FirstName:       " Ava ",
		LastName:        "Stone",
		Email:           "  AVA@Example.com ",
		Role:            "hr",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	}
	_, ok := dto.Ok(context.Background())
	require.True(t, ok)
	require.Equal(t, "ava@example.com", dto.Email)
	require.Equal(t, "Ava", dto.FirstName)
}

func TestCreateDTO_RejectsUnknownRole(t *testing.T) {
	dto := &CreateDTO{
		FirstName:       "Ava",
		LastName:        "Stone",
		Email:           "ava@example.com",
		Role:            "superuser",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	}
	errs, ok := dto.Ok(context.Background())
	require.False(t, ok)
	require.Contains(t, errs, "Role")
}
