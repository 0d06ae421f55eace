package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	type request struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=6"`
		Role     string `validate:"required,oneof=student admin"`
		Capacity int    `validate:"gt=0"`
		Student  string `validate:"uuid"`
	}

	err := validator.New().Struct(request{
		Email:    "not-an-email",
		Password: "123",
		Role:     "warden",
		Capacity: 0,
		Student:  "abc",
	})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Password must be at least 6 characters")
	assert.Contains(t, resp.Error, "field Role must be one of: student admin")
	assert.Contains(t, resp.Error, "field Capacity must be greater than 0")
	assert.Contains(t, resp.Error, "field Student can contain only uuid")
}

func TestValidationError_Required(t *testing.T) {
	type request struct {
		Title string `validate:"required"`
	}
	err := validator.New().Struct(request{})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, "field Title is a required field", resp.Error)
}

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"id": 1})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, map[string]any{"id": 1}, resp.Data)

	errResp := Error("boom")
	assert.Equal(t, StatusError, errResp.Status)
	assert.Equal(t, "boom", errResp.Error)
}
