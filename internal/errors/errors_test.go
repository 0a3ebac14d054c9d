package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewValidationError("table name is invalid"),
			want: "[VALIDATION] table name is invalid",
		},
		{
			name: "with cause",
			err:  NewStorageError("failed to open events file", stderrors.New("no such file")),
			want: "[STORAGE] failed to open events file: no such file",
		},
		{
			name: "not found",
			err:  NewNotFoundError("product dimension"),
			want: "[NOT_FOUND] product dimension not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewStorageError("failed to write report", cause)

	require.ErrorIs(t, err, cause)

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewParsingError("bad dimension row", nil).
		WithContext("row", 12).
		WithContext("path", "dim_products.csv")

	assert.Equal(t, 12, err.Context["row"])
	assert.Equal(t, "dim_products.csv", err.Context["path"])
}
