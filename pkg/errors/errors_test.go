package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsByCode(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", New(ErrCodeEmptyInventory, "copy"))

	assert.True(t, errors.Is(wrapped, ErrEmptyInventory))
	assert.False(t, errors.Is(wrapped, ErrShoeNotFound))
}

func TestGetAppError(t *testing.T) {
	t.Run("已是AppError", func(t *testing.T) {
		err := fmt.Errorf("ctx: %w", ErrDuplicateCode)
		assert.Equal(t, ErrCodeDuplicateEntry, GetAppError(err).Code)
	})

	t.Run("普通错误包装为Internal", func(t *testing.T) {
		appErr := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.EqualError(t, errors.Unwrap(appErr), "boom")
	})
}

func TestStorageUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	err := StorageUnavailable(cause, "Storage is unavailable")

	assert.True(t, IsCode(err, ErrCodeStorageUnavailable))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Storage is unavailable", Message(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Cost must be a number!", Message(NewValidation("Cost must be a number!")))
}
