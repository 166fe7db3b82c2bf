package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFatalSyncError(t *testing.T) {
	assert.True(t, IsFatalSyncError(ErrInvalidDomain))
	assert.True(t, IsFatalSyncError(fmt.Errorf("wrapped: %w", ErrInvalidDomain)))
	assert.True(t, IsFatalSyncError(&APIError{Status: 401}))
	assert.True(t, IsFatalSyncError(&APIError{Status: 403}))
	assert.True(t, IsFatalSyncError(&APIError{Status: 404}))

	assert.False(t, IsFatalSyncError(&APIError{Status: 429}))
	assert.False(t, IsFatalSyncError(&APIError{Status: 500}))
	assert.False(t, IsFatalSyncError(&APIError{Status: 0}))
	assert.False(t, IsFatalSyncError(errors.New("connection reset")))
}

func TestAPIErrorMessageCarriesContext(t *testing.T) {
	err := &APIError{
		Status: 404,
		Domain: "acme.myshopify.com",
		Path:   "orders.json",
		Hint:   HintForStatus(404),
	}

	msg := err.Error()
	assert.Contains(t, msg, "acme.myshopify.com")
	assert.Contains(t, msg, "orders.json")
	assert.Contains(t, msg, "404")
	assert.Contains(t, msg, "wrong hostname")
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, 401, ErrorStatus(fmt.Errorf("verify: %w", &APIError{Status: 401})))
	assert.Equal(t, 0, ErrorStatus(errors.New("plain")))
}
