package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"book not found", ErrBookNotFound, http.StatusNotFound},
		{"book unavailable", ErrBookUnavailable, http.StatusBadRequest},
		{"duplicate reservation", ErrDuplicateReservation, http.StatusBadRequest},
		{"already returned", ErrAlreadyReturned, http.StatusBadRequest},
		{"email taken", ErrEmailTaken, http.StatusConflict},
		{"isbn taken", ErrISBNTaken, http.StatusConflict},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedCode, httpErr.StatusCode)
		})
	}
}

func TestMapErrorToHTTP_LockContentionIsRetryableConflict(t *testing.T) {
	timeout := &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}

	assert.Equal(t, http.StatusConflict, MapErrorToHTTP(timeout).StatusCode)
	assert.Equal(t, http.StatusConflict, MapErrorToHTTP(deadlock).StatusCode)

	// Wrapped driver errors map the same way.
	wrapped := fmt.Errorf("update book: %w", timeout)
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
	assert.Equal(t, "LOCK_CONTENTION", httpErr.Code)

	// Other driver errors still fall through to 500.
	other := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.Equal(t, http.StatusInternalServerError, MapErrorToHTTP(other).StatusCode)
}
