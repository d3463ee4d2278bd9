package orders

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestCompletionErrMapsSerializationFailure(t *testing.T) {
	err := completionErr(&pgconn.PgError{Code: "40001", Message: "could not serialize access"}, 7)
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Contains(t, err.Error(), "order 7")

	wrapped := fmt.Errorf("platform/db: commit tx: %w", &pgconn.PgError{Code: "40001"})
	require.ErrorIs(t, completionErr(wrapped, 7), ErrInvalidTransition)
}

func TestCompletionErrPassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("connection reset")
	require.Equal(t, plain, completionErr(plain, 7))

	unique := &pgconn.PgError{Code: "23505"}
	require.Equal(t, error(unique), completionErr(unique, 7))
}
