package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{NewError(ErrForbidden, MsgRegistrationClosed), http.StatusForbidden},
		{WrapError(ErrValidation, MsgUsernameLength, errors.New("min")), http.StatusBadRequest},
		{fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{NewError(ErrGone, MsgProblemExpired), http.StatusGone},
		{NewError(ErrPreconditionRequired, MsgExtensionNeeded), http.StatusPreconditionRequired},
		{NewError(ErrBadGateway, MsgProblemUnavailable), http.StatusBadGateway},
		{fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatusFromError(tc.err); got != tc.want {
			t.Errorf("HTTPStatusFromError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestPublicMessage(t *testing.T) {
	msg, ok := PublicMessage(fmt.Errorf("wrapped: %w", NewError(ErrConflict, MsgUsernameTaken)))
	if !ok || msg != MsgUsernameTaken {
		t.Fatalf("expected wrapped message, got %q %v", msg, ok)
	}
	if msg, ok := PublicMessage(errors.New("db down")); ok || msg != MsgInternal {
		t.Fatalf("expected generic message, got %q %v", msg, ok)
	}
}
