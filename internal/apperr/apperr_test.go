package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFound("invitation not found"), http.StatusNotFound},
		{Validation("bad", nil), http.StatusBadRequest},
		{Expired("invitation expired"), http.StatusGone},
		{AlreadyAccepted("used"), http.StatusBadRequest},
		{Conflict("state"), http.StatusConflict},
		{Unauthorized("who"), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{fmt.Errorf("ctx: %w", Expired("x")), http.StatusGone},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Fatalf("Status(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("accept: %w", AlreadyAccepted("invitation already accepted"))
	if !errors.Is(err, ErrAlreadyAccepted) {
		t.Fatalf("expected kind match")
	}
	if errors.Is(err, ErrExpired) {
		t.Fatalf("unexpected kind match")
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("db down")
	err := Wrap(KindInternal, "load trip", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	if err.Error() != "load trip: db down" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		TripID    string `json:"tripId" validate:"required"`
		GroupSize int    `json:"groupSize" validate:"min=1,max=20"`
		Email     string `json:"inviteeEmail" validate:"omitempty,email"`
	}

	if err := ValidateStruct(payload{TripID: "t1", GroupSize: 2}); err != nil {
		t.Fatalf("expected valid payload: %v", err)
	}

	err := ValidateStruct(payload{GroupSize: 0, Email: "nope"})
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"tripId", "groupSize", "inviteeEmail"} {
		if _, ok := e.Fields[field]; !ok {
			t.Fatalf("expected field error for %s, got %v", field, e.Fields)
		}
	}
}
