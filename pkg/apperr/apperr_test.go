package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "not found", err: New(NotFound, "game not found"), want: NotFound},
		{name: "wrapped", err: fmt.Errorf("submit: %w", New(Conflict, "duplicate")), want: Conflict},
		{name: "plain error", err: errors.New("boom"), want: Internal},
		{name: "wrap with cause", err: Wrap(Unauthenticated, "no identity", errors.New("missing token")), want: Unauthenticated},
	}

	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("%s: KindOf = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(InvalidSubmission, "empty answer order"))
	if !Is(err, InvalidSubmission) {
		t.Fatal("expected InvalidSubmission kind to match through wrapping")
	}
	if Is(err, NotFound) {
		t.Fatal("did not expect NotFound kind")
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("record not found")
	err := Wrap(NotFound, "lesson lookup failed", cause)
	if err.Error() != "lesson lookup failed: record not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be unwrappable")
	}
}
