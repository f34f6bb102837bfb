package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestWrappedSentinelsKeepKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"unauthenticated", ErrUnauthenticated},
		{"forbidden", ErrForbidden},
		{"not found", ErrNotFound},
		{"validation", ErrValidation},
		{"invalid state", ErrInvalidState},
		{"invalid signature", ErrInvalidSignature},
		{"already exists", ErrAlreadyExists},
		{"invalid credentials", ErrInvalidCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("%w: detail", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match %v", tc.err)
			}
			for _, other := range cases {
				if other.err != tc.err && stdErrors.Is(wrapped, other.err) {
					t.Fatalf("%v must not match %v", tc.err, other.err)
				}
			}
		})
	}
}
