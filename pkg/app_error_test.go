package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		e := NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
		if e.HTTPStatus != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", e.HTTPStatus)
		}
		if got := e.ToHTTPError(); got.Code != "PROPOSAL_NOT_FOUND" || got.Message != "Proposal not found" {
			t.Fatalf("unexpected http error: %+v", got)
		}
		if e.Error() != "PROPOSAL_NOT_FOUND: Proposal not found" {
			t.Fatalf("unexpected error text: %s", e.Error())
		}
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := errors.New("dynamodb timeout")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if !errors.Is(e, cause) {
			t.Fatalf("expected errors.Is to reach the cause")
		}
		if got := e.ToHTTPError(); got.Message != "An internal error occurred" {
			t.Fatalf("cause must not leak into the body: %+v", got)
		}
	})
}
