package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromUnwrapsWrappedError(t *testing.T) {
	base := BadRequest("invalid_request", errors.New("missing lesson_id"))
	wrapped := fmt.Errorf("decode: %w", base)

	got := From(wrapped, "internal")
	if got.Status != http.StatusBadRequest || got.Code != "invalid_request" {
		t.Fatalf("From: got status=%d code=%q", got.Status, got.Code)
	}
	if got.Error() != "missing lesson_id" {
		t.Fatalf("Error(): got=%q", got.Error())
	}
}

func TestFromDefaultsToInternal(t *testing.T) {
	got := From(errors.New("boom"), "internal")
	if got.Status != http.StatusInternalServerError || got.Code != "internal" {
		t.Fatalf("From: got status=%d code=%q", got.Status, got.Code)
	}
}
