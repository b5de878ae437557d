package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorMessageIncludesInternal(t *testing.T) {
	base := errors.New("disk full")
	err := ErrStorageUnavailable.WithInternal(base)

	if got := err.Error(); got != "Storage is unavailable: disk full" {
		t.Fatalf("unexpected message: %q", got)
	}
	if !errors.Is(err, base) {
		t.Fatal("expected internal error to unwrap")
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("create user: %w", ErrDuplicateKey.WithInternal(errors.New("UNIQUE constraint failed")))

	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatal("expected wrapped duplicate key error to match sentinel")
	}
	if errors.Is(err, ErrConstraintViolation) {
		t.Fatal("did not expect constraint violation match")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil) != nil {
		t.Fatal("expected nil for nil input")
	}

	appErr := FromError(ErrNotFound)
	if appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", appErr.Code)
	}

	generic := FromError(errors.New("boom"))
	if generic.Code != ErrInternalServer.Code {
		t.Fatalf("expected internal server fallback, got %s", generic.Code)
	}
	if generic.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", generic.StatusCode)
	}
}

func TestNewBadRequest(t *testing.T) {
	err := NewBadRequest("username is required")
	if err.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", err.StatusCode)
	}
	if err.Message != "username is required" {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}
