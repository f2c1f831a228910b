package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"unauthenticated", ErrUnauthenticated},
		{"validation", ErrValidation},
		{"insufficient stock", ErrInsufficientStock},
		{"store failure", ErrStoreFailure},
		{"sku exhausted", ErrSKUExhausted},
		{"invalid status", ErrInvalidStatus},
		{"out of stock", ErrOutOfStock},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("settle: %w", NewValidationError("items", "must not be empty"))
	if !stdErrors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var ve *ValidationError
	if !stdErrors.As(err, &ve) || ve.Field != "items" {
		t.Fatalf("expected field items, got %+v", ve)
	}
	if got := ve.Error(); got != "validation failed: items must not be empty" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := NewValidationError("", "bad").Error(); got != "validation failed: bad" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestInsufficientStockError(t *testing.T) {
	err := error(&InsufficientStockError{VariantID: "v1"})
	if !stdErrors.Is(err, ErrInsufficientStock) {
		t.Fatal("expected ErrInsufficientStock match")
	}
	if stdErrors.Is(err, ErrStoreFailure) {
		t.Fatal("did not expect store failure match")
	}
	if err.Error() != "insufficient stock for variant v1" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestNewStoreFailure(t *testing.T) {
	cause := stdErrors.New("connection reset")
	err := NewStoreFailure("insert order", cause)
	if !stdErrors.Is(err, ErrStoreFailure) {
		t.Fatal("expected ErrStoreFailure match")
	}
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected cause to be unwrapped")
	}

	if NewStoreFailure("noop", nil) != nil {
		t.Fatal("expected nil for nil error")
	}

	stock := &InsufficientStockError{VariantID: "v1"}
	if got := NewStoreFailure("decrement", stock); got != stock {
		t.Fatalf("expected domain error to pass through, got %v", got)
	}

	validation := NewValidationError("locationId", "unknown location")
	if got := NewStoreFailure("location", validation); got != error(validation) {
		t.Fatalf("expected validation error to pass through, got %v", got)
	}

	if got := NewStoreFailure("outer", err); got != err {
		t.Fatalf("expected store failure not to be double wrapped, got %v", got)
	}
}
