package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrValidation         = errors.New("validation failed")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrStoreFailure       = errors.New("store failure")
	ErrSKUExhausted       = errors.New("unique sku attempts exhausted")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrOutOfStock         = errors.New("variant is out of stock")
)

// ValidationError reports a malformed request field. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InsufficientStockError names the variant whose stock could not cover the sale.
type InsufficientStockError struct {
	VariantID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %s", e.VariantID)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// StoreFailureError wraps an infrastructure error raised during step Op.
type StoreFailureError struct {
	Op  string
	Err error
}

// NewStoreFailure wraps err unless it already carries a domain meaning.
func NewStoreFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	var sf *StoreFailureError
	if errors.As(err, &sf) || errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrValidation) {
		return err
	}
	return &StoreFailureError{Op: op, Err: err}
}

func (e *StoreFailureError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreFailureError) Is(target error) bool {
	return target == ErrStoreFailure
}

func (e *StoreFailureError) Unwrap() error {
	return e.Err
}
