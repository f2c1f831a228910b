package postgres

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
)

type errorClass int

const (
	errorClassPermanent errorClass = iota
	errorClassTransient
	errorClassDeadlock
	errorClassSerialization
)

const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

func classifyError(err error) errorClass {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure:
			return errorClassSerialization
		case codeDeadlockDetected:
			return errorClassDeadlock
		case codeLockNotAvailable:
			return errorClassTransient
		}
	}
	return errorClassPermanent
}

// IsRetryable reports whether err is a transient concurrency conflict.
func IsRetryable(err error) bool {
	return err != nil && classifyError(err) != errorClassPermanent
}

// referenceFields maps foreign key columns to the request field that supplied them.
var referenceFields = []struct {
	column string
	field  string
}{
	{"variant_id", "items.variantId"},
	{"customer_id", "customerId"},
	{"location_id", "locationId"},
	{"staff_id", "staffId"},
}

// mapError translates driver errors to domain sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return domainErrors.ErrAlreadyExists
	case codeForeignKeyViolation:
		return domainErrors.NewValidationError(referenceField(pgErr.ConstraintName), "references an unknown record")
	}
	return err
}

func referenceField(constraint string) string {
	for _, ref := range referenceFields {
		if strings.Contains(constraint, ref.column) {
			return ref.field
		}
	}
	return ""
}

var retryBaseDelay = 50 * time.Millisecond

func (s *Storage) withRetry(ctx context.Context, op string, fn func() error) error {
	delay := retryBaseDelay
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= s.maxRetries {
			return err
		}

		wait := delay + time.Duration(rand.Int64N(int64(delay)/2+1))
		s.logger.Warn("retrying transaction",
			slog.String("op", op),
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", wait),
			slog.String("error", err.Error()),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		delay *= 2
	}
}
