package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrReference           = errors.New("reference target missing or inactive")
	ErrConcurrencyConflict = errors.New("record modified concurrently")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)

// ValidationError carries per-field issues for a rejected write.
type ValidationError struct {
	Issues []Issue
}

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Issues: []Issue{{Field: field, Reason: reason}}}
}

func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// MapError translates driver errors into the store's error kinds. Constraint
// names survive in the wrapped message so callers can report which
// uniqueness invariant was violated.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrDuplicateKey)
		case pgErr.Code == "23503":
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrReference)
		case pgErr.Code == "23514":
			return Invalid(pgErr.ConstraintName, "check constraint violated")
		case pgErr.Code == "22P02":
			// A malformed id in a lookup (e.g. a non-UUID path segment) can
			// never match a row.
			return ErrNotFound
		case strings.HasPrefix(pgErr.Code, "08"), pgErr.Code == "53300", pgErr.Code == "57P01":
			return fmt.Errorf("%s: %w", pgErr.Code, ErrStorageUnavailable)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%v: %w", err, ErrStorageUnavailable)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%v: %w", err, ErrStorageUnavailable)
	}
	return err
}
