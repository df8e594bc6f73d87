package comment

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("comment not found")
	ErrStoreUnavailable = errors.New("comment store unavailable")
	ErrCacheUnavailable = errors.New("comment cache unavailable")
)

// ValidationError lists the request fields, by JSON name, that failed
// validation.
type ValidationError struct {
	Fields []string
	err    error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func storeError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

func cacheError(err error) error {
	return fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
}
