/*
errors.go - Centralized error types for the catalog engine

PURPOSE:
  All error kinds in one place. Stores and the archive layer wrap these
  sentinels with structured context; callers test with errors.Is/As.

ERROR CATEGORIES:
  1. Store errors   - missing backing document
  2. Import errors  - empty or malformed merge-import source
  3. Archive errors - collision exhaustion, unreadable source
  4. Ledger errors  - rejected ticket input

A row the heuristic archive parser declines to interpret is NOT an error:
it is silently dropped and only the aggregate ticket count is visible.
*/
package catalog

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrStoreMissing is returned when the backing reference document does
	// not exist. This means "no data yet" (first run), not corruption.
	ErrStoreMissing = errors.New("reference document not found")

	// ErrNoImportData is returned when a merge-import source contains no
	// recognized collection with at least one row.
	ErrNoImportData = errors.New("no data found")

	// ErrTooManyCopies is returned when archiving exhausts every candidate
	// filename. The bound exists to guarantee termination.
	ErrTooManyCopies = errors.New("too many copies")

	// ErrMissingField is returned when a ticket lacks a mandatory field.
	ErrMissingField = errors.New("missing mandatory field")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ImportError reports a failed merge-import with its source path.
type ImportError struct {
	Source string
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %s: %s", e.Source, e.Reason)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ArchiveError reports a failed archive copy.
type ArchiveError struct {
	Source string
	Reason string
	Err    error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive %s: %s", e.Source, e.Reason)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// MissingFieldError names the mandatory ticket field that was empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing mandatory field: %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsFirstRun reports whether err only means the store has no data yet.
func IsFirstRun(err error) bool {
	return errors.Is(err, ErrStoreMissing)
}

// IsClientError reports whether the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNoImportData) ||
		errors.Is(err, ErrMissingField)
}
