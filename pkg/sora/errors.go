// Package sora resolves a site assessment into ground risk, air risk, SAIL,
// OSO compliance and containment verdicts, and aggregates sites into a
// project-level worst case. Every function here is pure: results depend only
// on the arguments and the reference tables.
package sora

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin-aeria/muster-sub008/pkg/tables"
)

var (
	// ErrInvalidCategory marks an input key that is not in the reference
	// tables. The computation is abandoned rather than defaulted.
	ErrInvalidCategory = tables.ErrInvalidCategory

	// ErrIncompleteAssessment marks a record missing a field the SAIL
	// depends on.
	ErrIncompleteAssessment = errors.New("incomplete assessment")

	// ErrDuplicateSite marks a site list with repeated or empty IDs.
	ErrDuplicateSite = errors.New("duplicate or empty site id")
)

// CategoryError is re-exported so callers can inspect Kind and Value.
type CategoryError = tables.CategoryError

// IncompleteError lists the missing fields.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrIncompleteAssessment, strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncompleteAssessment }
