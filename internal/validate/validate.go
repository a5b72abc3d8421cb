// Package validate holds the client-side form checks run before a payload is
// sent to the backend. They catch the obvious mistakes early; the backend
// remains the authority and its 422 responses are still surfaced.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the outcome of a single field check.
type Result struct {
	Field  string
	OK     bool
	Reason string
}

func ok(field string) Result {
	return Result{Field: field, OK: true}
}

func fail(field, reason string) Result {
	return Result{Field: field, OK: false, Reason: reason}
}

// Required fails on empty or whitespace-only values.
func Required(field, value string) Result {
	if strings.TrimSpace(value) == "" {
		return fail(field, "is required")
	}
	return ok(field)
}

// MinLength fails when value has fewer than min runes. Empty values pass so
// optional fields can combine it with [Required] as needed.
func MinLength(field, value string, min int) Result {
	if value != "" && utf8.RuneCountInString(value) < min {
		return fail(field, fmt.Sprintf("must be at least %d characters", min))
	}
	return ok(field)
}

// MaxLength fails when value has more than max runes.
func MaxLength(field, value string, max int) Result {
	if utf8.RuneCountInString(value) > max {
		return fail(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return ok(field)
}

// Positive fails when n is zero or negative.
func Positive(field string, n int) Result {
	if n <= 0 {
		return fail(field, "must be greater than zero")
	}
	return ok(field)
}

// Email fails on values that do not look like an address. Empty values pass.
func Email(field, value string) Result {
	if value != "" && !emailPattern.MatchString(value) {
		return fail(field, "is not a valid email address")
	}
	return ok(field)
}

// UUID fails on values that do not parse as a UUID. Empty values pass.
func UUID(field, value string) Result {
	if value == "" {
		return ok(field)
	}
	if _, err := uuid.Parse(value); err != nil {
		return fail(field, "is not a valid identifier")
	}
	return ok(field)
}

// Date fails on values that are not an ISO calendar date (2006-01-02).
// Empty values pass.
func Date(field, value string) Result {
	if value == "" {
		return ok(field)
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fail(field, "must be a date in YYYY-MM-DD form")
	}
	return ok(field)
}

// All runs the checks in order and returns only the failures.
func All(results ...Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK {
			failed = append(failed, r)
		}
	}
	return failed
}

// FirstError returns the first failure's message rendered as "field reason",
// or "" when everything passed.
func FirstError(results ...Result) string {
	failed := All(results...)
	if len(failed) == 0 {
		return ""
	}
	return failed[0].Field + " " + failed[0].Reason
}
