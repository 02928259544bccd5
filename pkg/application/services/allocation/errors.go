package allocation

import (
	"errors"
	"fmt"
	"strings"
)

// Consistency errors. These signal a caller sequencing bug and are never
// produced by a correct presentation layer.
var (
	ErrAlreadyOwned = errors.New("product already owned by another line")
	ErrOutOfRange   = errors.New("line position out of range")
	ErrNotFound     = errors.New("product not found in pool")
	ErrNotLoaded    = errors.New("product pool not loaded")
	ErrInvalidState = errors.New("invalid allocator state")
)

// IssueReason describes why a line (or the whole order) cannot be submitted
type IssueReason int

const (
	MissingProduct IssueReason = iota
	MissingQuantity
	QuantityNotNumeric
	QuantityOutOfRange
	NoLines
)

// String method for IssueReason enum
func (r IssueReason) String() string {
	switch r {
	case MissingProduct:
		return "no product selected"
	case MissingQuantity:
		return "quantity is required"
	case QuantityNotNumeric:
		return "quantity must be a whole number"
	case QuantityOutOfRange:
		return "quantity outside allowed range"
	case NoLines:
		return "order must have at least one line"
	default:
		return "unknown issue"
	}
}

// LineIssue ties a validation problem to the line that has it.
// Position is -1 for order-level issues.
type LineIssue struct {
	Position int
	LineID   LineID
	Reason   IssueReason
}

func (i LineIssue) String() string {
	if i.Position < 0 {
		return i.Reason.String()
	}
	return fmt.Sprintf("line %d: %s", i.Position, i.Reason)
}

// ValidationError reports user-correctable problems that block submission
type ValidationError struct {
	Issues []LineIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "order is incomplete: " + strings.Join(parts, "; ")
}

// Positions returns the distinct line positions named by the issues, in order
func (e *ValidationError) Positions() []int {
	var positions []int
	seen := make(map[int]bool)
	for _, issue := range e.Issues {
		if issue.Position < 0 || seen[issue.Position] {
			continue
		}
		seen[issue.Position] = true
		positions = append(positions, issue.Position)
	}
	return positions
}

// Has reports whether the error contains the given reason for the given position
func (e *ValidationError) Has(position int, reason IssueReason) bool {
	for _, issue := range e.Issues {
		if issue.Position == position && issue.Reason == reason {
			return true
		}
	}
	return false
}
