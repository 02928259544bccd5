// Package allocation composes multi-line orders against a shared pool of
// products.
//
// Each line holds at most one product and a quantity. Which line holds which
// product is recorded once, in an Ownership map keyed by product; the choices
// still open to a line are derived from the pool and that map on every read,
// so they cannot drift from the selections actually made. Lines live in an
// arena addressed by LineID. Positions are display indexes only and are
// recomputed whenever a line is removed.
//
// Consistency errors (ErrAlreadyOwned, ErrOutOfRange, ErrNotFound,
// ErrNotLoaded, ErrInvalidState) indicate a caller bug. User-correctable
// problems are reported per line through LineView.Issues and, at submission
// time, as a *ValidationError from BuildPayload.
package allocation
