package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound is returned by gateways when the order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNotEditable is returned when an edit is attempted outside the Ready states.
	ErrNotEditable = errors.New("order is not editable in its current state")
	// ErrSubmitInFlight is returned when a submit is attempted while one is pending.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	// ErrClosed is returned by a composer after Close.
	ErrClosed = errors.New("composer is closed")
)

// LoadError reports a failed read of an order, the order listing or the
// product catalog. ID is zero for listings.
type LoadError struct {
	Resource string
	ID       OrderID
	Err      error
}

func (e *LoadError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("loading %s %d: %v", e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("loading %s: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Validation failure reasons.
const (
	ReasonNoLineItems        = "no line items"
	ReasonIncompleteLineItem = "incomplete line item"
)

// ValidationError is a local, pre-submit rejection. Index is the first
// offending line item, or -1 when the failure concerns the whole order.
type ValidationError struct {
	Reason string
	Index  int
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s at position %d", e.Reason, e.Index+1)
	}
	return e.Reason
}

// Is matches another ValidationError with the same reason, so callers can
// compare against a template without caring about the index.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Reason == e.Reason
}

// SubmitError reports a network or server rejection while saving. The order
// is left intact so the user can retry.
type SubmitError struct {
	Op  string // "create" or "update"
	ID  OrderID
	Err error
}

func (e *SubmitError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s order %d: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s order: %v", e.Op, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }
