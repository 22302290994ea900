/*
Package shared - domain layer building blocks shared by every subdomain.

Error design:
1. Sentinel errors classify failures for errors.Is() checks.
2. DomainError captures the stack at creation but formats it lazily.
3. Domain errors carry no transport concepts (no HTTP status codes).

Stack capture strategy:
- Captured inside the constructor (skip runtime.Callers, CaptureStack, NewXxxError).
- Formatted only when a log line actually needs it (Stack() method).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Sentinel Errors
// ============================================================================

var (
	// ErrInvalidInput marks malformed input to a factory or mutator.
	// The aggregate is left unchanged.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDomainRule marks a business rule violation (insufficient stock,
	// expired coupon, negative resulting total). No partial mutation occurs.
	ErrDomainRule = errors.New("domain rule violated")

	// ErrInvalidTransition marks a lifecycle move absent from an aggregate's
	// transition table.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a concurrent modification or uniqueness conflict.
	// Callers should reload and retry.
	ErrConflict = errors.New("conflict")
)

// ============================================================================
// DomainError
// ============================================================================

// DomainError is a structured error carrying business context and the stack
// of its creation point. Supports errors.Is() and errors.As() through Unwrap.
type DomainError struct {
	// Err is the underlying sentinel, used by errors.Is().
	Err error

	// Entity names the aggregate or value object the error belongs to.
	Entity string

	// Message is the human readable description.
	Message string

	// Field optionally names the offending field (validation errors).
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Err }

// Stack formats the captured stack on demand.
func (e *DomainError) Stack() []string { return FormatStack(e.stack) }

// ============================================================================
// InvalidTransitionError
// ============================================================================

// InvalidTransitionError reports a lifecycle move rejected by a transition
// table. It unwraps to ErrInvalidTransition.
type InvalidTransitionError struct {
	Aggregate string
	From      string
	To        string

	stack []uintptr
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot transition from %s to %s", e.Aggregate, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// Stack implements Stacker.
func (e *InvalidTransitionError) Stack() []string { return FormatStack(e.stack) }

// NewInvalidTransitionError creates a transition rejection for the given
// aggregate and (from, to) pair.
func NewInvalidTransitionError(aggregate, from, to string) error {
	return &InvalidTransitionError{
		Aggregate: aggregate,
		From:      from,
		To:        to,
		stack:     CaptureStack(3),
	}
}

// ============================================================================
// Stack helpers
// ============================================================================

// CaptureStack captures the current call stack. skip is the number of frames
// to drop (usually 3: Callers, CaptureStack, NewXxxError). Exported so
// subdomain packages can build their own structured errors.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders captured frames, filtering runtime internals.
// Returns at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Constructors
// ============================================================================

// NewValidationError creates a validation failure for a malformed input.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewDomainRuleError creates a business rule violation.
func NewDomainRuleError(entity, reason string) error {
	return &DomainError{
		Err:     ErrDomainRule,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewNotFoundError creates a "not found" domain error.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a conflict domain error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// ============================================================================
// Stacker
// ============================================================================

// Stacker is implemented by errors that can provide a formatted stack.
// The API layer uses it to extract stacks uniformly.
type Stacker interface {
	Stack() []string
}
