package domain

import (
	"errors"
	"fmt"
	"strings"
)

// NluProviderError is a recoverable NLU provider failure (network, timeout,
// malformed or non-schema model output). The caller owns the fallback
// decision; this error never reaches the webhook response.
type NluProviderError struct {
	Provider string
	Err      error
}

func (e *NluProviderError) Error() string {
	return fmt.Sprintf("nlu provider %s: %v", e.Provider, e.Err)
}

func (e *NluProviderError) Unwrap() error { return e.Err }

// MissingEntityError reports that a parsed intent lacks its required entity
// subset. Recoverable at the clarification level.
type MissingEntityError struct {
	Intent  Intent
	Missing []string
}

func (e *MissingEntityError) Error() string {
	return fmt.Sprintf("intent %s missing entities: %s", e.Intent, strings.Join(e.Missing, ", "))
}

// AmbiguousMatchError reports that a product reference matched more than one
// handler-addressable item. Recoverable at the clarification level.
type AmbiguousMatchError struct {
	Intent     Intent
	Reference  string
	Candidates int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("intent %s: reference %q matches %d products", e.Intent, e.Reference, e.Candidates)
}

// IsValidationError reports whether err belongs to the validation class that
// routes to a clarification response instead of a hard failure.
func IsValidationError(err error) bool {
	var missing *MissingEntityError
	var ambiguous *AmbiguousMatchError
	return errors.As(err, &missing) || errors.As(err, &ambiguous)
}

// HandlerErrorKind classifies handler failures for localized speech.
type HandlerErrorKind string

const (
	ErrProductNotFound        HandlerErrorKind = "product_not_found"
	ErrSupplierNotFound       HandlerErrorKind = "supplier_not_found"
	ErrPersistenceUnavailable HandlerErrorKind = "persistence_unavailable"
)

// HandlerError is a typed domain failure raised by an intent handler. It is
// the only error class that flips the response to ok:false.
type HandlerError struct {
	Kind HandlerErrorKind
	Err  error
}

func (e *HandlerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *HandlerError) Unwrap() error { return e.Err }

func NewHandlerError(kind HandlerErrorKind, err error) *HandlerError {
	return &HandlerError{Kind: kind, Err: err}
}

// RendererError is a programming defect: a template expected a result field
// or shape that is not there. It must fail loudly outside production.
type RendererError struct {
	Intent   Intent
	Language Language
	Reason   string
}

func (e *RendererError) Error() string {
	return fmt.Sprintf("renderer: intent %s lang %s: %s", e.Intent, e.Language, e.Reason)
}
