package assistant

import (
	"context"
	"fmt"

	"github.com/Anantaverma20/Retailmind/internal/domain"
)

// Handler executes one intent against persistence and returns its structured
// result. Handlers fail with *domain.HandlerError for domain failures and
// with *domain.AmbiguousMatchError when a product reference cannot be pinned
// to a single row.
type Handler func(ctx context.Context, entities domain.EntitySet) (domain.HandlerResult, error)

// Registry is the single source of truth for which intents exist. Dispatch
// is a direct lookup; there are no wildcard handlers.
type Registry struct {
	handlers map[domain.Intent]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[domain.Intent]Handler)}
}

func (r *Registry) Register(intent domain.Intent, h Handler) {
	r.handlers[intent] = h
}

// CheckExhaustive fails startup when any intent in the enumeration lacks a
// handler. Adding an intent without wiring it is a boot error, not a silent
// runtime gap.
func (r *Registry) CheckExhaustive() error {
	for _, intent := range domain.AllIntents() {
		if _, ok := r.handlers[intent]; !ok {
			return fmt.Errorf("no handler registered for intent %q", intent)
		}
	}
	return nil
}

func (r *Registry) Dispatch(ctx context.Context, validated domain.ValidatedIntent) (domain.HandlerResult, error) {
	h, ok := r.handlers[validated.Intent]
	if !ok {
		return nil, fmt.Errorf("no handler registered for intent %q", validated.Intent)
	}
	return h(ctx, validated.Entities)
}
