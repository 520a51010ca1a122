package ports

import (
	"context"
	"time"

	"github.com/Anantaverma20/Retailmind/internal/domain"
)

// IntentParser turns a transcript into a ParseResult. The rules
// implementation is total and never returns an error; the LLM implementation
// returns *domain.NluProviderError on any recoverable failure and never falls
// back on its own.
type IntentParser interface {
	Parse(ctx context.Context, req domain.TranscriptRequest, lang domain.Language) (domain.ParseResult, error)
}

// ModelCompletion is the raw structured output of the external classification
// model, before schema validation.
type ModelCompletion struct {
	Intent     string            `json:"intent"`
	Entities   map[string]string `json:"entities"`
	Confidence *float64          `json:"confidence,omitempty"`
}

// IntentModel is the outbound call to the external classification service.
// Implementations must honor ctx cancellation and be safe to retry.
type IntentModel interface {
	ExtractIntent(ctx context.Context, transcript string, lang domain.Language) (ModelCompletion, error)
}

// Cache is a read-through store for parse results and other small values.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}
