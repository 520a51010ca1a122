package nlu

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

// defaultModelConfidence is assumed when the model omits its confidence
// field. High on purpose: a clean classification with no score is still the
// primary signal.
const defaultModelConfidence = 0.9

// LLMParser classifies through an external model. It validates the model's
// structured output against the intent and entity schema and returns
// *domain.NluProviderError on any recoverable failure; the caller owns the
// fallback to the rules parser.
type LLMParser struct {
	model     ports.IntentModel
	breaker   *gobreaker.CircuitBreaker
	timeout   time.Duration
	threshold float64
	provider  string
	log       *zap.Logger
}

type LLMParserOptions struct {
	Provider                string
	Timeout                 time.Duration
	ConfidenceThreshold     float64
	BreakerMaxRequests      uint32
	BreakerInterval         time.Duration
	BreakerTimeout          time.Duration
	BreakerFailureThreshold uint32
}

func NewLLMParser(model ports.IntentModel, opts LLMParserOptions, log *zap.Logger) *LLMParser {
	if opts.Provider == "" {
		opts.Provider = "openai"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.BreakerFailureThreshold == 0 {
		opts.BreakerFailureThreshold = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nlu-" + opts.Provider,
		MaxRequests: opts.BreakerMaxRequests,
		Interval:    opts.BreakerInterval,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("NLU circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &LLMParser{
		model:     model,
		breaker:   breaker,
		timeout:   opts.Timeout,
		threshold: opts.ConfidenceThreshold,
		provider:  opts.Provider,
		log:       log,
	}
}

var _ ports.IntentParser = (*LLMParser)(nil)

func (p *LLMParser) Parse(ctx context.Context, req domain.TranscriptRequest, lang domain.Language) (domain.ParseResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	raw, err := p.breaker.Execute(func() (interface{}, error) {
		return p.model.ExtractIntent(ctx, req.Transcript, lang)
	})
	if err != nil {
		return domain.ParseResult{}, &domain.NluProviderError{Provider: p.provider, Err: err}
	}
	completion := raw.(ports.ModelCompletion)

	result, err := p.validateCompletion(completion)
	if err != nil {
		return domain.ParseResult{}, &domain.NluProviderError{Provider: p.provider, Err: err}
	}

	for k, v := range req.Entities {
		result.Entities[k] = v
	}
	return result, nil
}

// validateCompletion enforces the parse result schema on the model output.
// Any violation is recoverable: the rules parser gets its turn.
func (p *LLMParser) validateCompletion(c ports.ModelCompletion) (domain.ParseResult, error) {
	intent := domain.Intent(c.Intent)
	if !intent.Valid() {
		return domain.ParseResult{}, fmt.Errorf("model returned unrecognized intent %q", c.Intent)
	}

	confidence := defaultModelConfidence
	if c.Confidence != nil {
		confidence = *c.Confidence
	}
	if confidence < 0 || confidence > 1 {
		return domain.ParseResult{}, fmt.Errorf("model confidence %v out of range", confidence)
	}
	if p.threshold > 0 && confidence < p.threshold && intent != domain.IntentUnknown {
		return domain.ParseResult{}, fmt.Errorf("model confidence %.2f below threshold %.2f", confidence, p.threshold)
	}

	entities := c.Entities
	if entities == nil {
		entities = map[string]string{}
	}

	return domain.ParseResult{
		Intent:     intent,
		Entities:   entities,
		Confidence: confidence,
		Source:     domain.SourceLLM,
	}, nil
}
