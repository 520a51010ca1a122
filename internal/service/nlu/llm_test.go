package nlu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/mocks"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

func TestLLMParse_Success(t *testing.T) {
	model := &mocks.MockIntentModel{
		ExtractIntentFunc: func(ctx context.Context, transcript string, lang domain.Language) (ports.ModelCompletion, error) {
			return ports.ModelCompletion{
				Intent:   "get_stock",
				Entities: map[string]string{domain.EntityProductName: "hoodie"},
			}, nil
		},
	}
	parser := NewLLMParser(model, LLMParserOptions{}, newTestLogger())

	result, err := parser.Parse(context.Background(), domain.TranscriptRequest{Transcript: "how many hoodies"}, domain.LanguageEnglish)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Intent != domain.IntentGetStock {
		t.Errorf("expected get_stock, got %s", result.Intent)
	}
	if result.Source != domain.SourceLLM {
		t.Errorf("expected source llm, got %s", result.Source)
	}
	if result.Confidence != defaultModelConfidence {
		t.Errorf("expected default confidence, got %v", result.Confidence)
	}
}

func TestLLMParse_TimeoutIsProviderError(t *testing.T) {
	model := &mocks.MockIntentModel{
		ExtractIntentFunc: func(ctx context.Context, transcript string, lang domain.Language) (ports.ModelCompletion, error) {
			<-ctx.Done()
			return ports.ModelCompletion{}, ctx.Err()
		},
	}
	parser := NewLLMParser(model, LLMParserOptions{Timeout: 10 * time.Millisecond}, newTestLogger())

	start := time.Now()
	_, err := parser.Parse(context.Background(), domain.TranscriptRequest{Transcript: "how many hoodies"}, domain.LanguageEnglish)

	var provErr *domain.NluProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected NluProviderError, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("parse did not respect the timeout, took %v", elapsed)
	}
}

func TestLLMParse_RejectsUnknownIntent(t *testing.T) {
	model := &mocks.MockIntentModel{
		ExtractIntentFunc: func(ctx context.Context, transcript string, lang domain.Language) (ports.ModelCompletion, error) {
			return ports.ModelCompletion{Intent: "order_pizza"}, nil
		},
	}
	parser := NewLLMParser(model, LLMParserOptions{}, newTestLogger())

	_, err := parser.Parse(context.Background(), domain.TranscriptRequest{Transcript: "anything"}, domain.LanguageEnglish)

	var provErr *domain.NluProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected NluProviderError for schema violation, got %v", err)
	}
}

func TestLLMParse_RejectsOutOfRangeConfidence(t *testing.T) {
	confidence := 1.7
	model := &mocks.MockIntentModel{
		ExtractIntentFunc: func(ctx context.Context, transcript string, lang domain.Language) (ports.ModelCompletion, error) {
			return ports.ModelCompletion{Intent: "get_stock", Confidence: &confidence}, nil
		},
	}
	parser := NewLLMParser(model, LLMParserOptions{}, newTestLogger())

	var provErr *domain.NluProviderError
	if _, err := parser.Parse(context.Background(), domain.TranscriptRequest{Transcript: "x"}, domain.LanguageEnglish); !errors.As(err, &provErr) {
		t.Fatalf("expected NluProviderError, got %v", err)
	}
}

func TestLLMParse_BelowThresholdDegrades(t *testing.T) {
	confidence := 0.2
	model := &mocks.MockIntentModel{
		ExtractIntentFunc: func(ctx context.Context, transcript string, lang domain.Language) (ports.ModelCompletion, error) {
			return ports.ModelCompletion{Intent: "get_stock", Confidence: &confidence}, nil
		},
	}
	parser := NewLLMParser(model, LLMParserOptions{ConfidenceThreshold: 0.5}, newTestLogger())

	var provErr *domain.NluProviderError
	if _, err := parser.Parse(context.Background(), domain.TranscriptRequest{Transcript: "x"}, domain.LanguageEnglish); !errors.As(err, &provErr) {
		t.Fatalf("expected NluProviderError below threshold, got %v", err)
	}
}

func TestLLMParse_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	model := &mocks.MockIntentModel{
		ExtractIntentFunc: func(ctx context.Context, transcript string, lang domain.Language) (ports.ModelCompletion, error) {
			calls++
			return ports.ModelCompletion{}, errors.New("provider down")
		},
	}
	parser := NewLLMParser(model, LLMParserOptions{BreakerFailureThreshold: 2}, newTestLogger())

	var provErr *domain.NluProviderError
	for i := 0; i < 4; i++ {
		if _, err := parser.Parse(context.Background(), domain.TranscriptRequest{Transcript: "x"}, domain.LanguageEnglish); !errors.As(err, &provErr) {
			t.Fatalf("call %d: expected NluProviderError, got %v", i, err)
		}
	}

	// The breaker trips after two consecutive failures; later calls are
	// rejected without reaching the model.
	if calls != 2 {
		t.Errorf("expected 2 model calls before the breaker opened, got %d", calls)
	}
}

func TestLLMParse_DeviceEntitiesOverride(t *testing.T) {
	model := &mocks.MockIntentModel{
		ExtractIntentFunc: func(ctx context.Context, transcript string, lang domain.Language) (ports.ModelCompletion, error) {
			return ports.ModelCompletion{
				Intent:   "get_stock",
				Entities: map[string]string{domain.EntityColor: "red"},
			}, nil
		},
	}
	parser := NewLLMParser(model, LLMParserOptions{}, newTestLogger())

	result, err := parser.Parse(context.Background(), domain.TranscriptRequest{
		Transcript: "how many red hoodies",
		Entities:   map[string]string{domain.EntityColor: "blue"},
	}, domain.LanguageEnglish)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Entities[domain.EntityColor] != "blue" {
		t.Errorf("device entity must win, got %q", result.Entities[domain.EntityColor])
	}
}
