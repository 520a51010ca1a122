package mocks

import (
	"context"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

// MockIntentParser is a mock implementation of IntentParser
type MockIntentParser struct {
	ParseFunc func(ctx context.Context, req domain.TranscriptRequest, lang domain.Language) (domain.ParseResult, error)
}

func (m *MockIntentParser) Parse(ctx context.Context, req domain.TranscriptRequest, lang domain.Language) (domain.ParseResult, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(ctx, req, lang)
	}
	return domain.ParseResult{Intent: domain.IntentUnknown, Entities: map[string]string{}, Source: domain.SourceRules}, nil
}

// MockIntentModel is a mock implementation of IntentModel
type MockIntentModel struct {
	ExtractIntentFunc func(ctx context.Context, transcript string, lang domain.Language) (ports.ModelCompletion, error)
}

func (m *MockIntentModel) ExtractIntent(ctx context.Context, transcript string, lang domain.Language) (ports.ModelCompletion, error) {
	if m.ExtractIntentFunc != nil {
		return m.ExtractIntentFunc(ctx, transcript, lang)
	}
	return ports.ModelCompletion{Intent: string(domain.IntentUnknown), Entities: map[string]string{}}, nil
}
