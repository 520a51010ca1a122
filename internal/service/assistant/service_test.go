package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/mocks"
	"github.com/Anantaverma20/Retailmind/internal/ports"
	"github.com/Anantaverma20/Retailmind/internal/service/nlu"
	"github.com/Anantaverma20/Retailmind/internal/service/speech"
)

type serviceFixture struct {
	service   *Service
	voiceLogs *mocks.MockVoiceLogRepository
	inventory *mocks.MockInventoryRepository
}

func newServiceFixture(t *testing.T, primary ports.IntentParser, inventory *mocks.MockInventoryRepository) *serviceFixture {
	t.Helper()

	if inventory == nil {
		inventory = &mocks.MockInventoryRepository{}
	}
	voiceLogs := &mocks.MockVoiceLogRepository{}
	log := newTestLogger()

	registry := NewRegistry()
	handlers := NewHandlers(inventory, &mocks.MockSalesRepository{}, &mocks.MockSupplierRepository{},
		&mocks.MockPurchaseOrderRepository{}, &mocks.MockReorderRepository{}, mocks.NewMockMessageQueue(), log)
	handlers.RegisterAll(registry)

	svc, err := NewService(Options{
		Primary:  primary,
		Fallback: nlu.NewRulesParser(log),
		Cache:    mocks.NewMockCache(),
		CacheTTL: time.Minute,
		Registry: registry,
		Renderer: speech.NewRenderer(speech.DefaultTemplates),
		Recorder: NewRecorder(voiceLogs, nil, log),
	}, log)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}

	return &serviceFixture{service: svc, voiceLogs: voiceLogs, inventory: inventory}
}

func stockInventory() *mocks.MockInventoryRepository {
	return &mocks.MockInventoryRepository{
		FindProductsFunc: func(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
			return []domain.Product{{ProductID: "P1", Name: "hoodie", Color: "Red", StockQuantity: 12, ReorderThreshold: 5}}, nil
		},
	}
}

func TestHandle_EndToEndStockEnglish(t *testing.T) {
	f := newServiceFixture(t, nil, stockInventory())

	resp := f.service.Handle(context.Background(), domain.TranscriptRequest{
		Transcript: "How many red hoodies are left?",
		Language:   "en",
	})

	if !resp.OK {
		t.Fatalf("expected ok, got %+v", resp)
	}
	if resp.Intent != domain.IntentGetStock {
		t.Errorf("expected get_stock, got %s", resp.Intent)
	}
	if resp.Entities.ProductName != "hoodie" || resp.Entities.Color != "red" {
		t.Errorf("unexpected entities %+v", resp.Entities)
	}
	if resp.Speech == "" {
		t.Error("expected non-empty speech")
	}
}

func TestHandle_EndToEndSpanish(t *testing.T) {
	f := newServiceFixture(t, nil, stockInventory())

	resp := f.service.Handle(context.Background(), domain.TranscriptRequest{
		Transcript: "¿Cuántas sudaderas rojas quedan?",
		Language:   "es",
	})

	if !resp.OK || resp.Intent != domain.IntentGetStock {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Entities.ProductName != "hoodie" || resp.Entities.Color != "red" {
		t.Errorf("expected canonical entities, got %+v", resp.Entities)
	}
	if resp.Speech != "Hay 12 hoodies en red en stock." {
		t.Errorf("expected Spanish speech, got %q", resp.Speech)
	}
}

func TestHandle_UnknownIsOKWithClarification(t *testing.T) {
	f := newServiceFixture(t, nil, nil)

	resp := f.service.Handle(context.Background(), domain.TranscriptRequest{
		Transcript: "blue sky today",
		Language:   "en",
	})

	if !resp.OK {
		t.Fatal("unknown must not be an error")
	}
	if resp.Intent != domain.IntentUnknown {
		t.Errorf("expected unknown, got %s", resp.Intent)
	}
	if resp.Speech != speech.DefaultTemplates[domain.LanguageEnglish].Clarification {
		t.Errorf("expected clarification sentence, got %q", resp.Speech)
	}
}

func TestHandle_LLMFailureDegradesToRules(t *testing.T) {
	primary := &mocks.MockIntentParser{
		ParseFunc: func(ctx context.Context, req domain.TranscriptRequest, lang domain.Language) (domain.ParseResult, error) {
			return domain.ParseResult{}, &domain.NluProviderError{Provider: "openai", Err: context.DeadlineExceeded}
		},
	}
	f := newServiceFixture(t, primary, stockInventory())

	resp := f.service.Handle(context.Background(), domain.TranscriptRequest{
		Transcript: "How many red hoodies are left?",
		Language:   "en",
	})

	if !resp.OK || resp.Intent != domain.IntentGetStock {
		t.Fatalf("expected rules result after degrade, got %+v", resp)
	}
}

func TestHandle_ValidationFailureIsClarification(t *testing.T) {
	// "reorder jeans" parses but misses quantity discriminators.
	f := newServiceFixture(t, nil, nil)

	resp := f.service.Handle(context.Background(), domain.TranscriptRequest{
		Transcript: "Please reorder jeans",
		Language:   "en",
	})

	if !resp.OK {
		t.Fatal("validation failure must stay ok:true")
	}
	if resp.Intent != domain.IntentCreateReorder {
		t.Errorf("parsed intent must be preserved, got %s", resp.Intent)
	}
	clarification, ok := resp.Result.(domain.ClarificationResult)
	if !ok {
		t.Fatalf("expected clarification result, got %T", resp.Result)
	}
	if len(clarification.Missing) == 0 {
		t.Error("expected missing entity keys")
	}
}

func TestHandle_HandlerErrorFlipsOK(t *testing.T) {
	inventory := &mocks.MockInventoryRepository{
		FindProductsFunc: func(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
			return nil, nil // no products
		},
	}
	f := newServiceFixture(t, nil, inventory)

	resp := f.service.Handle(context.Background(), domain.TranscriptRequest{
		Transcript: "Restock 25 black jeans",
		Language:   "en",
	})

	if resp.OK {
		t.Fatal("product_not_found must flip ok to false")
	}
	if resp.Speech != speech.DefaultTemplates[domain.LanguageEnglish].ErrorNotFound {
		t.Errorf("expected localized not-found sentence, got %q", resp.Speech)
	}
	result, ok := resp.Result.(map[string]string)
	if !ok || result["error"] == "" {
		t.Errorf("expected error payload, got %+v", resp.Result)
	}
}

func TestHandle_DeviceEntitiesOverrideTranscript(t *testing.T) {
	var gotFilter ports.ProductFilter
	inventory := &mocks.MockInventoryRepository{
		FindProductsFunc: func(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	f := newServiceFixture(t, nil, inventory)

	f.service.Handle(context.Background(), domain.TranscriptRequest{
		Transcript: "How many red hoodies are left?",
		Entities:   map[string]string{domain.EntityColor: "blue"},
		Language:   "en",
	})

	if gotFilter.Color != "blue" {
		t.Errorf("device entity must reach the handler, got color %q", gotFilter.Color)
	}
}

func TestHandle_RecordsInteraction(t *testing.T) {
	f := newServiceFixture(t, nil, stockInventory())

	f.service.Handle(context.Background(), domain.TranscriptRequest{
		Transcript: "How many red hoodies are left?",
		SessionID:  "sess-1",
		Language:   "en",
	})

	// The recorder is fire-and-forget; give it a moment.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(f.voiceLogs.SavedEntries()) == 1 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	entries := f.voiceLogs.SavedEntries()
	if len(entries) != 1 {
		t.Fatalf("expected one voice log entry, got %d", len(entries))
	}
	if entries[0].Intent != string(domain.IntentGetStock) {
		t.Errorf("expected recorded intent get_stock, got %s", entries[0].Intent)
	}
	if entries[0].SessionID != "sess-1" {
		t.Errorf("expected session id recorded, got %q", entries[0].SessionID)
	}
}

func TestHandle_RecorderFailureDoesNotAffectResponse(t *testing.T) {
	f := newServiceFixture(t, nil, stockInventory())
	f.voiceLogs.SaveFunc = func(ctx context.Context, entry *domain.VoiceLog) error {
		return errors.New("voice log store down")
	}

	resp := f.service.Handle(context.Background(), domain.TranscriptRequest{
		Transcript: "How many red hoodies are left?",
		Language:   "en",
	})

	if !resp.OK || resp.Speech == "" {
		t.Errorf("recording failure must not touch the response, got %+v", resp)
	}
}

func TestHandle_CachesParseResults(t *testing.T) {
	calls := 0
	primary := &mocks.MockIntentParser{
		ParseFunc: func(ctx context.Context, req domain.TranscriptRequest, lang domain.Language) (domain.ParseResult, error) {
			calls++
			return domain.ParseResult{
				Intent:     domain.IntentGetStock,
				Entities:   map[string]string{domain.EntityProductName: "hoodie"},
				Confidence: 0.95,
				Source:     domain.SourceLLM,
			}, nil
		},
	}
	f := newServiceFixture(t, primary, stockInventory())

	req := domain.TranscriptRequest{Transcript: "How many hoodies?", Language: "en"}
	f.service.Handle(context.Background(), req)
	f.service.Handle(context.Background(), req)

	if calls != 1 {
		t.Errorf("expected one parser call with a warm cache, got %d", calls)
	}
}
