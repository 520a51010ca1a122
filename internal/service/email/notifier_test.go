package email

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Anantaverma20/Retailmind/internal/adapter/queue"
	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/mocks"
)

type fakeProvider struct {
	sent    []sentMail
	sendErr error
}

type sentMail struct {
	to      string
	subject string
	body    string
	isHTML  bool
}

func (f *fakeProvider) Send(ctx context.Context, to, subject, body string, isHTML bool) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body, isHTML: isHTML})
	return nil
}

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestReorderNotifier_SendsOnReorderEvent(t *testing.T) {
	provider := &fakeProvider{}
	notifier := NewReorderNotifier(provider, "purchasing@example.com", newTestLogger())
	mq := mocks.NewMockMessageQueue()

	if err := notifier.Start(mq); err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	payload, _ := json.Marshal(domain.ReorderResult{
		TaskID:      "TASK1A2B3C",
		ProductID:   "P1",
		ProductName: "jeans",
		Quantity:    25,
		Status:      "pending",
		SupplierID:  "SUP-007",
		DueDate:     "2026-09-06",
	})
	if err := mq.Publish(queue.SubjectReorderCreated, payload); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(provider.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(provider.sent))
	}
	msg := provider.sent[0]
	if msg.to != "purchasing@example.com" {
		t.Errorf("unexpected recipient %q", msg.to)
	}
	if !strings.Contains(msg.subject, "TASK1A2B3C") || !strings.Contains(msg.subject, "25") {
		t.Errorf("subject missing task details: %q", msg.subject)
	}
	for _, fragment := range []string{"jeans", "SUP-007", "2026-09-06"} {
		if !strings.Contains(msg.body, fragment) {
			t.Errorf("body missing %q: %q", fragment, msg.body)
		}
	}
	if msg.isHTML {
		t.Error("reorder notification must be plain text")
	}
}

func TestReorderNotifier_DiscardsMalformedEvent(t *testing.T) {
	provider := &fakeProvider{}
	notifier := NewReorderNotifier(provider, "purchasing@example.com", newTestLogger())
	mq := mocks.NewMockMessageQueue()

	if err := notifier.Start(mq); err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}
	if err := mq.Publish(queue.SubjectReorderCreated, []byte("not json")); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(provider.sent) != 0 {
		t.Errorf("malformed event must not produce mail, got %d", len(provider.sent))
	}
}

func TestReorderNotifier_ProviderFailureIsReturned(t *testing.T) {
	provider := &fakeProvider{sendErr: errors.New("smtp down")}
	notifier := NewReorderNotifier(provider, "purchasing@example.com", newTestLogger())

	payload, _ := json.Marshal(domain.ReorderResult{TaskID: "TASK000001", Quantity: 1})
	if err := notifier.handle(payload); err == nil {
		t.Error("expected the provider error to propagate for redelivery")
	}
}
