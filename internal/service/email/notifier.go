package email

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Anantaverma20/Retailmind/internal/adapter/queue"
	"github.com/Anantaverma20/Retailmind/internal/domain"
)

const sendTimeout = 15 * time.Second

// ReorderNotifier emails purchasing whenever the assistant books a reorder.
// It consumes reorder.created off the queue, so a slow or failing mail
// provider never touches the voice response path.
type ReorderNotifier struct {
	provider   Provider
	purchasing string
	log        *zap.Logger
}

func NewReorderNotifier(provider Provider, purchasingAddr string, log *zap.Logger) *ReorderNotifier {
	return &ReorderNotifier{
		provider:   provider,
		purchasing: purchasingAddr,
		log:        log,
	}
}

// Start subscribes the notifier to reorder events.
func (n *ReorderNotifier) Start(mq queue.MessageQueue) error {
	return mq.Subscribe(queue.SubjectReorderCreated, n.handle)
}

func (n *ReorderNotifier) handle(data []byte) error {
	var reorder domain.ReorderResult
	if err := json.Unmarshal(data, &reorder); err != nil {
		n.log.Error("Discarding malformed reorder event", zap.Error(err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	subject := fmt.Sprintf("Reorder %s: %d x %s", reorder.TaskID, reorder.Quantity, reorder.ProductName)
	if err := n.provider.Send(ctx, n.purchasing, subject, reorderBody(reorder), false); err != nil {
		n.log.Error("Failed to send reorder notification",
			zap.String("task_id", reorder.TaskID),
			zap.Error(err))
		return err
	}

	n.log.Info("Reorder notification sent", zap.String("task_id", reorder.TaskID))
	return nil
}

func reorderBody(r domain.ReorderResult) string {
	return fmt.Sprintf(
		"A reorder task was created by the voice assistant.\n\n"+
			"Task:     %s\n"+
			"Product:  %s (%s)\n"+
			"Quantity: %d\n"+
			"Supplier: %s\n"+
			"Due date: %s\n",
		r.TaskID, r.ProductName, r.ProductID, r.Quantity, r.SupplierID, r.DueDate)
}
