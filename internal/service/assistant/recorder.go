package assistant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Anantaverma20/Retailmind/internal/adapter/queue"
	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/observability/telemetry"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

const recorderTimeout = 10 * time.Second

// Recorder persists voice interactions off the response path. Writes are
// fire-and-forget: a failure is logged and dropped, never surfaced to the
// caller.
type Recorder struct {
	repo  ports.VoiceLogRepository
	queue queue.MessageQueue
	log   *zap.Logger
}

func NewRecorder(repo ports.VoiceLogRepository, mq queue.MessageQueue, log *zap.Logger) *Recorder {
	return &Recorder{repo: repo, queue: mq, log: log}
}

// Record detaches from the request context on purpose: the interaction log
// must survive the webhook response completing first.
func (r *Recorder) Record(req domain.TranscriptRequest, resp domain.Response) {
	if r == nil || r.repo == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recorderTimeout)
		defer cancel()

		entities, _ := json.Marshal(resp.Entities)
		result, _ := json.Marshal(resp.Result)

		entry := &domain.VoiceLog{
			ID:         uuid.NewString(),
			SessionID:  req.SessionID,
			Transcript: req.Transcript,
			Intent:     string(resp.Intent),
			Entities:   string(entities),
			Result:     string(result),
			CreatedAt:  time.Now().UTC(),
		}

		if err := r.repo.Save(ctx, entry); err != nil {
			telemetry.VoiceLogWritesTotal.WithLabelValues("error").Inc()
			r.log.Warn("Failed to record voice interaction",
				zap.String("intent", entry.Intent),
				zap.Error(err))
			return
		}
		telemetry.VoiceLogWritesTotal.WithLabelValues("ok").Inc()

		if r.queue != nil {
			payload, err := json.Marshal(entry)
			if err == nil {
				if err := r.queue.Publish(queue.SubjectVoiceLogged, payload); err != nil {
					r.log.Debug("Failed to publish voice log event", zap.Error(err))
				}
			}
		}
	}()
}
