package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

type VoiceLogRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewVoiceLogRepository(db *gorm.DB, log *zap.Logger) ports.VoiceLogRepository {
	return &VoiceLogRepository{
		db:  db,
		log: log,
	}
}

func (r *VoiceLogRepository) Save(ctx context.Context, entry *domain.VoiceLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *VoiceLogRepository) FindRecent(ctx context.Context, sessionID string, limit int) ([]domain.VoiceLog, error) {
	if limit <= 0 || limit > domain.MaxQueryResults {
		limit = domain.MaxQueryResults
	}

	q := r.db.WithContext(ctx).Order("created_at desc").Limit(limit)
	if sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}

	var entries []domain.VoiceLog
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
