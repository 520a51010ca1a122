package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

type ReorderRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewReorderRepository(db *gorm.DB, log *zap.Logger) ports.ReorderRepository {
	return &ReorderRepository{
		db:  db,
		log: log,
	}
}

func (r *ReorderRepository) Create(ctx context.Context, task *domain.ReorderTask) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return err
	}
	r.log.Info("Reorder task created",
		zap.String("task_id", task.TaskID),
		zap.String("product", task.RelatedProduct),
		zap.Int("quantity", task.Quantity))
	return nil
}
