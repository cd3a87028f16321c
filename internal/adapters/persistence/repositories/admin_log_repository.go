package repositories

import (
	"context"

	"nobus-loanhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// adminLogRepository implements AdminLogRepository interface.
// The ledger is append-only; this type deliberately has no update
// or delete methods.
type adminLogRepository struct {
	db *gorm.DB
}

// NewAdminLogRepository creates a new admin log repository
func NewAdminLogRepository(db *gorm.DB) AdminLogRepository {
	return &adminLogRepository{db: db}
}

// Create appends a new audit log entry
func (r *adminLogRepository) Create(ctx context.Context, entry *models.AdminLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List lists audit log entries with pagination, newest first
func (r *adminLogRepository) List(ctx context.Context, offset, limit int) ([]*models.AdminLog, int64, error) {
	var entries []*models.AdminLog
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.AdminLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
