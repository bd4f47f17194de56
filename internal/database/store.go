package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// AuditStore persists and lists query logs
type AuditStore struct {
	db *gorm.DB
}

// NewAuditStore wraps an initialized database
func NewAuditStore(db *gorm.DB) *AuditStore {
	return &AuditStore{db: db}
}

// Record saves one query log
func (s *AuditStore) Record(ctx context.Context, entry *QueryLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record query log: %w", err)
	}
	return nil
}

// List returns a page of logs, newest first, and the total count. An
// endpoint of "" lists every endpoint.
func (s *AuditStore) List(ctx context.Context, endpoint string, page, limit int) ([]QueryLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	scoped := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&QueryLog{})
		if endpoint != "" {
			q = q.Where("endpoint = ?", endpoint)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count query logs: %w", err)
	}

	var logs []QueryLog
	if err := scoped().Order("query_time DESC").Order("id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list query logs: %w", err)
	}
	return logs, total, nil
}

// Healthy reports whether the database answers queries
func (s *AuditStore) Healthy(ctx context.Context) bool {
	var count int64
	return s.db.WithContext(ctx).Model(&QueryLog{}).Count(&count).Error == nil
}
