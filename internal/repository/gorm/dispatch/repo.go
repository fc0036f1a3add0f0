package dispatchgorm

import (
	"context"

	"github.com/oggyb/textsms-relay/internal/db"
	"github.com/oggyb/textsms-relay/internal/domain/dispatch"
	"gorm.io/gorm"
)

// Repository is a GORM-backed implementation of dispatch.Repository.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a dispatch repository using the given DB adapter.
func NewRepository(d db.DB) *Repository {
	return &Repository{
		db: d.Conn().(*gorm.DB),
	}
}

// Migrate creates or updates the dispatches table.
func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&RecordModel{})
}

// Save inserts a new dispatch record.
func (r *Repository) Save(ctx context.Context, rec *dispatch.Record) error {
	return r.db.WithContext(ctx).Create(fromDomain(rec)).Error
}

// List returns a paginated list of dispatch records and the total count.
func (r *Repository) List(ctx context.Context, page, limit int) ([]*dispatch.Record, int64, error) {
	var models []RecordModel
	var total int64

	query := r.db.WithContext(ctx).Model(&RecordModel{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, err
	}

	return toDomainMany(models), total, nil
}

// compile-time interface check
var _ dispatch.Repository = (*Repository)(nil)
