package dispatch

import "context"

// Repository defines the persistence operations for dispatch records.
//
// It is implemented by infrastructure layers (e.g. GORM) while the service
// layer depends only on this interface.
type Repository interface {
	// Save persists a new record.
	Save(ctx context.Context, r *Record) error

	// List returns a page of records, newest first, with the total count.
	List(ctx context.Context, page, limit int) ([]*Record, int64, error)
}
