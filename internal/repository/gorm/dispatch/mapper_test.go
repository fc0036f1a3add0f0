package dispatchgorm

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oggyb/textsms-relay/internal/domain/dispatch"
)

func TestMapper_DurationIsStoredInMilliseconds(t *testing.T) {
	rec := &dispatch.Record{
		ID:         uuid.New(),
		Operation:  dispatch.OpBalance,
		Recipients: 0,
		Success:    true,
		Duration:   1500 * time.Millisecond,
		CreatedAt:  time.Now(),
	}

	m := fromDomain(rec)
	if m.DurationMs != 1500 {
		t.Fatalf("DurationMs = %d, want 1500", m.DurationMs)
	}
	if m.Operation != "balance" {
		t.Fatalf("Operation = %q, want balance", m.Operation)
	}

	back := toDomain(m)
	if back.Duration != rec.Duration || back.ID != rec.ID || back.Operation != rec.Operation {
		t.Fatalf("mapping lost data: %+v", back)
	}
}
