package dispatchgorm

import (
	"time"

	"github.com/oggyb/textsms-relay/internal/domain/dispatch"
)

func toDomain(m *RecordModel) *dispatch.Record {
	return &dispatch.Record{
		ID:                  m.ID,
		RequestID:           m.RequestID,
		Operation:           dispatch.Operation(m.Operation),
		Recipients:          m.Recipients,
		Success:             m.Success,
		ResponseCode:        m.ResponseCode,
		ResponseDescription: m.ResponseDescription,
		Duration:            time.Duration(m.DurationMs) * time.Millisecond,
		CreatedAt:           m.CreatedAt,
	}
}

func toDomainMany(models []RecordModel) []*dispatch.Record {
	out := make([]*dispatch.Record, len(models))
	for i := range models {
		out[i] = toDomain(&models[i])
	}
	return out
}

func fromDomain(d *dispatch.Record) *RecordModel {
	return &RecordModel{
		ID:                  d.ID,
		RequestID:           d.RequestID,
		Operation:           string(d.Operation),
		Recipients:          d.Recipients,
		Success:             d.Success,
		ResponseCode:        d.ResponseCode,
		ResponseDescription: d.ResponseDescription,
		DurationMs:          d.Duration.Milliseconds(),
		CreatedAt:           d.CreatedAt,
	}
}
