package response

import (
	"encoding/json"
	"time"

	"github.com/oggyb/textsms-relay/internal/domain/dispatch"
	"github.com/oggyb/textsms-relay/internal/service"
)

type WelcomePayload struct {
	Message string `json:"message"`
}

type HealthPayload struct {
	Status string `json:"status"`
}

type WelcomeResponse struct {
	Success   bool           `json:"success"`
	Data      WelcomePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type HealthResponse struct {
	Success   bool          `json:"success"`
	Data      HealthPayload `json:"data"`
	Timestamp string        `json:"timestamp"`
}

// GatewayError documents the relay error object for Swagger.
type GatewayError struct {
	ResponseCode        string `json:"response-code" example:"9999"`
	ResponseDescription string `json:"response-description" example:"Error:request failed"`
}

type RefresherControlPayload struct {
	Message string `json:"message"`
	Running bool   `json:"running"`
}

type RefresherControlResponse struct {
	Success   bool                    `json:"success"`
	Data      RefresherControlPayload `json:"data"`
	Timestamp string                  `json:"timestamp"`
}

type StatsResponse struct {
	Success   bool          `json:"success"`
	Data      service.Stats `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type LastBalanceResponse struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data" swaggertype:"object"`
	Timestamp string          `json:"timestamp"`
}

// DispatchDTO is the public representation of an audit record.
type DispatchDTO struct {
	ID                  string    `json:"id"`
	RequestID           string    `json:"requestId,omitempty"`
	Operation           string    `json:"operation"`
	Recipients          int       `json:"recipients"`
	Success             bool      `json:"success"`
	ResponseCode        string    `json:"responseCode,omitempty"`
	ResponseDescription string    `json:"responseDescription,omitempty"`
	DurationMs          int64     `json:"durationMs"`
	CreatedAt           time.Time `json:"createdAt"`
}

type DispatchesPayload struct {
	Items []DispatchDTO `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type DispatchesResponse struct {
	Success   bool              `json:"success"`
	Data      DispatchesPayload `json:"data"`
	Timestamp string            `json:"timestamp"`
}

// FromDispatchRecords converts audit records into DTOs.
func FromDispatchRecords(recs []*dispatch.Record) []DispatchDTO {
	out := make([]DispatchDTO, len(recs))
	for i, r := range recs {
		out[i] = DispatchDTO{
			ID:                  r.ID.String(),
			RequestID:           r.RequestID,
			Operation:           string(r.Operation),
			Recipients:          r.Recipients,
			Success:             r.Success,
			ResponseCode:        r.ResponseCode,
			ResponseDescription: r.ResponseDescription,
			DurationMs:          r.Duration.Milliseconds(),
			CreatedAt:           r.CreatedAt,
		}
	}
	return out
}
