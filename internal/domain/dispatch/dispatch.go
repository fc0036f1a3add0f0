// Package dispatch holds the audit record written for every relay operation.
package dispatch

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Operation names a relay operation.
type Operation string

const (
	OpSend           Operation = "send"
	OpSchedule       Operation = "schedule"
	OpBulk           Operation = "bulk"
	OpDeliveryReport Operation = "dlr"
	OpBalance        Operation = "balance"
)

// Operations lists every relay operation in a stable order.
var Operations = []Operation{OpSend, OpSchedule, OpBulk, OpDeliveryReport, OpBalance}

// MaxDescriptionLength bounds the stored response description.
const MaxDescriptionLength = 255

// ErrUnknownOperation is returned when building a record for an unlisted operation.
var ErrUnknownOperation = errors.New("unknown dispatch operation")

// Record describes the outcome of one relay call. It deliberately carries no
// mobile numbers or message text.
type Record struct {
	ID                  uuid.UUID
	RequestID           string
	Operation           Operation
	Recipients          int
	Success             bool
	ResponseCode        string
	ResponseDescription string
	Duration            time.Duration
	CreatedAt           time.Time
}

// NewRecord constructs a record and enforces the basic rules.
func NewRecord(op Operation, requestID string, recipients int, success bool, code, description string, took time.Duration) (*Record, error) {
	if !op.Valid() {
		return nil, ErrUnknownOperation
	}
	if recipients < 0 {
		recipients = 0
	}
	description = truncate(description, MaxDescriptionLength)

	return &Record{
		ID:                  uuid.New(),
		RequestID:           requestID,
		Operation:           op,
		Recipients:          recipients,
		Success:             success,
		ResponseCode:        code,
		ResponseDescription: description,
		Duration:            took,
		CreatedAt:           time.Now(),
	}, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Valid reports whether op is a known operation.
func (op Operation) Valid() bool {
	for _, known := range Operations {
		if op == known {
			return true
		}
	}
	return false
}
