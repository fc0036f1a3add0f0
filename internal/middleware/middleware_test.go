package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/oggyb/textsms-relay/internal/request"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRequestID_AssignsUUID(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = request.IDFrom(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_PropagatesIncoming(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = request.IDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestLogger_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	h := RequestID()(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/textsms/send", nil))

	out := buf.String()
	assert.True(t, strings.Contains(out, `"status":418`), out)
	assert.Contains(t, out, `"path":"/api/textsms/send"`)
	assert.Contains(t, out, `"request_id":"`)
}
