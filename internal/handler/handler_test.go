package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oggyb/textsms-relay/internal/cache"
	"github.com/oggyb/textsms-relay/internal/domain/dispatch"
	"github.com/oggyb/textsms-relay/internal/service"
	"github.com/oggyb/textsms-relay/internal/textsms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService implements service.RelayService; unset funcs return zero values.
type stubService struct {
	sendFn     func(ctx context.Context, mobile, message string) textsms.Result
	scheduleFn func(ctx context.Context, mobile, message, at string) textsms.Result
	bulkFn     func(ctx context.Context, mobiles, messages, ids []string) textsms.Result
	dlrFn      func(ctx context.Context, id string) textsms.Result
	balanceFn  func(ctx context.Context) textsms.Result
	lastFn     func(ctx context.Context) (json.RawMessage, error)
	statsFn    func(ctx context.Context) (service.Stats, error)
	listFn     func(ctx context.Context, page, limit int) ([]*dispatch.Record, int64, error)
}

func (s *stubService) SendSingle(ctx context.Context, mobile, message string) textsms.Result {
	return s.sendFn(ctx, mobile, message)
}
func (s *stubService) Schedule(ctx context.Context, mobile, message, at string) textsms.Result {
	return s.scheduleFn(ctx, mobile, message, at)
}
func (s *stubService) SendBulk(ctx context.Context, mobiles, messages, ids []string) textsms.Result {
	return s.bulkFn(ctx, mobiles, messages, ids)
}
func (s *stubService) DeliveryReport(ctx context.Context, id string) textsms.Result {
	return s.dlrFn(ctx, id)
}
func (s *stubService) Balance(ctx context.Context) textsms.Result {
	return s.balanceFn(ctx)
}
func (s *stubService) LastBalance(ctx context.Context) (json.RawMessage, error) {
	return s.lastFn(ctx)
}
func (s *stubService) Stats(ctx context.Context) (service.Stats, error) {
	return s.statsFn(ctx)
}
func (s *stubService) ListDispatches(ctx context.Context, page, limit int) ([]*dispatch.Record, int64, error) {
	return s.listFn(ctx, page, limit)
}
func (s *stubService) RefreshBalance(context.Context) error { return nil }

var _ service.RelayService = (*stubService)(nil)

// stubScheduler records control calls.
type stubScheduler struct {
	running bool
	err     error
}

func (s *stubScheduler) Start() error {
	if s.err == nil {
		s.running = true
	}
	return s.err
}
func (s *stubScheduler) Stop() error {
	if s.err == nil {
		s.running = false
	}
	return s.err
}
func (s *stubScheduler) IsRunning() bool { return s.running }

func do(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestSend_WritesGatewayBodyVerbatim(t *testing.T) {
	var gotMobile, gotMessage string
	svc := &stubService{sendFn: func(_ context.Context, mobile, message string) textsms.Result {
		gotMobile, gotMessage = mobile, message
		return textsms.Success([]byte(`{"responseCode":"0000","responseDescription":"Sent"}`))
	}}
	h := NewRelayHandler(svc)

	w := do(h.Send, http.MethodPost, "/api/textsms/send", `{"mobile":"0712345678","message":"Hi"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"responseCode":"0000","responseDescription":"Sent"}`, w.Body.String())
	assert.Equal(t, "0712345678", gotMobile)
	assert.Equal(t, "Hi", gotMessage)
}

func TestSend_GatewayFailureIsStill200(t *testing.T) {
	svc := &stubService{sendFn: func(context.Context, string, string) textsms.Result {
		return textsms.Errorf("request failed: connection refused")
	}}
	h := NewRelayHandler(svc)

	w := do(h.Send, http.MethodPost, "/api/textsms/send", `{"mobile":"0712345678","message":"Hi"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response-code":"9999","response-description":"Error:request failed: connection refused"}`, w.Body.String())
}

func TestSend_InvalidInput(t *testing.T) {
	h := NewRelayHandler(&stubService{})

	cases := map[string]string{
		"malformed JSON":  `{"mobile":`,
		"missing message": `{"mobile":"0712345678"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(h.Send, http.MethodPost, "/api/textsms/send", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var got textsms.ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, textsms.ErrorCode, got.ResponseCode)
			assert.True(t, strings.HasPrefix(got.ResponseDescription, "Error:"))
		})
	}
}

func TestSchedule_PassesTimeToSend(t *testing.T) {
	var gotAt string
	svc := &stubService{scheduleFn: func(_ context.Context, _, _, at string) textsms.Result {
		gotAt = at
		return textsms.Success([]byte(`{}`))
	}}
	h := NewRelayHandler(svc)

	w := do(h.Schedule, http.MethodPost, "/api/textsms/schedule",
		`{"mobile":"0712345678","message":"Hi","timeToSend":"2026-10-20 08:00"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-10-20 08:00", gotAt)
}

func TestBulk_AcceptsMessageAlias(t *testing.T) {
	var got [3][]string
	svc := &stubService{bulkFn: func(_ context.Context, mobiles, messages, ids []string) textsms.Result {
		got = [3][]string{mobiles, messages, ids}
		return textsms.Success([]byte(`{"responses":[]}`))
	}}
	h := NewRelayHandler(svc)

	w := do(h.Bulk, http.MethodPost, "/api/textsms/bulk",
		`{"mobileNumbers":["0712345678","0722000111"],"message":["a","b"],"clientSmsIds":["1","2"]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"0712345678", "0722000111"}, got[0])
	assert.Equal(t, []string{"a", "b"}, got[1])
	assert.Equal(t, []string{"1", "2"}, got[2])
}

func TestDeliveryReport_ReadsPathValue(t *testing.T) {
	var gotID string
	svc := &stubService{dlrFn: func(_ context.Context, id string) textsms.Result {
		gotID = id
		return textsms.Success([]byte(`{"delivery-status":"DeliveredToTerminal"}`))
	}}
	h := NewRelayHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/textsms/dlr/{messageId}", h.DeliveryReport)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/textsms/dlr/abc123", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", gotID)
}

func TestBalance_ProviderErrorVerbatim(t *testing.T) {
	svc := &stubService{balanceFn: func(context.Context) textsms.Result {
		return textsms.Failure("1002", "Invalid credentials")
	}}
	h := NewRelayHandler(svc)

	w := do(h.Balance, http.MethodGet, "/api/textsms/balance", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response-code":"1002","response-description":"Invalid credentials"}`, w.Body.String())
}

func TestStats(t *testing.T) {
	svc := &stubService{statsFn: func(context.Context) (service.Stats, error) {
		return service.Stats{dispatch.OpSend: {OK: 2, Error: 1}}, nil
	}}
	h := NewOpsHandler(svc, nil)

	w := do(h.Stats, http.MethodGet, "/api/textsms/stats", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"send":{"ok":2,"error":1}`)
}

func TestOps_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrCacheDisabled, http.StatusServiceUnavailable},
		{cache.ErrNotFound, http.StatusNotFound},
		{errors.New("redis: i/o timeout"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		svc := &stubService{lastFn: func(context.Context) (json.RawMessage, error) { return nil, tc.err }}
		w := do(NewOpsHandler(svc, nil).LastBalance, http.MethodGet, "/api/textsms/balance/last", "")
		assert.Equal(t, tc.want, w.Code, tc.err.Error())
	}
}

func TestLastBalance(t *testing.T) {
	svc := &stubService{lastFn: func(context.Context) (json.RawMessage, error) {
		return json.RawMessage(`{"credit":"10.00"}`), nil
	}}

	w := do(NewOpsHandler(svc, nil).LastBalance, http.MethodGet, "/api/textsms/balance/last", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":{"credit":"10.00"}`)
}

func TestDispatches_Pagination(t *testing.T) {
	var gotPage, gotLimit int
	svc := &stubService{listFn: func(_ context.Context, page, limit int) ([]*dispatch.Record, int64, error) {
		gotPage, gotLimit = page, limit
		rec, _ := dispatch.NewRecord(dispatch.OpBalance, "r1", 0, true, "", "", 0)
		return []*dispatch.Record{rec}, 41, nil
	}}
	h := NewOpsHandler(svc, nil)

	w := do(h.Dispatches, http.MethodGet, "/api/textsms/dispatches?page=3&limit=500", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, gotPage)
	assert.Equal(t, 20, gotLimit)
	assert.Contains(t, w.Body.String(), `"total":41`)
	assert.Contains(t, w.Body.String(), `"operation":"balance"`)
}

func TestRefresher_Control(t *testing.T) {
	sch := &stubScheduler{}
	h := NewOpsHandler(&stubService{}, sch)

	w := do(h.Refresher, http.MethodPost, "/api/textsms/balance/refresher", `{"action":"start"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, sch.running)
	assert.Contains(t, w.Body.String(), `"running":true`)

	w = do(h.Refresher, http.MethodPost, "/api/textsms/balance/refresher", `{"action":"stop"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, sch.running)

	w = do(h.Refresher, http.MethodPost, "/api/textsms/balance/refresher", `{"action":"pause"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefresher_Disabled(t *testing.T) {
	h := NewOpsHandler(&stubService{}, nil)

	w := do(h.Refresher, http.MethodPost, "/api/textsms/balance/refresher", `{"action":"start"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
