package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/oggyb/textsms-relay/internal/cache"
	"github.com/oggyb/textsms-relay/internal/domain/dispatch"
	"github.com/oggyb/textsms-relay/internal/request"
	"github.com/oggyb/textsms-relay/internal/textsms"
	"github.com/rs/zerolog"
)

var (
	// ErrCacheDisabled is returned by cache-backed queries when no cache is wired.
	ErrCacheDisabled = errors.New("cache is disabled")
	// ErrAuditDisabled is returned by ListDispatches when no repository is wired.
	ErrAuditDisabled = errors.New("dispatch audit is disabled")
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"

	balanceSnapshotTTL = 24 * time.Hour
	auditTimeout       = 2 * time.Second
)

// RelayService is what the HTTP layer calls. The five gateway operations
// return exactly what the gateway client returns; bookkeeping never changes
// a result.
type RelayService interface {
	SendSingle(ctx context.Context, mobile, message string) textsms.Result
	Schedule(ctx context.Context, mobile, message, timeToSend string) textsms.Result
	SendBulk(ctx context.Context, mobiles, messages, clientSmsIDs []string) textsms.Result
	DeliveryReport(ctx context.Context, messageID string) textsms.Result
	Balance(ctx context.Context) textsms.Result

	LastBalance(ctx context.Context) (json.RawMessage, error)
	Stats(ctx context.Context) (Stats, error)
	ListDispatches(ctx context.Context, page, limit int) ([]*dispatch.Record, int64, error)
	RefreshBalance(ctx context.Context) error
}

// Outcome counts results of one operation.
type Outcome struct {
	OK    int64 `json:"ok"`
	Error int64 `json:"error"`
}

// Stats maps each operation to its outcome counters.
type Stats map[dispatch.Operation]Outcome

type relayService struct {
	client textsms.Client
	cache  cache.Cache
	audit  dispatch.Repository
	log    zerolog.Logger
}

// NewRelayService wires the gateway client with optional bookkeeping.
// c and audit may be nil.
func NewRelayService(client textsms.Client, c cache.Cache, audit dispatch.Repository, log zerolog.Logger) RelayService {
	return &relayService{
		client: client,
		cache:  c,
		audit:  audit,
		log:    log,
	}
}

func (s *relayService) SendSingle(ctx context.Context, mobile, message string) textsms.Result {
	start := time.Now()
	res := s.client.SendSMS(ctx, mobile, message)
	s.record(ctx, dispatch.OpSend, 1, start, res)
	return res
}

func (s *relayService) Schedule(ctx context.Context, mobile, message, timeToSend string) textsms.Result {
	start := time.Now()
	res := s.client.ScheduleSMS(ctx, mobile, message, timeToSend)
	s.record(ctx, dispatch.OpSchedule, 1, start, res)
	return res
}

func (s *relayService) SendBulk(ctx context.Context, mobiles, messages, clientSmsIDs []string) textsms.Result {
	start := time.Now()
	res := s.client.SendBulkSMS(ctx, mobiles, messages, clientSmsIDs)
	s.record(ctx, dispatch.OpBulk, len(mobiles), start, res)
	return res
}

func (s *relayService) DeliveryReport(ctx context.Context, messageID string) textsms.Result {
	start := time.Now()
	res := s.client.DeliveryReport(ctx, messageID)
	s.record(ctx, dispatch.OpDeliveryReport, 0, start, res)
	return res
}

// Balance always asks the gateway; a successful body is also kept as the
// last known balance.
func (s *relayService) Balance(ctx context.Context) textsms.Result {
	start := time.Now()
	res := s.client.Balance(ctx)
	s.record(ctx, dispatch.OpBalance, 0, start, res)

	if res.OK() && s.cache != nil {
		if err := s.cache.Set(ctx, cache.Balance.Key(), string(res.Body), balanceSnapshotTTL); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache balance snapshot")
		}
	}
	return res
}

// LastBalance returns the most recent successful balance body.
func (s *relayService) LastBalance(ctx context.Context) (json.RawMessage, error) {
	if s.cache == nil {
		return nil, ErrCacheDisabled
	}
	v, err := s.cache.Get(ctx, cache.Balance.Key())
	if err != nil {
		return nil, err
	}
	return json.RawMessage(v), nil
}

// Stats reads the outcome counters of every operation. Missing counters are zero.
func (s *relayService) Stats(ctx context.Context) (Stats, error) {
	if s.cache == nil {
		return nil, ErrCacheDisabled
	}

	out := make(Stats, len(dispatch.Operations))
	for _, op := range dispatch.Operations {
		okCount, err := s.counter(ctx, cache.Outcomes.Key(string(op), outcomeOK))
		if err != nil {
			return nil, err
		}
		errCount, err := s.counter(ctx, cache.Outcomes.Key(string(op), outcomeError))
		if err != nil {
			return nil, err
		}
		out[op] = Outcome{OK: okCount, Error: errCount}
	}
	return out, nil
}

func (s *relayService) counter(ctx context.Context, key string) (int64, error) {
	v, err := s.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter %s: %w", key, err)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse counter %s: %w", key, err)
	}
	return n, nil
}

func (s *relayService) ListDispatches(ctx context.Context, page, limit int) ([]*dispatch.Record, int64, error) {
	if s.audit == nil {
		return nil, 0, ErrAuditDisabled
	}
	return s.audit.List(ctx, page, limit)
}

// RefreshBalance is run by the balance refresher on every tick.
func (s *relayService) RefreshBalance(ctx context.Context) error {
	res := s.Balance(ctx)
	if !res.OK() {
		return fmt.Errorf("balance refresh: %s %s", res.Failure.ResponseCode, res.Failure.ResponseDescription)
	}
	return nil
}

// record logs, counts and audits a finished operation. Failures here are
// logged and swallowed.
func (s *relayService) record(ctx context.Context, op dispatch.Operation, recipients int, start time.Time, res textsms.Result) {
	took := time.Since(start)
	reqID := request.IDFrom(ctx)

	outcome := outcomeOK
	ev := s.log.Info()
	if !res.OK() {
		outcome = outcomeError
		ev = s.log.Warn()
	}
	ev.Str("op", string(op)).
		Str("request_id", reqID).
		Int("recipients", recipients).
		Str("response_code", res.Code()).
		Dur("took", took).
		Msg("relay call finished")

	if s.cache != nil {
		if _, err := s.cache.Incr(ctx, cache.Outcomes.Key(string(op), outcome)); err != nil {
			s.log.Warn().Err(err).Str("op", string(op)).Msg("failed to increment outcome counter")
		}
	}

	if s.audit == nil {
		return
	}

	rec, err := dispatch.NewRecord(op, reqID, recipients, res.OK(), res.Code(), res.Description(), took)
	if err != nil {
		s.log.Warn().Err(err).Str("op", string(op)).Msg("failed to build dispatch record")
		return
	}

	// The inbound request may already be finished; the audit write must not
	// be cancelled with it.
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()

	if err := s.audit.Save(auditCtx, rec); err != nil {
		s.log.Warn().Err(err).Str("op", string(op)).Msg("failed to save dispatch record")
	}
}
