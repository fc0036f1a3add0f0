// Package textsms talks to the TextSMS gateway HTTP API. Every operation
// resolves to a Result; transport and provider failures never surface as Go
// errors.
package textsms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client is the contract the relay service depends on.
type Client interface {
	SendSMS(ctx context.Context, mobile, message string) Result
	ScheduleSMS(ctx context.Context, mobile, message, timeToSend string) Result
	SendBulkSMS(ctx context.Context, mobiles, messages, clientSmsIDs []string) Result
	DeliveryReport(ctx context.Context, messageID string) Result
	Balance(ctx context.Context) Result
}

// Credentials identify the account on the gateway.
type Credentials struct {
	APIKey    string
	PartnerID string
	SenderID  string
}

// Endpoints holds the gateway URLs, one per operation.
type Endpoints struct {
	Send           string
	Bulk           string
	DeliveryReport string
	Balance        string
}

const (
	defaultTimeout = 10 * time.Second

	balanceFallback = "Error: Unable to fetch balance"

	// maxBodySize bounds how much of a gateway response we buffer.
	maxBodySize = 4 << 20
)

var _ Client = (*GatewayClient)(nil)

// GatewayClient is the HTTP implementation of Client.
type GatewayClient struct {
	creds      Credentials
	endpoints  Endpoints
	timeout    time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

// Option customises a GatewayClient.
type Option func(*GatewayClient)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *GatewayClient) { c.httpClient = hc }
}

// WithTimeout bounds each outbound call when the caller's context has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *GatewayClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger attaches a logger for failed calls.
func WithLogger(l zerolog.Logger) Option {
	return func(c *GatewayClient) { c.log = l }
}

// NewGatewayClient creates a client bound to the given account and endpoints.
func NewGatewayClient(creds Credentials, endpoints Endpoints, opts ...Option) *GatewayClient {
	c := &GatewayClient{
		creds:     creds,
		endpoints: endpoints,
		timeout:   defaultTimeout,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// withTimeout wraps the context with a timeout if it doesn't already have one.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// SendSMS sends one message immediately.
func (c *GatewayClient) SendSMS(ctx context.Context, mobile, message string) Result {
	payload := sendPayload{
		APIKey:    c.creds.APIKey,
		PartnerID: c.creds.PartnerID,
		Message:   message,
		Shortcode: c.creds.SenderID,
		Mobile:    NormalizeMobile(mobile),
	}
	return c.post(ctx, "send", c.endpoints.Send, payload, "")
}

// ScheduleSMS asks the gateway to deliver one message at timeToSend.
// The timestamp is forwarded as given.
func (c *GatewayClient) ScheduleSMS(ctx context.Context, mobile, message, timeToSend string) Result {
	payload := sendPayload{
		APIKey:     c.creds.APIKey,
		PartnerID:  c.creds.PartnerID,
		Message:    message,
		Shortcode:  c.creds.SenderID,
		Mobile:     NormalizeMobile(mobile),
		TimeToSend: timeToSend,
	}
	return c.post(ctx, "schedule", c.endpoints.Send, payload, "")
}

// SendBulkSMS submits one batch in which entry i carries mobiles[i],
// messages[i] and clientSmsIDs[i]. Unequal lengths fail locally.
func (c *GatewayClient) SendBulkSMS(ctx context.Context, mobiles, messages, clientSmsIDs []string) Result {
	if len(mobiles) != len(messages) || len(mobiles) != len(clientSmsIDs) {
		c.log.Warn().
			Int("mobiles", len(mobiles)).
			Int("messages", len(messages)).
			Int("clientSmsIds", len(clientSmsIDs)).
			Msg("bulk request rejected: length mismatch")
		return Errorf("The length of mobiles, messages and clientSmsIds must be the same")
	}

	return c.post(ctx, "bulk", c.endpoints.Bulk, buildBulk(c.creds, mobiles, messages, clientSmsIDs), "")
}

// DeliveryReport looks up the delivery status of a sent message.
func (c *GatewayClient) DeliveryReport(ctx context.Context, messageID string) Result {
	payload := deliveryReportPayload{
		APIKey:    c.creds.APIKey,
		PartnerID: c.creds.PartnerID,
		MessageID: messageID,
	}
	return c.post(ctx, "dlr", c.endpoints.DeliveryReport, payload, "")
}

// Balance fetches the account credit balance.
func (c *GatewayClient) Balance(ctx context.Context) Result {
	payload := balancePayload{
		APIKey:    c.creds.APIKey,
		PartnerID: c.creds.PartnerID,
	}
	return c.post(ctx, "balance", c.endpoints.Balance, payload, balanceFallback)
}

// post performs the single outbound call shared by every operation.
// fallback, when set, replaces the generic description of failures that
// carry no provider-supplied description.
func (c *GatewayClient) post(ctx context.Context, op, endpoint string, payload any, fallback string) Result {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.do(ctx, endpoint, payload)
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Msg("gateway call failed")
		if fallback != "" {
			return Failure(ErrorCode, fmt.Sprintf("%s: %v", fallback, err))
		}
		return Errorf("%v", err)
	}

	if res.status < 200 || res.status >= 300 {
		code, desc := providerStatus(res.body)
		c.log.Error().
			Str("op", op).
			Int("status", res.status).
			Str("response_code", code).
			Str("body", string(res.body)).
			Msg("gateway returned non-2xx status")

		if desc == "" {
			desc = fallback
		}
		if desc == "" {
			desc = fmt.Sprintf("Error:Request failed with status code %d", res.status)
		}
		return Failure(code, desc)
	}

	if !json.Valid(res.body) {
		c.log.Error().Str("op", op).Str("body", string(res.body)).Msg("gateway returned non-JSON body")
		if fallback != "" {
			return Failure(ErrorCode, fallback+": invalid JSON response")
		}
		return Errorf("invalid JSON response from gateway")
	}

	return Success(res.body)
}

type rawResponse struct {
	status int
	body   []byte
}

func (c *GatewayClient) do(ctx context.Context, endpoint string, payload any) (*rawResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("request timeout or canceled: %w", err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &rawResponse{status: resp.StatusCode, body: raw}, nil
}
