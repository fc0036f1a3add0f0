package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/oggyb/textsms-relay/internal/request"
	"github.com/oggyb/textsms-relay/internal/response"
	"github.com/oggyb/textsms-relay/internal/service"
)

// maxBodyBytes caps inbound JSON bodies; bulk batches are the largest.
const maxBodyBytes = 1 << 20

// RelayHandler exposes the gateway operations. Every relay endpoint answers
// 200 with the gateway result, success or failure; only malformed input gets
// a 400.
type RelayHandler struct {
	svc service.RelayService
}

// NewRelayHandler constructs a RelayHandler.
func NewRelayHandler(svc service.RelayService) *RelayHandler {
	return &RelayHandler{svc: svc}
}

// decode reads and validates a JSON body into dst, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.RespondInvalid(w, "invalid JSON body")
		return false
	}
	if err := request.Validate(dst); err != nil {
		response.RespondInvalid(w, err.Error())
		return false
	}
	return true
}

// Send godoc
// @Summary     Send a single SMS
// @Description Normalises the mobile number and forwards the message to the gateway.
// @Tags        textsms
// @Accept      json
// @Produce     json
// @Param       request body request.SendRequest true "Recipient and message"
// @Success     200 {object} object "Gateway response body, or response.GatewayError"
// @Failure     400 {object} response.GatewayError
// @Router      /api/textsms/send [post]
func (h *RelayHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req request.SendRequest
	if !decode(w, r, &req) {
		return
	}

	response.RespondResult(w, http.StatusOK, h.svc.SendSingle(r.Context(), req.Mobile, req.Message))
}

// Schedule godoc
// @Summary     Schedule an SMS
// @Description Forwards the message with a timeToSend the gateway delivers at.
// @Tags        textsms
// @Accept      json
// @Produce     json
// @Param       request body request.ScheduleRequest true "Recipient, message and send time"
// @Success     200 {object} object "Gateway response body, or response.GatewayError"
// @Failure     400 {object} response.GatewayError
// @Router      /api/textsms/schedule [post]
func (h *RelayHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req request.ScheduleRequest
	if !decode(w, r, &req) {
		return
	}

	res := h.svc.Schedule(r.Context(), req.Mobile, req.Message, req.TimeToSend)
	response.RespondResult(w, http.StatusOK, res)
}

// Bulk godoc
// @Summary     Send a bulk SMS batch
// @Description Sends one batch; mobileNumbers[i], messages[i] and clientSmsIds[i] form entry i.
// @Tags        textsms
// @Accept      json
// @Produce     json
// @Param       request body request.BulkRequest true "Parallel lists of equal length"
// @Success     200 {object} object "Gateway response body, or response.GatewayError"
// @Failure     400 {object} response.GatewayError
// @Router      /api/textsms/bulk [post]
func (h *RelayHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req request.BulkRequest
	if !decode(w, r, &req) {
		return
	}

	res := h.svc.SendBulk(r.Context(), req.MobileNumbers, req.Texts(), req.ClientSmsIDs)
	response.RespondResult(w, http.StatusOK, res)
}

// DeliveryReport godoc
// @Summary     Delivery report
// @Description Looks up the delivery status of a previously sent message.
// @Tags        textsms
// @Produce     json
// @Param       messageId path string true "Gateway message id"
// @Success     200 {object} object "Gateway response body, or response.GatewayError"
// @Failure     400 {object} response.GatewayError
// @Router      /api/textsms/dlr/{messageId} [get]
func (h *RelayHandler) DeliveryReport(w http.ResponseWriter, r *http.Request) {
	messageID := strings.TrimSpace(r.PathValue("messageId"))
	if messageID == "" {
		response.RespondInvalid(w, "messageId is required")
		return
	}

	response.RespondResult(w, http.StatusOK, h.svc.DeliveryReport(r.Context(), messageID))
}

// Balance godoc
// @Summary     Account balance
// @Description Queries the gateway for the account credit balance.
// @Tags        textsms
// @Produce     json
// @Success     200 {object} object "Gateway response body, or response.GatewayError"
// @Router      /api/textsms/balance [get]
func (h *RelayHandler) Balance(w http.ResponseWriter, r *http.Request) {
	response.RespondResult(w, http.StatusOK, h.svc.Balance(r.Context()))
}
