package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/oggyb/textsms-relay/internal/cache"
	"github.com/oggyb/textsms-relay/internal/request"
	"github.com/oggyb/textsms-relay/internal/response"
	"github.com/oggyb/textsms-relay/internal/scheduler"
	"github.com/oggyb/textsms-relay/internal/service"
)

// OpsHandler serves the operator endpoints: counters, the cached balance,
// the dispatch audit log and refresher control.
type OpsHandler struct {
	svc       service.RelayService
	refresher scheduler.Scheduler
}

// NewOpsHandler constructs an OpsHandler. refresher may be nil when the
// balance refresher is not configured.
func NewOpsHandler(svc service.RelayService, refresher scheduler.Scheduler) *OpsHandler {
	return &OpsHandler{svc: svc, refresher: refresher}
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCacheDisabled), errors.Is(err, service.ErrAuditDisabled):
		response.RespondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, cache.ErrNotFound):
		response.RespondError(w, http.StatusNotFound, "no balance snapshot yet")
	default:
		response.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

// Stats godoc
// @Summary     Outcome counters
// @Description Returns ok/error counts per relay operation.
// @Tags        ops
// @Produce     json
// @Success     200 {object} response.StatsResponse
// @Failure     503 {object} response.JSONResponse
// @Router      /api/textsms/stats [get]
func (h *OpsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// LastBalance godoc
// @Summary     Last known balance
// @Description Returns the most recent successful balance body without calling the gateway.
// @Tags        ops
// @Produce     json
// @Success     200 {object} response.LastBalanceResponse
// @Failure     404 {object} response.JSONResponse
// @Failure     503 {object} response.JSONResponse
// @Router      /api/textsms/balance/last [get]
func (h *OpsHandler) LastBalance(w http.ResponseWriter, r *http.Request) {
	body, err := h.svc.LastBalance(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, body)
}

// Dispatches godoc
// @Summary     List dispatch records
// @Description Returns a paginated list of relay call outcomes, newest first.
// @Tags        ops
// @Produce     json
// @Param       page  query int false "Page number"         default(1)
// @Param       limit query int false "Page size (max 100)" default(20)
// @Success     200 {object} response.DispatchesResponse
// @Failure     503 {object} response.JSONResponse
// @Router      /api/textsms/dispatches [get]
func (h *OpsHandler) Dispatches(w http.ResponseWriter, r *http.Request) {
	pageStr := r.URL.Query().Get("page")
	limitStr := r.URL.Query().Get("limit")

	page := 1
	limit := 20

	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		page = v
	}

	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	items, total, err := h.svc.ListDispatches(r.Context(), page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	payload := response.DispatchesPayload{
		Items: response.FromDispatchRecords(items),
		Total: total,
		Page:  page,
		Limit: limit,
	}

	response.RespondJSON(w, http.StatusOK, payload)
}

// Refresher godoc
// @Summary     Control the balance refresher
// @Description Starts or stops the background balance refresher.
// @Tags        ops
// @Accept      json
// @Produce     json
// @Param       request body request.RefresherRequest true "Refresher action (start|stop)"
// @Success     200 {object} response.RefresherControlResponse
// @Failure     400 {object} response.JSONResponse
// @Failure     503 {object} response.JSONResponse
// @Router      /api/textsms/balance/refresher [post]
func (h *OpsHandler) Refresher(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		response.RespondError(w, http.StatusServiceUnavailable, "balance refresher is disabled")
		return
	}

	var req request.RefresherRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := request.Validate(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var err error
	msg := "refresher started"
	if req.Action == "start" {
		err = h.refresher.Start()
	} else {
		err = h.refresher.Stop()
		msg = "refresher stopped"
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.RefresherControlPayload{
		Message: msg,
		Running: h.refresher.IsRunning(),
	})
}
