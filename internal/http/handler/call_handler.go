package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/straye-as/calltracker-api/internal/domain"
	"github.com/straye-as/calltracker-api/internal/service"
	"go.uber.org/zap"
)

type CallHandler struct {
	callService *service.CallService
	logger      *zap.Logger
}

func NewCallHandler(callService *service.CallService, logger *zap.Logger) *CallHandler {
	return &CallHandler{
		callService: callService,
		logger:      logger,
	}
}

func parseUUIDParam(w http.ResponseWriter, r *http.Request, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// List godoc
// @Summary List calls
// @Description All calls, most recent call date first
// @Tags Calls
// @Produce json
// @Success 200 {array} domain.CallDTO
// @Security BearerAuth
// @Router /calls [get]
func (h *CallHandler) List(w http.ResponseWriter, r *http.Request) {
	calls, err := h.callService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err, "list calls")
		return
	}

	respondJSON(w, http.StatusOK, calls)
}

// GetByID godoc
// @Summary Get call
// @Tags Calls
// @Produce json
// @Param id path string true "Call ID" format(uuid)
// @Success 200 {object} domain.CallDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /calls/{id} [get]
func (h *CallHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "call")
	if !ok {
		return
	}

	call, err := h.callService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err, "get call")
		return
	}

	respondJSON(w, http.StatusOK, call)
}

// Create godoc
// @Summary Log a call
// @Description Status and outcome accept tokens (in_progress) or display values (In Progress)
// @Tags Calls
// @Accept json
// @Produce json
// @Param request body domain.CreateCallRequest true "Call data"
// @Success 201 {object} domain.CallResultDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /calls [post]
func (h *CallHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCallRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Normalize()

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	call, err := h.callService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err, "create call")
		return
	}

	w.Header().Set("Location", "/api/calls/"+call.ID.String())
	respondJSON(w, http.StatusCreated, call)
}

// Update godoc
// @Summary Update call
// @Description Partial update; an empty nextActionDate or outcome clears it, an empty status keeps the current one
// @Tags Calls
// @Accept json
// @Produce json
// @Param id path string true "Call ID" format(uuid)
// @Param request body domain.UpdateCallRequest true "Call fields"
// @Success 200 {object} domain.CallResultDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /calls/{id} [put]
func (h *CallHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "call")
	if !ok {
		return
	}

	var req domain.UpdateCallRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Normalize()

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	call, err := h.callService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, err, "update call")
		return
	}

	respondJSON(w, http.StatusOK, call)
}

// Delete godoc
// @Summary Delete call
// @Tags Calls
// @Produce json
// @Param id path string true "Call ID" format(uuid)
// @Success 200 {object} domain.DeleteResponse
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /calls/{id} [delete]
func (h *CallHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "call")
	if !ok {
		return
	}

	if err := h.callService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err, "delete call")
		return
	}

	respondJSON(w, http.StatusOK, domain.DeleteResponse{Success: true, ID: id})
}

// Today godoc
// @Summary Today's calls
// @Description Scheduled calls dated today and calls with a follow-up today, for the current user
// @Tags Calls
// @Produce json
// @Param date query string false "Reference day (YYYY-MM-DD)"
// @Success 200 {array} domain.ScheduledCallDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /calls/today [get]
func (h *CallHandler) Today(w http.ResponseWriter, r *http.Request) {
	calls, err := h.callService.Today(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, h.logger, err, "get today's calls")
		return
	}

	respondJSON(w, http.StatusOK, calls)
}

// Upcoming godoc
// @Summary Upcoming calls
// @Tags Calls
// @Produce json
// @Param limit query int false "Maximum number of calls"
// @Success 200 {array} domain.ScheduledCallDTO
// @Security BearerAuth
// @Router /calls/upcoming [get]
func (h *CallHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	calls, err := h.callService.Upcoming(r.Context(), limit)
	if err != nil {
		respondError(w, h.logger, err, "get upcoming calls")
		return
	}

	respondJSON(w, http.StatusOK, calls)
}

// Calendar godoc
// @Summary Calendar month
// @Description Call and follow-up dates bucketed by day
// @Tags Calls
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} domain.CalendarDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /calls/calendar [get]
func (h *CallHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	year, yearErr := strconv.Atoi(r.URL.Query().Get("year"))
	month, monthErr := strconv.Atoi(r.URL.Query().Get("month"))
	if yearErr != nil || monthErr != nil {
		respondWithError(w, http.StatusBadRequest, "year and month must be integers")
		return
	}

	calendar, err := h.callService.Calendar(r.Context(), year, month)
	if err != nil {
		respondError(w, h.logger, err, "get calendar")
		return
	}

	respondJSON(w, http.StatusOK, calendar)
}

// ByClient godoc
// @Summary Calls for a client
// @Tags Calls
// @Produce json
// @Param clientId path string true "Client ID" format(uuid)
// @Success 200 {array} domain.CallDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /calls/client/{clientId} [get]
func (h *CallHandler) ByClient(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseUUIDParam(w, r, "clientId", "client")
	if !ok {
		return
	}

	calls, err := h.callService.ListByClient(r.Context(), clientID)
	if err != nil {
		respondError(w, h.logger, err, "list client calls")
		return
	}

	respondJSON(w, http.StatusOK, calls)
}

// Import godoc
// @Summary Import calls
// @Description One call per row; client is an ID or the name or address of one of your clients
// @Tags Calls
// @Accept json
// @Produce json
// @Param request body domain.ImportCallsRequest true "Rows"
// @Success 201 {object} domain.ImportResult
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /calls/import [post]
func (h *CallHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req domain.ImportCallsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.callService.Import(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err, "import calls")
		return
	}

	respondJSON(w, http.StatusCreated, result)
}
