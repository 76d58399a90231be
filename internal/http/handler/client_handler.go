package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/straye-as/calltracker-api/internal/domain"
	"github.com/straye-as/calltracker-api/internal/repository"
	"github.com/straye-as/calltracker-api/internal/service"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientService *service.ClientService
	logger        *zap.Logger
}

func NewClientHandler(clientService *service.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

func parseClientID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid client ID format")
		return uuid.Nil, false
	}
	return id, true
}

func parseOptionalBool(value string) *bool {
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &b
}

// List godoc
// @Summary List clients
// @Description All clients, newest first
// @Tags Clients
// @Produce json
// @Param search query string false "Match name, company or phone"
// @Param isActive query bool false "Filter by active flag"
// @Param isClient query bool false "Filter by paying client flag"
// @Success 200 {array} domain.ClientDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	clients, err := h.clientService.List(r.Context(), repository.ClientFilters{
		Search:   q.Get("search"),
		IsActive: parseOptionalBool(q.Get("isActive")),
		IsClient: parseOptionalBool(q.Get("isClient")),
	})
	if err != nil {
		respondError(w, h.logger, err, "list clients")
		return
	}

	respondJSON(w, http.StatusOK, clients)
}

// GetByID godoc
// @Summary Get client
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Success 200 {object} domain.ClientDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *ClientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseClientID(w, r)
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err, "get client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Create godoc
// @Summary Create client
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body domain.CreateClientRequest true "Client data"
// @Success 201 {object} domain.ClientDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Normalize()

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	client, err := h.clientService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err, "create client")
		return
	}

	w.Header().Set("Location", "/api/clients/"+client.ID.String())
	respondJSON(w, http.StatusCreated, client)
}

// Update godoc
// @Summary Update client
// @Description Partial update; only fields present in the body change
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Param request body domain.UpdateClientRequest true "Client fields"
// @Success 200 {object} domain.ClientDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseClientID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Normalize()

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	client, err := h.clientService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, err, "update client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Delete godoc
// @Summary Delete client
// @Description Deletes the client and all of its calls
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Success 200 {object} domain.DeleteResponse
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseClientID(w, r)
	if !ok {
		return
	}

	if err := h.clientService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err, "delete client")
		return
	}

	respondJSON(w, http.StatusOK, domain.DeleteResponse{Success: true, ID: id})
}

// ToggleActive godoc
// @Summary Toggle client active flag
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Success 200 {object} domain.ClientDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id}/toggle-active [post]
func (h *ClientHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := parseClientID(w, r)
	if !ok {
		return
	}

	client, err := h.clientService.ToggleActive(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err, "toggle client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Promote godoc
// @Summary Mark as client
// @Description Accepts the promotion prompt; a client that already is one is returned unchanged
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Success 200 {object} domain.ClientDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id}/promote [post]
func (h *ClientHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseClientID(w, r)
	if !ok {
		return
	}

	client, err := h.clientService.Promote(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err, "promote client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Import godoc
// @Summary Import clients
// @Description Creates or updates clients keyed on company and phone
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body domain.ImportClientsRequest true "Rows"
// @Success 201 {object} domain.ImportResult
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/import [post]
func (h *ClientHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req domain.ImportClientsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.clientService.Import(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err, "import clients")
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// Stats godoc
// @Summary Client statistics
// @Tags Clients
// @Produce json
// @Success 200 {object} domain.ClientStatsDTO
// @Security BearerAuth
// @Router /clients/stats [get]
func (h *ClientHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.clientService.Stats(r.Context())
	if err != nil {
		respondError(w, h.logger, err, "get client stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
