// Package api exposes the ledger service over HTTP.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/evensplit/internal/models"
	"github.com/mmynk/evensplit/internal/service"
	"github.com/mmynk/evensplit/pkg/response"
)

// Handler handles HTTP requests for ledger operations
type Handler struct {
	service *service.LedgerService
}

// NewHandler creates a new ledger handler
func NewHandler(svc *service.LedgerService) *Handler {
	return &Handler{service: svc}
}

// Routes returns the router for ledger endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/participants", h.SetParticipantCount)
		r.Patch("/participants/{pid}", h.RenameParticipant)
		r.Put("/total", h.SetTotalAmount)
		r.Post("/calculate", h.Calculate)
		r.Post("/expenses", h.AddExpense)
		r.Delete("/expenses/{eid}", h.RemoveExpense)
		r.Get("/settlements", h.Settlements)
		r.Post("/reset", h.Reset)
		r.Post("/session", h.SaveSession)
		r.Post("/session/load", h.LoadSession)
	})

	return r
}

// Create handles POST /ledgers
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, view)
}

// List handles GET /ledgers
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	response.JSON(w, http.StatusOK, ids)
}

// Get handles GET /ledgers/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// SetParticipantCount handles PUT /ledgers/{id}/participants
func (h *Handler) SetParticipantCount(w http.ResponseWriter, r *http.Request) {
	var req SetParticipantCountRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := h.service.SetParticipantCount(r.Context(), chi.URLParam(r, "id"), req.Count)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// RenameParticipant handles PATCH /ledgers/{id}/participants/{pid}
func (h *Handler) RenameParticipant(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(chi.URLParam(r, "pid"))
	if err != nil {
		response.BadRequest(w, "Invalid participant ID")
		return
	}
	var req RenameParticipantRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := h.service.RenameParticipant(r.Context(), chi.URLParam(r, "id"), pid, *req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// SetTotalAmount handles PUT /ledgers/{id}/total
func (h *Handler) SetTotalAmount(w http.ResponseWriter, r *http.Request) {
	var req SetTotalAmountRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := h.service.SetTotalAmount(r.Context(), chi.URLParam(r, "id"), req.TotalAmount)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// Calculate handles POST /ledgers/{id}/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	var (
		view service.View
		err  error
	)
	switch {
	case req.TotalAmount == nil && req.ParticipantCount == nil:
		view, err = h.service.Calculate(r.Context(), id)
	case req.TotalAmount != nil && req.ParticipantCount != nil:
		view, err = h.service.CalculateShare(r.Context(), id, *req.TotalAmount, *req.ParticipantCount)
	default:
		response.BadRequest(w, "totalAmount and participantCount must be given together")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// AddExpense handles POST /ledgers/{id}/expenses
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req AddExpenseRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := h.service.AddExpense(r.Context(), chi.URLParam(r, "id"), *req.PaidBy, req.Amount, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, view)
}

// RemoveExpense handles DELETE /ledgers/{id}/expenses/{eid}
func (h *Handler) RemoveExpense(w http.ResponseWriter, r *http.Request) {
	eid, err := strconv.ParseInt(chi.URLParam(r, "eid"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}
	view, err := h.service.RemoveExpense(r.Context(), chi.URLParam(r, "id"), eid)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// Settlements handles GET /ledgers/{id}/settlements
func (h *Handler) Settlements(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.Settlements(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, plan)
}

// Reset handles POST /ledgers/{id}/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// SaveSession handles POST /ledgers/{id}/session
func (h *Handler) SaveSession(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.SaveSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, info)
}

// LoadSession handles POST /ledgers/{id}/session/load
func (h *Handler) LoadSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.LoadSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// writeError maps domain and service errors onto HTTP responses.
func writeError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		response.ErrorWithDetails(w, http.StatusBadRequest, response.CodeValidation, reqErr.message, reqErr.details)
	case errors.Is(err, models.ErrInvalidCount),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrValidation):
		response.Error(w, http.StatusBadRequest, response.CodeValidation, err.Error())
	case errors.Is(err, models.ErrInvalidParticipant):
		response.Error(w, http.StatusBadRequest, response.CodeInvalidParticipant, err.Error())
	case errors.Is(err, service.ErrLedgerNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrNoSession):
		response.Error(w, http.StatusNotFound, response.CodeNoSession, service.ErrNoSession.Error())
	default:
		slog.Error("Request failed", "error", err)
		response.InternalError(w, "Internal server error")
	}
}
