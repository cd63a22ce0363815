package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fintrack/internal/api/types"
	"fintrack/internal/domain"
	"fintrack/internal/service"
	"fintrack/internal/util"
)

// DefaultTimeout bounds request handling at the router level.
const DefaultTimeout = 60 * time.Second

// TransactionHandler handles HTTP requests for transaction operations.
type TransactionHandler struct {
	service     service.TransactionService
	userService service.UserService
	logger      *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.TransactionService, userSvc service.UserService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service:     svc,
		userService: userSvc,
		logger:      logger,
	}
}

// TransactionRequest is the inbound payload for create and update.
type TransactionRequest struct {
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Type        string          `json:"type"`
	Status      string          `json:"status,omitempty"`
	UserID      int64           `json:"user_id"`
}

// StatusRequest is the inbound payload for the status endpoint.
type StatusRequest struct {
	Status string `json:"status"`
}

// Helper function to send JSON responses.
func (h *TransactionHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *TransactionHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		statusCode = http.StatusBadRequest
		message = verr.Message
	case util.IsError(err, util.ErrMissingID), util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusBadRequest
		message = "user not found for the given id"
	case util.IsError(err, util.ErrTransactionNotFound):
		statusCode = http.StatusBadRequest
		message = "transaction not found"
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Error: message})
}

// toDomain converts an inbound payload into a domain transaction.
// Resolving the user is a required pre-step: an unknown user fails the whole
// conversion, distinct from a malformed payload.
func (h *TransactionHandler) toDomain(r *http.Request, req TransactionRequest) (*domain.Transaction, error) {
	user, err := h.userService.FindByID(r.Context(), req.UserID)
	if err != nil {
		return nil, err
	}

	var txType domain.TransactionType
	if req.Type != "" {
		txType, err = domain.ParseTransactionType(req.Type)
		if err != nil {
			return nil, err
		}
	}

	transaction := domain.NewTransaction(req.Description, req.Month, req.Year, req.Value, txType, user.ID)

	if req.Status != "" {
		status, err := domain.ParseTransactionStatus(req.Status)
		if err != nil {
			return nil, err
		}
		transaction.Status = status
	}
	return transaction, nil
}

// Create handles POST /transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	transaction, err := h.toDomain(r, req)
	if err != nil {
		if util.IsError(err, util.ErrUserNotFound) {
			h.respondWithError(w, err)
		} else {
			h.respondWithJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		}
		return
	}

	created, err := h.service.Create(r.Context(), transaction)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, created)
}

// Get handles GET /transactions/{transactionID}.
// A miss answers 404 with no body.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "transactionID"), 10, 64)
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	transaction, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, transaction)
}

// Update handles PUT /transactions/{transactionID}.
// The record must already exist; a miss answers 400 with a message, matching
// the create/update error contract rather than the read one.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "transactionID"), 10, 64)
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	existing, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			h.respondWithError(w, util.ErrTransactionNotFound)
			return
		}
		h.respondWithError(w, err)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	transaction, err := h.toDomain(r, req)
	if err != nil {
		if util.IsError(err, util.ErrUserNotFound) {
			h.respondWithError(w, err)
		} else {
			h.respondWithJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		}
		return
	}

	transaction.ID = existing.ID
	transaction.CreatedAt = existing.CreatedAt
	if req.Status == "" {
		transaction.Status = existing.Status
	}

	updated, err := h.service.Update(r.Context(), transaction)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, updated)
}

// UpdateStatus handles PUT /transactions/{transactionID}/status.
func (h *TransactionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "transactionID"), 10, 64)
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	existing, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			h.respondWithError(w, util.ErrTransactionNotFound)
			return
		}
		h.respondWithError(w, err)
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	status, err := domain.ParseTransactionStatus(req.Status)
	if err != nil {
		h.respondWithJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.service.ChangeStatus(r.Context(), existing, status)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /transactions/{transactionID}.
// Existence is pre-checked here; the service does not guard a miss.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "transactionID"), 10, 64)
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	existing, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			h.respondWithError(w, util.ErrTransactionNotFound)
			return
		}
		h.respondWithError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), existing.ID); err != nil {
		h.respondWithError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /transactions?description&month&year&user.
// The user parameter is mandatory and must resolve to an existing user.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	userID, err := strconv.ParseInt(query.Get("user"), 10, 64)
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	user, err := h.userService.FindByID(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	filter := domain.TransactionFilter{
		Description: query.Get("description"),
		UserID:      user.ID,
	}
	if monthStr := query.Get("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			h.respondWithError(w, util.ErrInvalidInput)
			return
		}
		filter.Month = &month
	}
	if yearStr := query.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			h.respondWithError(w, util.ErrInvalidInput)
			return
		}
		filter.Year = &year
	}

	transactions, err := h.service.FindByFilter(r.Context(), filter)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.ListResponse[domain.Transaction]{
		Data:  transactions,
		Count: len(transactions),
	})
}

// GetBalance handles GET /users/{userID}/balance.
func (h *TransactionHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	user, err := h.userService.FindByID(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	balance, err := h.service.ComputeBalance(r.Context(), user.ID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": user.ID,
		"balance": balance,
	})
}
