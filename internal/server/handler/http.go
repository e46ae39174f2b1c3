// Package handler provides the HTTP surface of the booking service.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/brizzai/calbook/internal/auth"
	"github.com/brizzai/calbook/internal/booking"
	"github.com/brizzai/calbook/internal/logger"
	"github.com/brizzai/calbook/internal/token"
	"github.com/brizzai/calbook/internal/utils"
	"go.uber.org/zap"
)

const (
	initPath   = "/calendar/init/"
	eventsPath = "/calendar/events/"

	// alreadyBookedMessage is part of the public contract; clients match on it.
	alreadyBookedMessage = "Sorry, date already booked. Choose another one."
)

// Handler wires the booking service routes onto a mux.
type Handler struct {
	flow   *auth.Flow
	store  token.Store
	booker *booking.Booker
}

// NewHandler creates a new Handler.
func NewHandler(flow *auth.Flow, store token.Store, booker *booking.Booker) *Handler {
	return &Handler{
		flow:   flow,
		store:  store,
		booker: booker,
	}
}

// Routes returns the handler for all booking service endpoints.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(initPath, h.handleInit)
	mux.HandleFunc("/calendar/redirect/", h.handleRedirect)
	mux.HandleFunc(eventsPath, h.handleEvents)
	mux.HandleFunc("/calendar/check_appointment", h.handleCheck)
	mux.HandleFunc("/calendar/create_appointment", h.handleCreate)
	return mux
}

// handleInit starts the authorization flow by sending the client to the
// Google consent page.
func (h *Handler) handleInit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	http.Redirect(w, r, h.flow.AuthCodeURL("state-token"), http.StatusFound)
}

// handleRedirect finishes the authorization flow: it exchanges the code and
// persists the credential record, overwriting any previous one.
func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteError(w, "code query parameter is required", http.StatusBadRequest)
		return
	}

	tok, err := h.flow.Exchange(r.Context(), code)
	if err != nil {
		logger.Error("Failed to exchange authorization code", zap.Error(err))
		utils.WriteError(w, fmt.Sprintf("Error exchanging authorization code: %v", err), http.StatusInternalServerError)
		return
	}

	if err := h.store.Save(r.Context(), token.FromToken(tok, h.flow.Scopes())); err != nil {
		logger.Error("Failed to persist credentials", zap.Error(err))
		utils.WriteError(w, fmt.Sprintf("Error saving credentials: %v", err), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, eventsPath, http.StatusFound)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	events, err := h.booker.UpcomingEvents(r.Context())
	if err != nil {
		if errors.Is(err, booking.ErrAuthorizationRequired) {
			http.Redirect(w, r, initPath, http.StatusFound)
			return
		}
		logger.Error("Failed to list events", zap.Error(err))
		utils.WriteError(w, fmt.Sprintf("Error listing events: %v", err), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, events)
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dateTime := r.URL.Query().Get("date_time")
	if dateTime == "" {
		utils.WriteError(w, "date_time query parameter is required", http.StatusBadRequest)
		return
	}

	booked, err := h.booker.Check(r.Context(), dateTime)
	if err != nil {
		logger.Error("Failed to check appointment", zap.Error(err))
		utils.WriteError(w, fmt.Sprintf("Error checking appointment: %v", err), http.StatusInternalServerError)
		return
	}

	status := "False"
	if booked {
		status = "True"
	}
	utils.WriteJSON(w, map[string]string{"status": status})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req booking.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	confirmation, err := h.booker.Book(r.Context(), &req)
	if err != nil {
		h.writeBookError(w, r, err)
		return
	}

	utils.WriteJSON(w, confirmation)
}

func (h *Handler) writeBookError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *booking.ValidationError

	switch {
	case errors.As(err, &validationErr):
		utils.WriteError(w, "All fields are required", http.StatusBadRequest)

	case errors.Is(err, booking.ErrAlreadyBooked):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(map[string]string{"message": alreadyBookedMessage}); encodeErr != nil {
			logger.Error("Failed to encode conflict response", zap.Error(encodeErr))
		}

	case errors.Is(err, booking.ErrAuthorizationRequired):
		http.Redirect(w, r, initPath, http.StatusFound)

	default:
		logger.Error("Failed to create appointment", zap.Error(err))
		utils.WriteError(w, fmt.Sprintf("Error creating event: %v", err), http.StatusInternalServerError)
	}
}
