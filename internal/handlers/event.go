package handlers

import (
	"errors"
	"net/http"

	"github.com/MK-CIAN/AWM/internal/logging"
	"github.com/MK-CIAN/AWM/internal/services"
)

type EventHandler struct {
	eventService services.EventServiceInterface
}

func NewEventHandler(eventService services.EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	events, err := h.eventService.List(r.Context(), category)
	if err != nil {
		logging.Error("Failed to list events", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseEventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	event, err := h.eventService.Get(r.Context(), eventID)
	if errors.Is(err, services.ErrEventNotFound) {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	if errors.Is(err, services.ErrEventCoordinatesMissing) {
		writeError(w, http.StatusBadRequest, "Event coordinates are missing.")
		return
	}
	if err != nil {
		logging.Error("Failed to get event", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	eventID, err := parseEventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	created, err := h.eventService.Save(r.Context(), user.ID, eventID)
	if errors.Is(err, services.ErrEventNotFound) {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		logging.Error("Failed to save event", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if created {
		writeJSON(w, http.StatusCreated, MessageResponse{Message: "Event saved successfully!"})
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Event already saved."})
}

func (h *EventHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	events, err := h.eventService.ListSaved(r.Context(), user.ID)
	if err != nil {
		logging.Error("Failed to list saved events", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, events)
}
