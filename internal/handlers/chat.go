package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/MK-CIAN/AWM/internal/hub"
	"github.com/MK-CIAN/AWM/internal/logging"
	"github.com/MK-CIAN/AWM/internal/models"
	"github.com/MK-CIAN/AWM/internal/services"
)

type ChatHandler struct {
	chatService services.ChatServiceInterface
	hub         *hub.Hub
}

func NewChatHandler(chatService services.ChatServiceInterface, h *hub.Hub) *ChatHandler {
	return &ChatHandler{chatService: chatService, hub: h}
}

type ChatRoomResponse struct {
	models.ChatRoom
	Messages []models.Message `json:"messages"`
}

type PostMessageRequest struct {
	Content string `json:"content"`
}

// GetRoom returns the event's chat room, creating it on first access,
// together with its message log.
func (h *ChatHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseEventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	room, err := h.chatService.GetOrCreateRoom(r.Context(), eventID)
	if errors.Is(err, services.ErrEventNotFound) {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		logging.Error("Failed to get chat room", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	messages, err := h.chatService.ListMessages(r.Context(), room.ID)
	if err != nil {
		logging.Error("Failed to list messages", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ChatRoomResponse{ChatRoom: *room, Messages: messages})
}

// ListMessages returns the room's log, oldest first. The room must exist.
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseEventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	room, err := h.chatService.GetRoom(r.Context(), eventID)
	if errors.Is(err, services.ErrRoomNotFound) {
		writeError(w, http.StatusNotFound, "Chat room not found")
		return
	}
	if err != nil {
		logging.Error("Failed to get chat room", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	messages, err := h.chatService.ListMessages(r.Context(), room.ID)
	if err != nil {
		logging.Error("Failed to list messages", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
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

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := h.chatService.GetRoom(r.Context(), eventID)
	if errors.Is(err, services.ErrRoomNotFound) {
		writeError(w, http.StatusNotFound, "Chat room not found")
		return
	}
	if err != nil {
		logging.Error("Failed to get chat room", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	msg, err := h.chatService.PostMessage(r.Context(), room.ID, user.ID, req.Content)
	if errors.Is(err, services.ErrEmptyContent) {
		writeError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}
	if err != nil {
		logging.Error("Failed to post message", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.hub.Broadcast(room.ID, hub.Event{Type: "message", Payload: msg})

	writeJSON(w, http.StatusCreated, msg)
}

// Stream serves the room's live feed as server-sent events.
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseEventID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	room, err := h.chatService.GetOrCreateRoom(r.Context(), eventID)
	if errors.Is(err, services.ErrEventNotFound) {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		logging.Error("Failed to get chat room", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	client := h.hub.Subscribe(room.ID)
	defer h.hub.Unsubscribe(room.ID, client)

	for {
		select {
		case <-r.Context().Done():
			return
		case data, ok := <-client:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func parseEventID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}
