package handlers

import (
	"net/http"

	"github.com/MK-CIAN/AWM/internal/logging"
	"github.com/MK-CIAN/AWM/internal/services"
)

type AudiotourHandler struct {
	audiotourService services.AudiotourServiceInterface
}

func NewAudiotourHandler(audiotourService services.AudiotourServiceInterface) *AudiotourHandler {
	return &AudiotourHandler{audiotourService: audiotourService}
}

func (h *AudiotourHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	points, err := h.audiotourService.ListPoints(r.Context(), category)
	if err != nil {
		logging.Error("Failed to list audiotour points", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, points)
}
