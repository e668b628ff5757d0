package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tutorhive/tutorhive-api/internal/entity"
)

type SettingsHandler struct {
	Repo     entity.SettingsRepositoryInterface
	Defaults entity.Settings
}

func NewSettingsHandler(repo entity.SettingsRepositoryInterface, defaults entity.Settings) *SettingsHandler {
	return &SettingsHandler{Repo: repo, Defaults: defaults}
}

func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Repo.GetOrCreate(r.Context(), h.Defaults)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var settings entity.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	if settings.FromEmail == "" || settings.AdminEmail == "" {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", "from_email and admin_email are required")
		return
	}

	if err := h.Repo.Update(r.Context(), &settings); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
