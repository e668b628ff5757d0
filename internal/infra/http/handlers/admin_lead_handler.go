package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tutorhive/tutorhive-api/internal/entity"
	"github.com/tutorhive/tutorhive-api/internal/usecase"
)

// AdminLeadHandler exposes the lifecycle operations on lead requests. All
// routes run behind the admin session guard.
type AdminLeadHandler struct {
	LifecycleUC *usecase.LeadLifecycleUseCase
}

func NewAdminLeadHandler(lifecycleUC *usecase.LeadLifecycleUseCase) *AdminLeadHandler {
	return &AdminLeadHandler{LifecycleUC: lifecycleUC}
}

// leadKind resolves the {kind} route param. Anything other than join|contact
// is a 404, there is no such collection.
func leadKind(r *http.Request) (entity.LeadKind, bool) {
	switch chi.URLParam(r, "kind") {
	case "join":
		return entity.KindJoin, true
	case "contact":
		return entity.KindContact, true
	}
	return "", false
}

// HandleList returns the full set for a kind, newest first. Search, status
// filtering and re-sorting happen client-side.
func (h *AdminLeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	kind, ok := leadKind(r)
	if !ok {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "unknown lead kind")
		return
	}

	leads, err := h.LifecycleUC.List(r.Context(), kind)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *AdminLeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	kind, ok := leadKind(r)
	if !ok {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "unknown lead kind")
		return
	}

	lead, err := h.LifecycleUC.Get(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminLeadHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	kind, ok := leadKind(r)
	if !ok {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "unknown lead kind")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	lead, err := h.LifecycleUC.UpdateStatus(r.Context(), kind, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *AdminLeadHandler) HandleUpdateTeleCallingStatus(w http.ResponseWriter, r *http.Request) {
	kind, ok := leadKind(r)
	if !ok {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "unknown lead kind")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	lead, err := h.LifecycleUC.UpdateTeleCallingStatus(r.Context(), kind, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

type addNoteRequest struct {
	Content string `json:"content"`
}

func (h *AdminLeadHandler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	kind, ok := leadKind(r)
	if !ok {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "unknown lead kind")
		return
	}

	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	lead, err := h.LifecycleUC.AddNote(r.Context(), kind, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

type sendEmailRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *AdminLeadHandler) HandleSendEmail(w http.ResponseWriter, r *http.Request) {
	kind, ok := leadKind(r)
	if !ok {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "unknown lead kind")
		return
	}

	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	if err := h.LifecycleUC.SendEmail(r.Context(), kind, chi.URLParam(r, "id"), req.Subject, req.Body); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *AdminLeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	kind, ok := leadKind(r)
	if !ok {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "unknown lead kind")
		return
	}

	if err := h.LifecycleUC.Delete(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
