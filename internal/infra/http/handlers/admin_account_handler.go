package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tutorhive/tutorhive-api/internal/usecase"
)

type AdminAccountHandler struct {
	AccountUC *usecase.AdminAccountUseCase
}

func NewAdminAccountHandler(accountUC *usecase.AdminAccountUseCase) *AdminAccountHandler {
	return &AdminAccountHandler{AccountUC: accountUC}
}

func (h *AdminAccountHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	admins, err := h.AccountUC.List(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, admins)
}

func (h *AdminAccountHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.AdminAccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	admin, err := h.AccountUC.Create(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, admin)
}

func (h *AdminAccountHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input usecase.AdminAccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	admin, err := h.AccountUC.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, admin)
}

func (h *AdminAccountHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.AccountUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
