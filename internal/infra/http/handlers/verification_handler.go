package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tutorhive/tutorhive-api/internal/constants"
	"github.com/tutorhive/tutorhive-api/internal/infra/http/middleware"
	"github.com/tutorhive/tutorhive-api/internal/usecase"
)

type VerificationHandler struct {
	SendUC      *usecase.SendVerificationCodeUseCase
	CheckUC     *usecase.CheckVerificationCodeUseCase
	RateLimiter *usecase.RateLimiter
}

func NewVerificationHandler(
	sendUC *usecase.SendVerificationCodeUseCase,
	checkUC *usecase.CheckVerificationCodeUseCase,
	rateLimiter *usecase.RateLimiter,
) *VerificationHandler {
	return &VerificationHandler{
		SendUC:      sendUC,
		CheckUC:     checkUC,
		RateLimiter: rateLimiter,
	}
}

type sendCodeRequest struct {
	Email string `json:"email"`
}

type checkCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *VerificationHandler) HandleSendCode(w http.ResponseWriter, r *http.Request) {
	var req sendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	identifier := getClientIP(r) + ":send-code"
	if !h.RateLimiter.Allow(r.Context(), identifier, constants.SendCodeLimit, constants.SendCodeWindow) {
		middleware.RecordRateLimitRefusal("send-code")
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "too many requests, try again later")
		return
	}

	if err := h.SendUC.Execute(r.Context(), req.Email); err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordVerificationCodeSent()
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *VerificationHandler) HandleCheckCode(w http.ResponseWriter, r *http.Request) {
	var req checkCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	identifier := getClientIP(r) + ":check-code"
	if !h.RateLimiter.Allow(r.Context(), identifier, constants.CheckCodeLimit, constants.CheckCodeWindow) {
		middleware.RecordRateLimitRefusal("check-code")
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "too many requests, try again later")
		return
	}

	if err := h.CheckUC.Execute(r.Context(), req.Email, req.Code); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}
