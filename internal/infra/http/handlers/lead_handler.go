package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tutorhive/tutorhive-api/internal/infra/http/middleware"
	"github.com/tutorhive/tutorhive-api/internal/usecase"
)

type LeadHandler struct {
	SubmitUC *usecase.SubmitLeadUseCase
}

func NewLeadHandler(submitUC *usecase.SubmitLeadUseCase) *LeadHandler {
	return &LeadHandler{SubmitUC: submitUC}
}

// HandleSubmit is the public lead capture endpoint for both join and contact
// forms. Join submitters are expected to have completed the verification-code
// check first; that ordering is the client's job, not re-checked here.
func (h *LeadHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}
	input.ClientIP = getClientIP(r)

	output, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		if domainErr, ok := err.(*usecase.DomainError); ok {
			switch domainErr.Code {
			case "CAPTCHA_FAILED":
				middleware.RecordCaptchaFailure()
			case "RATE_LIMIT_EXCEEDED":
				middleware.RecordRateLimitRefusal("submit")
			}
		}
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadSubmission(input.Kind)
	writeJSON(w, http.StatusCreated, output)
}
