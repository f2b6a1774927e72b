// Package handlers agrupa os handlers HTTP do serviço.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/extreamsys/contact-api/internal/core/domain"
)

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter,omitempty"`
	Details    any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func setRateLimitHeaders(w http.ResponseWriter, dec *domain.Decision) {
	if dec == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(dec.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(dec.ResetAt.Unix(), 10))
}

// writeOutcome traduz o Outcome do pipeline para a resposta HTTP.
// exposeDetails libera os códigos do verificador apenas fora de produção.
func writeOutcome(w http.ResponseWriter, out domain.Outcome, successMessage string, exposeDetails bool) {
	setRateLimitHeaders(w, out.RateLimit)

	switch out.Kind {
	case domain.OutcomeAccepted:
		writeJSON(w, http.StatusOK, successResponse{Success: true, Message: successMessage})

	case domain.RejectOversized:
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "Request payload too large"})

	case domain.RejectUnknownClient:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Unable to verify request origin"})

	case domain.RejectBoxed:
		retry := retrySeconds(out.RetryAfter)
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error:      "Too many failed attempts. Please try again later.",
			RetryAfter: retry,
		})

	case domain.RejectRateLimited:
		retry := retrySeconds(out.RetryAfter)
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error:      "Rate limit exceeded. Please try again later.",
			RetryAfter: retry,
		})

	case domain.RejectMalformedBody:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON payload"})

	case domain.RejectMissingToken:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Verification token is required"})

	case domain.RejectChallengeFailed:
		resp := errorResponse{Error: "Verification failed. Please refresh and try again."}
		if exposeDetails {
			resp.Details = out.ErrorCodes
		}
		writeJSON(w, http.StatusBadRequest, resp)

	case domain.RejectInvalidFields:
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Validation failed",
			Details: out.FieldErrors,
		})

	case domain.RejectDispatchFailed:
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "Unable to process your request. Please try again or contact us directly.",
		})

	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "An unexpected error occurred. Please try again later.",
		})
	}
}

func retrySeconds(d time.Duration) int {
	secs := int(d / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
