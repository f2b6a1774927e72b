package handlers

import (
	"net/http"

	"github.com/extreamsys/contact-api/internal/core/domain"
	"github.com/extreamsys/contact-api/internal/core/services"
)

const contactSuccessMessage = "Thank you for contacting us! We'll be in touch within 1-2 business days."

type ContactHandler struct {
	admission     *services.AdmissionService
	exposeDetails bool
}

func NewContactHandler(admission *services.AdmissionService, exposeDetails bool) *ContactHandler {
	return &ContactHandler{admission: admission, exposeDetails: exposeDetails}
}

func (h *ContactHandler) Handle(w http.ResponseWriter, r *http.Request) {
	out := h.admission.AdmitContact(r.Context(), services.Submission{
		Endpoint:      "/api/contact",
		Scope:         domain.ScopeContact,
		ContentLength: r.ContentLength,
		Header:        r.Header,
		Body:          r.Body,
	})
	writeOutcome(w, out, contactSuccessMessage, h.exposeDetails)
}

// Preflight responde OPTIONS sempre com 200.
func Preflight(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusOK)
}
