package handlers

import (
	"net/http"

	"github.com/extreamsys/contact-api/internal/core/domain"
	"github.com/extreamsys/contact-api/internal/core/services"
)

const newsletterSuccessMessage = "You're subscribed! Check your inbox for a welcome email."

type NewsletterHandler struct {
	admission     *services.AdmissionService
	exposeDetails bool
}

func NewNewsletterHandler(admission *services.AdmissionService, exposeDetails bool) *NewsletterHandler {
	return &NewsletterHandler{admission: admission, exposeDetails: exposeDetails}
}

func (h *NewsletterHandler) Handle(w http.ResponseWriter, r *http.Request) {
	out := h.admission.AdmitNewsletter(r.Context(), services.Submission{
		Endpoint:      "/api/newsletter",
		Scope:         domain.ScopeNewsletter,
		ContentLength: r.ContentLength,
		Header:        r.Header,
		Body:          r.Body,
	})
	writeOutcome(w, out, newsletterSuccessMessage, h.exposeDetails)
}
