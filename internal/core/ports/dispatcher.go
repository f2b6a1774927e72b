package ports

import (
	"context"

	"github.com/extreamsys/contact-api/internal/core/domain"
)

// EmailDispatcher é o colaborador externo que entrega as mensagens do pipeline.
type EmailDispatcher interface {
	// SendNotification delivers the submission to the internal team.
	// Failure here is fatal to the request.
	SendNotification(ctx context.Context, form domain.ContactForm) (messageID string, err error)

	// SendConfirmation acknowledges the sender. Best-effort.
	SendConfirmation(ctx context.Context, email, name string) (messageID string, err error)

	// SendNewsletterWelcome greets a new subscriber.
	SendNewsletterWelcome(ctx context.Context, email string) (messageID string, err error)
}
