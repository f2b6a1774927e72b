package ports

import (
	"context"

	"github.com/extreamsys/contact-api/internal/core/domain"
)

// AuditLogger registra eventos de checagem de rate limit.
// Log never fails the request: persistence errors are handled internally.
type AuditLogger interface {
	Log(ctx context.Context, event domain.AuditEvent)
}
