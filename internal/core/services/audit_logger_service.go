package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/extreamsys/contact-api/internal/core/domain"
	"github.com/extreamsys/contact-api/internal/core/ports"
)

// AuditLoggerService persiste eventos de rate limit no storage e os espelha no logger.
type AuditLoggerService struct {
	storage ports.Storage
	logger  *slog.Logger
	ttl     time.Duration
}

func NewAuditLoggerService(storage ports.Storage, logger *slog.Logger, ttl time.Duration) *AuditLoggerService {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuditLoggerService{storage: storage, logger: logger, ttl: ttl}
}

// Log registra exatamente um evento por checagem. Falhas de persistência são
// apenas logadas: auditoria nunca derruba a requisição.
func (s *AuditLoggerService) Log(ctx context.Context, event domain.AuditEvent) {
	s.logger.Info("rate limit check",
		"type", event.Kind,
		"identifier", event.Identifier,
		"endpoint", event.Endpoint,
		"limit", event.Limit,
		"remaining", event.Remaining,
		"reset", event.Reset,
	)

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("audit event not serializable", "error", err)
		return
	}

	key := fmt.Sprintf("logs:ratelimit:%s:%s", event.Kind, uuid.NewString())
	if err := s.storage.Append(ctx, key, payload, s.ttl); err != nil {
		s.logger.Warn("audit event not persisted", "key", key, "error", err)
	}
}
