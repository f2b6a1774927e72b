// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"

	"github.com/extreamsys/contact-api/internal/core/domain"
)

type RateLimiter interface {
	Allow(ctx context.Context, scope domain.Scope, identity string) (domain.Decision, error)
}

type PenaltyBox interface {
	IsBoxed(ctx context.Context, identity string) (bool, error)
	RecordViolation(ctx context.Context, identity string) error
}
