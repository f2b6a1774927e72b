// Package services implementa a lógica central do pipeline de admissão.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/extreamsys/contact-api/internal/core/domain"
	"github.com/extreamsys/contact-api/internal/core/ports"
)

// RateLimiterService implementa janela deslizante por (scope, identidade) sobre o storage.
type RateLimiterService struct {
	storage ports.Storage
	rules   map[domain.Scope]domain.RateLimitRule
	now     func() time.Time
}

func NewRateLimiterService(storage ports.Storage, rules map[domain.Scope]domain.RateLimitRule) (*RateLimiterService, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("at least one scope rule is required")
	}
	for scope, rule := range rules {
		if rule.Requests <= 0 || rule.Window <= 0 {
			return nil, fmt.Errorf("rule for scope %q must have positive values", scope)
		}
	}

	return &RateLimiterService{storage: storage, rules: rules, now: time.Now}, nil
}

// Allow avalia se a identidade ainda tem slots na janela deslizante do escopo.
// The attempt itself is always counted, allowed or not, just like the check
// always consumes a slot in the upstream store.
func (s *RateLimiterService) Allow(ctx context.Context, scope domain.Scope, identity string) (domain.Decision, error) {
	rule, ok := s.rules[scope]
	if !ok {
		return domain.Decision{}, fmt.Errorf("no rule configured for scope %q", scope)
	}

	now := s.now()
	key := fmt.Sprintf("ratelimit:%s:%s", scope, identity)

	count, oldest, err := s.storage.CountSliding(ctx, key, rule.Window, now)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	remaining := rule.Requests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	resetAt := now.Add(rule.Window)
	if !oldest.IsZero() {
		resetAt = oldest.Add(rule.Window)
	}

	return domain.Decision{
		Allowed:   int(count) <= rule.Requests,
		Limit:     rule.Requests,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
