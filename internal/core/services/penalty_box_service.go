package services

import (
	"context"
	"fmt"
	"time"

	"github.com/extreamsys/contact-api/internal/core/domain"
	"github.com/extreamsys/contact-api/internal/core/ports"
)

const penaltyKeyPrefix = "penalty:"

// PenaltyBoxService bane temporariamente identidades que violam o rate limit repetidamente.
type PenaltyBoxService struct {
	storage   ports.Storage
	threshold int64
	ttl       time.Duration
}

func NewPenaltyBoxService(storage ports.Storage, threshold int, ttl time.Duration) (*PenaltyBoxService, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if threshold <= 0 {
		return nil, fmt.Errorf("threshold must be positive")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}

	return &PenaltyBoxService{storage: storage, threshold: int64(threshold), ttl: ttl}, nil
}

// IsBoxed informa se a identidade atingiu o limite de violações. Sem efeitos colaterais.
func (s *PenaltyBoxService) IsBoxed(ctx context.Context, identity string) (bool, error) {
	count, err := s.storage.GetCount(ctx, penaltyKeyPrefix+identity)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return count >= s.threshold, nil
}

// RecordViolation incrementa o contador de violações e renova o TTL.
// Repeated abuse keeps resetting the clock (sliding escalation).
func (s *PenaltyBoxService) RecordViolation(ctx context.Context, identity string) error {
	if _, err := s.storage.Increment(ctx, penaltyKeyPrefix+identity, s.ttl); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
