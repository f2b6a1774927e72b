package services

import (
	"context"
	"testing"
	"time"

	"github.com/extreamsys/contact-api/internal/core/domain"
)

func newTestPenaltyBox(t *testing.T, storage *mockStorage) *PenaltyBoxService {
	t.Helper()
	service, err := NewPenaltyBoxService(storage, 3, time.Hour)
	if err != nil {
		t.Fatalf("failed to create penalty box service: %v", err)
	}
	return service
}

func TestPenaltyBox_BoxedAtThreshold(t *testing.T) {
	storage := newMockStorage()
	service := newTestPenaltyBox(t, storage)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		if err := service.RecordViolation(ctx, "1.2.3.4"); err != nil {
			t.Fatalf("unexpected error on violation %d: %v", i, err)
		}
		boxed, err := service.IsBoxed(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("unexpected error checking box: %v", err)
		}
		if boxed {
			t.Fatalf("expected identity not boxed after %d violations", i)
		}
	}

	if err := service.RecordViolation(ctx, "1.2.3.4"); err != nil {
		t.Fatalf("unexpected error on third violation: %v", err)
	}

	boxed, err := service.IsBoxed(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error checking box: %v", err)
	}
	if !boxed {
		t.Fatalf("expected identity boxed after three violations")
	}
}

func TestPenaltyBox_ViolationRefreshesTTL(t *testing.T) {
	storage := newMockStorage()
	service := newTestPenaltyBox(t, storage)
	ctx := context.Background()

	if err := service.RecordViolation(ctx, "5.6.7.8"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.RecordViolation(ctx, "5.6.7.8"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := storage.violations("5.6.7.8"); got != 2 {
		t.Fatalf("expected 2 violations recorded, got %d", got)
	}
	if ttl := storage.ttls[penaltyKeyPrefix+"5.6.7.8"]; ttl != time.Hour {
		t.Fatalf("expected TTL refreshed to 1h, got %v", ttl)
	}
}

func TestPenaltyBox_StoreFailureIsSurfaced(t *testing.T) {
	storage := newMockStorage()
	storage.failing = true
	service := newTestPenaltyBox(t, storage)
	ctx := context.Background()

	if _, err := service.IsBoxed(ctx, "9.9.9.9"); err == nil || !domain.IsStoreUnavailableError(err) {
		t.Fatalf("expected store-unavailable error from IsBoxed, got %v", err)
	}
	if err := service.RecordViolation(ctx, "9.9.9.9"); err == nil || !domain.IsStoreUnavailableError(err) {
		t.Fatalf("expected store-unavailable error from RecordViolation, got %v", err)
	}
}

func TestPenaltyBox_RejectsInvalidConfig(t *testing.T) {
	if _, err := NewPenaltyBoxService(nil, 3, time.Hour); err == nil {
		t.Fatalf("expected error for nil storage")
	}
	if _, err := NewPenaltyBoxService(newMockStorage(), 0, time.Hour); err == nil {
		t.Fatalf("expected error for non-positive threshold")
	}
	if _, err := NewPenaltyBoxService(newMockStorage(), 3, 0); err == nil {
		t.Fatalf("expected error for non-positive ttl")
	}
}
