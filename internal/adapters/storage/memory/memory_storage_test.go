package memory

import (
	"context"
	"testing"
	"time"
)

func TestCountSliding(t *testing.T) {
	storage := New()
	ctx := context.Background()
	base := time.Now()

	for i := 1; i <= 3; i++ {
		count, oldest, err := storage.CountSliding(ctx, "ratelimit:contact:1.2.3.4", time.Hour, base.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != int64(i) {
			t.Fatalf("expected count=%d, got %d", i, count)
		}
		if oldest.UnixMilli() != base.Add(time.Second).UnixMilli() {
			t.Fatalf("expected oldest to stay at first attempt, got %v", oldest)
		}
	}
}

func TestCountSliding_DropsExpiredEntries(t *testing.T) {
	storage := New()
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 5; i++ {
		if _, _, err := storage.CountSliding(ctx, "k", time.Minute, base); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	count, _, err := storage.CountSliding(ctx, "k", time.Minute, base.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the fresh attempt counted, got %d", count)
	}
}

func TestIncrementAndGetCount(t *testing.T) {
	storage := New()
	ctx := context.Background()

	if count, err := storage.GetCount(ctx, "penalty:1.2.3.4"); err != nil || count != 0 {
		t.Fatalf("expected absent key to read as zero, got count=%d err=%v", count, err)
	}

	for i := 1; i <= 3; i++ {
		count, err := storage.Increment(ctx, "penalty:1.2.3.4", time.Hour)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != int64(i) {
			t.Fatalf("expected count=%d, got %d", i, count)
		}
	}

	if count, err := storage.GetCount(ctx, "penalty:1.2.3.4"); err != nil || count != 3 {
		t.Fatalf("expected count=3, got count=%d err=%v", count, err)
	}
}

func TestCounterExpiry(t *testing.T) {
	storage := New()
	ctx := context.Background()

	if _, err := storage.Increment(ctx, "penalty:9.9.9.9", 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if count, err := storage.GetCount(ctx, "penalty:9.9.9.9"); err != nil || count != 0 {
		t.Fatalf("expected counter expired, got count=%d err=%v", count, err)
	}
}

func TestAppend(t *testing.T) {
	storage := New()
	if err := storage.Append(context.Background(), "logs:ratelimit:x", []byte(`{}`), time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
