package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/extreamsys/contact-api/internal/core/domain"
)

// mockStorage implementa ports.Storage em memória, com controle de falha.
type mockStorage struct {
	mu       sync.Mutex
	windows  map[string][]int64
	counters map[string]int64
	ttls     map[string]time.Duration
	events   map[string][]byte

	failing bool
	calls   int
}

var errStorageDown = errors.New("storage down")

func newMockStorage() *mockStorage {
	return &mockStorage{
		windows:  make(map[string][]int64),
		counters: make(map[string]int64),
		ttls:     make(map[string]time.Duration),
		events:   make(map[string][]byte),
	}
}

func (m *mockStorage) CountSliding(_ context.Context, key string, window time.Duration, now time.Time) (int64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failing {
		return 0, time.Time{}, errStorageDown
	}

	cutoff := now.Add(-window).UnixMilli()
	kept := make([]int64, 0, len(m.windows[key])+1)
	for _, ts := range m.windows[key] {
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now.UnixMilli())
	m.windows[key] = kept

	return int64(len(kept)), time.UnixMilli(kept[0]), nil
}

func (m *mockStorage) Increment(_ context.Context, key string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failing {
		return 0, errStorageDown
	}
	m.counters[key]++
	m.ttls[key] = ttl
	return m.counters[key], nil
}

func (m *mockStorage) GetCount(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failing {
		return 0, errStorageDown
	}
	return m.counters[key], nil
}

func (m *mockStorage) Append(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failing {
		return errStorageDown
	}
	m.events[key] = value
	return nil
}

func (m *mockStorage) Close() error { return nil }

func (m *mockStorage) violations(identity string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[penaltyKeyPrefix+identity]
}

// mockVerifier devolve sempre o mesmo resultado e conta invocações.
type mockVerifier struct {
	result domain.ChallengeResult
	calls  int
}

func (m *mockVerifier) Verify(_ context.Context, _, _ string) domain.ChallengeResult {
	m.calls++
	return m.result
}

// mockDispatcher conta envios e falha sob demanda.
type mockDispatcher struct {
	notifyErr  error
	confirmErr error
	welcomeErr error

	notifications int
	confirmations int
	welcomes      int
}

func (m *mockDispatcher) SendNotification(_ context.Context, _ domain.ContactForm) (string, error) {
	if m.notifyErr != nil {
		return "", m.notifyErr
	}
	m.notifications++
	return "msg-notify", nil
}

func (m *mockDispatcher) SendConfirmation(_ context.Context, _, _ string) (string, error) {
	if m.confirmErr != nil {
		return "", m.confirmErr
	}
	m.confirmations++
	return "msg-confirm", nil
}

func (m *mockDispatcher) SendNewsletterWelcome(_ context.Context, _ string) (string, error) {
	if m.welcomeErr != nil {
		return "", m.welcomeErr
	}
	m.welcomes++
	return "msg-welcome", nil
}

// mockAudit acumula os eventos emitidos.
type mockAudit struct {
	events []domain.AuditEvent
}

func (m *mockAudit) Log(_ context.Context, event domain.AuditEvent) {
	m.events = append(m.events, event)
}
