package domain

import "time"

const (
	AuditRateLimitPassed  = "rate_limit_passed"
	AuditRateLimitBlocked = "rate_limit_blocked"
)

// AuditEvent é o registro imutável emitido a cada checagem de rate limit.
type AuditEvent struct {
	Kind       string    `json:"type"`
	Identifier string    `json:"identifier"`
	Endpoint   string    `json:"endpoint"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	Reset      time.Time `json:"reset"`
	Timestamp  time.Time `json:"timestamp"`
}
