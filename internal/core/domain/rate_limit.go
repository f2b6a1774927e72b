// Package domain concentra entidades e estruturas centrais do pipeline de admissão.
package domain

import "time"

// Scope identifica uma família de janelas de rate limit configurada de forma independente.
type Scope string

const (
	ScopeContact    Scope = "contact"
	ScopeNewsletter Scope = "newsletter"
	ScopeGlobal     Scope = "global"
)

type RateLimitRule struct {
	Requests int
	Window   time.Duration
}

type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter devolve o tempo de espera sugerido até a janela liberar um slot.
// Never less than one second so the client hint stays positive.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	wait := d.ResetAt.Sub(now)
	if wait < time.Second {
		wait = time.Second
	}
	return wait
}
