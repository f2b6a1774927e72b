// Package middleware disponibiliza middlewares HTTP específicos da aplicação.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/extreamsys/contact-api/internal/adapters/http/clientip"
	"github.com/extreamsys/contact-api/internal/core/domain"
	"github.com/extreamsys/contact-api/internal/core/ports"
	"github.com/extreamsys/contact-api/internal/core/services"
)

// GlobalRateLimitOptions configura o limitador de fallback aplicado a toda a API.
type GlobalRateLimitOptions struct {
	Limiter    ports.RateLimiter
	Penalty    ports.PenaltyBox
	Audit      ports.AuditLogger
	FailPolicy services.FailPolicy
	Logger     *slog.Logger
}

// NewGlobalRateLimit aplica o escopo global (proteção de fallback) antes de
// qualquer handler. O escopo por endpoint continua sendo checado no pipeline.
func NewGlobalRateLimit(opts GlobalRateLimitOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Preflight nunca consome quota nem exige identidade.
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if opts.Limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			identity := clientip.FromHeaders(r.Header)
			if identity == domain.UnknownClient {
				writeError(w, http.StatusBadRequest, "Unable to verify request origin")
				return
			}

			dec, err := opts.Limiter.Allow(r.Context(), domain.ScopeGlobal, identity)
			if err != nil {
				if opts.FailPolicy == services.FailClosed {
					logger.Error("global rate limiter unavailable, rejecting", "identity", identity, "error", err)
					writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
					return
				}
				logger.Warn("global rate limiter unavailable, admitting", "identity", identity, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now()
			kind := domain.AuditRateLimitPassed
			if !dec.Allowed {
				kind = domain.AuditRateLimitBlocked
			}
			if opts.Audit != nil {
				opts.Audit.Log(r.Context(), domain.AuditEvent{
					Kind:       kind,
					Identifier: identity,
					Endpoint:   r.URL.Path,
					Limit:      dec.Limit,
					Remaining:  dec.Remaining,
					Reset:      dec.ResetAt,
					Timestamp:  now,
				})
			}

			if !dec.Allowed {
				if opts.Penalty != nil {
					if err := opts.Penalty.RecordViolation(r.Context(), identity); err != nil {
						logger.Warn("penalty violation not recorded", "identity", identity, "error", err)
					}
				}

				retry := int(dec.RetryAfter(now) / time.Second)
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(dec.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(dec.ResetAt.Unix(), 10))
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
