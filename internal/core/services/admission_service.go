package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/extreamsys/contact-api/internal/core/domain"
	"github.com/extreamsys/contact-api/internal/core/ports"
)

// FailPolicy decide o destino da requisição quando o storage está indisponível.
type FailPolicy string

const (
	// FailOpen admite a requisição com um warning (disponibilidade sobre rigor).
	FailOpen FailPolicy = "open"
	// FailClosed rejeita a requisição com um erro genérico.
	FailClosed FailPolicy = "closed"
)

// Submission é a entrada do pipeline: o que a camada HTTP extraiu da requisição,
// sem nada decidido ainda.
type Submission struct {
	Endpoint      string
	Scope         domain.Scope
	ContentLength int64
	Header        http.Header
	Body          io.Reader

	// clientIP é resolvido pelo gate; vazio até lá.
	clientIP string
}

type AdmissionConfig struct {
	MaxBodyBytes    int64
	FailPolicy      FailPolicy
	BoxedRetryAfter time.Duration
}

// AdmissionDeps agrupa os colaboradores do pipeline, todos construídos uma vez
// no start do processo e injetados por referência.
type AdmissionDeps struct {
	Limiter    ports.RateLimiter
	Penalty    ports.PenaltyBox
	Verifier   ports.ChallengeVerifier
	Dispatcher ports.EmailDispatcher
	Audit      ports.AuditLogger
	ResolveIP  func(http.Header) string
	Logger     *slog.Logger
}

// AdmissionService sequencia as defesas na ordem fixa:
// tamanho → identidade → penalty box → rate limit → parse → sanitize →
// desafio → validação → despacho.
type AdmissionService struct {
	deps AdmissionDeps
	cfg  AdmissionConfig
}

func NewAdmissionService(deps AdmissionDeps, cfg AdmissionConfig) (*AdmissionService, error) {
	if deps.Limiter == nil || deps.Penalty == nil || deps.Verifier == nil || deps.Dispatcher == nil || deps.Audit == nil {
		return nil, fmt.Errorf("all pipeline collaborators are required")
	}
	if deps.ResolveIP == nil {
		return nil, fmt.Errorf("client IP resolver is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10_000
	}
	if cfg.BoxedRetryAfter <= 0 {
		cfg.BoxedRetryAfter = time.Hour
	}
	if cfg.FailPolicy == "" {
		cfg.FailPolicy = FailOpen
	}

	return &AdmissionService{deps: deps, cfg: cfg}, nil
}

// AdmitContact conduz uma submissão do formulário de contato até o despacho.
func (s *AdmissionService) AdmitContact(ctx context.Context, sub Submission) domain.Outcome {
	out, proceed := s.gate(ctx, &sub)
	if !proceed {
		return out
	}

	var raw domain.ContactSubmission
	if err := s.decodeBody(sub.Body, &raw); err != nil {
		return withDecision(domain.RejectMalformedBody, out.RateLimit)
	}
	clean := raw.Sanitized()

	if rejected, rej := s.checkChallenge(ctx, clean.TurnstileToken, sub.clientIP, out.RateLimit); rejected {
		return rej
	}

	form, fieldErrs := clean.Validate()
	if len(fieldErrs) > 0 {
		rej := withDecision(domain.RejectInvalidFields, out.RateLimit)
		rej.FieldErrors = fieldErrs
		return rej
	}

	messageID, err := s.deps.Dispatcher.SendNotification(ctx, form)
	if err != nil {
		s.deps.Logger.Error("notification dispatch failed", "identity", sub.clientIP, "error", err)
		return withDecision(domain.RejectDispatchFailed, out.RateLimit)
	}

	// Best-effort: a lost confirmation never fails the request.
	if _, err := s.deps.Dispatcher.SendConfirmation(ctx, form.Email, form.Name); err != nil {
		s.deps.Logger.Warn("confirmation dispatch failed", "email", form.Email, "error", err)
	}

	s.deps.Logger.Info("contact submission accepted", "identity", sub.clientIP, "messageID", messageID)
	return domain.Accepted(out.RateLimit, messageID)
}

// AdmitNewsletter conduz uma inscrição de newsletter pelo mesmo pipeline,
// com o escopo e o schema próprios do endpoint.
func (s *AdmissionService) AdmitNewsletter(ctx context.Context, sub Submission) domain.Outcome {
	out, proceed := s.gate(ctx, &sub)
	if !proceed {
		return out
	}

	var raw domain.NewsletterSubmission
	if err := s.decodeBody(sub.Body, &raw); err != nil {
		return withDecision(domain.RejectMalformedBody, out.RateLimit)
	}
	clean := raw.Sanitized()

	if rejected, rej := s.checkChallenge(ctx, clean.TurnstileToken, sub.clientIP, out.RateLimit); rejected {
		return rej
	}

	email, fieldErrs := clean.Validate()
	if len(fieldErrs) > 0 {
		rej := withDecision(domain.RejectInvalidFields, out.RateLimit)
		rej.FieldErrors = fieldErrs
		return rej
	}

	messageID, err := s.deps.Dispatcher.SendNewsletterWelcome(ctx, email)
	if err != nil {
		s.deps.Logger.Error("newsletter welcome dispatch failed", "identity", sub.clientIP, "error", err)
		return withDecision(domain.RejectDispatchFailed, out.RateLimit)
	}

	s.deps.Logger.Info("newsletter signup accepted", "identity", sub.clientIP, "messageID", messageID)
	return domain.Accepted(out.RateLimit, messageID)
}

// gate executa os estágios compartilhados (tamanho, identidade, penalty box,
// rate limit). Devolve proceed=false com o Outcome terminal quando a requisição
// não deve seguir para o corpo.
func (s *AdmissionService) gate(ctx context.Context, sub *Submission) (domain.Outcome, bool) {
	// Declared content length must be present and under the ceiling before
	// anything else runs, identity resolution included.
	if sub.ContentLength <= 0 || sub.ContentLength > s.cfg.MaxBodyBytes {
		return domain.Rejected(domain.RejectOversized), false
	}

	sub.clientIP = s.deps.ResolveIP(sub.Header)
	if sub.clientIP == "" || sub.clientIP == domain.UnknownClient {
		return domain.Rejected(domain.RejectUnknownClient), false
	}

	boxed, err := s.deps.Penalty.IsBoxed(ctx, sub.clientIP)
	switch {
	case err != nil:
		if s.cfg.FailPolicy == FailClosed {
			s.deps.Logger.Error("penalty box unavailable, rejecting", "identity", sub.clientIP, "error", err)
			return domain.Rejected(domain.RejectInternal), false
		}
		s.deps.Logger.Warn("penalty box unavailable, admitting", "identity", sub.clientIP, "error", err)
	case boxed:
		s.deps.Logger.Warn("boxed identity rejected", "identity", sub.clientIP, "endpoint", sub.Endpoint)
		rej := domain.Rejected(domain.RejectBoxed)
		rej.RetryAfter = s.cfg.BoxedRetryAfter
		return rej, false
	}

	dec, err := s.deps.Limiter.Allow(ctx, sub.Scope, sub.clientIP)
	if err != nil {
		if s.cfg.FailPolicy == FailClosed {
			s.deps.Logger.Error("rate limiter unavailable, rejecting", "identity", sub.clientIP, "error", err)
			return domain.Rejected(domain.RejectInternal), false
		}
		s.deps.Logger.Warn("rate limiter unavailable, admitting", "identity", sub.clientIP, "error", err)
		return domain.Outcome{Kind: domain.OutcomeAccepted}, true
	}

	now := time.Now()
	kind := domain.AuditRateLimitPassed
	if !dec.Allowed {
		kind = domain.AuditRateLimitBlocked
	}
	s.deps.Audit.Log(ctx, domain.AuditEvent{
		Kind:       kind,
		Identifier: sub.clientIP,
		Endpoint:   sub.Endpoint,
		Limit:      dec.Limit,
		Remaining:  dec.Remaining,
		Reset:      dec.ResetAt,
		Timestamp:  now,
	})

	if !dec.Allowed {
		if err := s.deps.Penalty.RecordViolation(ctx, sub.clientIP); err != nil {
			s.deps.Logger.Warn("penalty violation not recorded", "identity", sub.clientIP, "error", err)
		}
		rej := withDecision(domain.RejectRateLimited, &dec)
		rej.RetryAfter = dec.RetryAfter(now)
		return rej, false
	}

	return domain.Outcome{Kind: domain.OutcomeAccepted, RateLimit: &dec}, true
}

// checkChallenge aplica a pré-condição de token presente e só então chama o verificador.
func (s *AdmissionService) checkChallenge(ctx context.Context, token, clientIP string, dec *domain.Decision) (bool, domain.Outcome) {
	token = strings.TrimSpace(token)
	if token == "" {
		return true, withDecision(domain.RejectMissingToken, dec)
	}

	result := s.deps.Verifier.Verify(ctx, token, clientIP)
	if !result.Success {
		s.deps.Logger.Warn("challenge verification failed", "identity", clientIP, "errorCodes", result.ErrorCodes)
		rej := withDecision(domain.RejectChallengeFailed, dec)
		rej.ErrorCodes = result.ErrorCodes
		return true, rej
	}
	return false, domain.Outcome{}
}

func (s *AdmissionService) decodeBody(body io.Reader, v any) error {
	if body == nil {
		return fmt.Errorf("missing body")
	}
	dec := json.NewDecoder(io.LimitReader(body, s.cfg.MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	// Exactly one JSON value per body; anything after it is malformed input.
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON payload")
	}
	return nil
}

func withDecision(kind domain.OutcomeKind, dec *domain.Decision) domain.Outcome {
	return domain.Outcome{Kind: kind, RateLimit: dec}
}
