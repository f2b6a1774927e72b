package domain

import "time"

// OutcomeKind enumera os estados terminais do pipeline de admissão.
type OutcomeKind int

const (
	OutcomeAccepted OutcomeKind = iota
	RejectOversized
	RejectUnknownClient
	RejectBoxed
	RejectRateLimited
	RejectMalformedBody
	RejectMissingToken
	RejectChallengeFailed
	RejectInvalidFields
	RejectDispatchFailed
	RejectInternal
)

// Outcome é a decisão final do pipeline para uma única requisição,
// com tudo que a camada HTTP precisa para montar a resposta.
type Outcome struct {
	Kind        OutcomeKind
	RateLimit   *Decision
	RetryAfter  time.Duration
	FieldErrors []FieldError
	ErrorCodes  []string
	MessageID   string
}

func Accepted(dec *Decision, messageID string) Outcome {
	return Outcome{Kind: OutcomeAccepted, RateLimit: dec, MessageID: messageID}
}

func Rejected(kind OutcomeKind) Outcome {
	return Outcome{Kind: kind}
}
