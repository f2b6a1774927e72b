package domain

// ChallengeInternalError é o código devolvido quando a verificação falha por motivos internos
// (transporte, status não-2xx, resposta malformada) em vez de recusa do serviço.
const ChallengeInternalError = "internal-error"

// ChallengeResult é o resultado da verificação de um token de desafio.
type ChallengeResult struct {
	Success     bool     `json:"success"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
	ChallengeTS string   `json:"challenge_ts,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
}

// FailedChallenge devolve um resultado de falha com o código internal-error.
func FailedChallenge() ChallengeResult {
	return ChallengeResult{Success: false, ErrorCodes: []string{ChallengeInternalError}}
}
