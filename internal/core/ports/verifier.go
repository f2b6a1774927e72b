package ports

import (
	"context"

	"github.com/extreamsys/contact-api/internal/core/domain"
)

// ChallengeVerifier valida um token de desafio junto ao serviço externo.
// Verify never fails with an error: any transport or protocol problem is
// reported as a failed result carrying the internal-error code.
type ChallengeVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) domain.ChallengeResult
}
