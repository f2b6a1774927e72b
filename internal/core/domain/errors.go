package domain

import "errors"

// ErrStoreUnavailable marca falhas de infraestrutura do contador compartilhado,
// para que o pipeline aplique a política de fail-open/fail-closed.
var ErrStoreUnavailable = errors.New("counter store unavailable")

func IsStoreUnavailableError(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
