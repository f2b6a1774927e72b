// Package clientip resolve a identidade do cliente a partir dos headers de proxy.
package clientip

import (
	"net/http"
	"strings"

	"github.com/extreamsys/contact-api/internal/core/domain"
)

// FromHeaders devolve o primeiro header de proxy preenchido, na ordem de
// confiança: CF-Connecting-IP, depois a primeira entrada de X-Forwarded-For,
// depois X-Real-IP. Sem nenhum deles devolve o sentinela "unknown" — nunca
// RemoteAddr, para não agrupar clientes distintos atrás do mesmo proxy num
// único bucket de quota.
func FromHeaders(h http.Header) string {
	if ip := strings.TrimSpace(h.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}

	if forwarded := h.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(h.Get("X-Real-IP")); ip != "" {
		return ip
	}

	return domain.UnknownClient
}
