package domain

import (
	"regexp"
	"strings"
)

var (
	angleBrackets = regexp.MustCompile(`[<>]`)
	jsScheme      = regexp.MustCompile(`(?i)javascript:`)
	eventHandlers = regexp.MustCompile(`(?i)on\w+=`)
)

// SanitizeText neutraliza conteúdo potencialmente perigoso antes da validação.
// Runs before schema validation so validation always sees neutralized text.
// Replacements repeat until a fixpoint: a single pass would let fragments of
// overlapping matches reassemble into a new match (e.g. "jjavascript:avascript:").
func SanitizeText(s string) string {
	for {
		next := angleBrackets.ReplaceAllString(s, "")
		next = jsScheme.ReplaceAllString(next, "")
		next = eventHandlers.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

// Sanitized devolve uma cópia com todos os campos string neutralizados.
func (s ContactSubmission) Sanitized() ContactSubmission {
	return ContactSubmission{
		Name:           SanitizeText(s.Name),
		Email:          SanitizeText(s.Email),
		Company:        SanitizeText(s.Company),
		Phone:          SanitizeText(s.Phone),
		Message:        SanitizeText(s.Message),
		TurnstileToken: SanitizeText(s.TurnstileToken),
	}
}

func (s NewsletterSubmission) Sanitized() NewsletterSubmission {
	return NewsletterSubmission{
		Email:          SanitizeText(s.Email),
		TurnstileToken: SanitizeText(s.TurnstileToken),
	}
}
