package domain

// UnknownClient é o valor sentinela devolvido quando nenhum header de proxy identifica o cliente.
const UnknownClient = "unknown"

// ContactSubmission is the raw, untrusted payload posted by the contact form.
type ContactSubmission struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Company        string `json:"company,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Message        string `json:"message"`
	TurnstileToken string `json:"turnstileToken"`
}

// NewsletterSubmission is the raw payload posted by the newsletter signup form.
type NewsletterSubmission struct {
	Email          string `json:"email"`
	TurnstileToken string `json:"turnstileToken"`
}

// ContactForm is a contact submission that survived sanitization and validation.
// Only this type ever reaches the email dispatcher.
type ContactForm struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Message string
}
