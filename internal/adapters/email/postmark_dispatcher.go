// Package email implementa o despachante de e-mails sobre a API do Postmark.
package email

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/mrz1836/postmark"

	"github.com/extreamsys/contact-api/internal/core/domain"
	"github.com/extreamsys/contact-api/internal/core/ports"
)

type Config struct {
	Token       string
	From        string
	ReplyTo     string
	NotifyEmail string
	Timeout     time.Duration
}

type PostmarkDispatcher struct {
	client *postmark.Client
	cfg    Config
}

var _ ports.EmailDispatcher = (*PostmarkDispatcher)(nil)

func NewPostmarkDispatcher(cfg Config) (*PostmarkDispatcher, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("postmark API token is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("postmark from address is required")
	}
	if cfg.ReplyTo == "" {
		cfg.ReplyTo = cfg.From
	}
	if cfg.NotifyEmail == "" {
		cfg.NotifyEmail = cfg.ReplyTo
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	client := postmark.NewClient(cfg.Token, "")
	client.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &PostmarkDispatcher{client: client, cfg: cfg}, nil
}

// SendNotification entrega a submissão ao time interno. ReplyTo aponta para o
// remetente do formulário para permitir resposta direta.
func (d *PostmarkDispatcher) SendNotification(ctx context.Context, form domain.ContactForm) (string, error) {
	return d.send(ctx, postmark.Email{
		From:          d.cfg.From,
		To:            d.cfg.NotifyEmail,
		ReplyTo:       form.Email,
		Subject:       "New Contact Form Submission - " + form.Name,
		HTMLBody:      notificationHTML(form),
		TextBody:      notificationText(form),
		Tag:           "contact-form",
		TrackOpens:    true,
		MessageStream: "outbound",
	})
}

func (d *PostmarkDispatcher) SendConfirmation(ctx context.Context, email, name string) (string, error) {
	return d.send(ctx, postmark.Email{
		From:          d.cfg.From,
		To:            email,
		ReplyTo:       d.cfg.ReplyTo,
		Subject:       "Thank You for Contacting ExtreamSys",
		HTMLBody:      confirmationHTML(name),
		TextBody:      confirmationText(name),
		Tag:           "contact-confirmation",
		TrackOpens:    true,
		MessageStream: "outbound",
	})
}

func (d *PostmarkDispatcher) SendNewsletterWelcome(ctx context.Context, email string) (string, error) {
	return d.send(ctx, postmark.Email{
		From:          d.cfg.From,
		To:            email,
		ReplyTo:       d.cfg.ReplyTo,
		Subject:       "Welcome to the ExtreamSys Newsletter",
		HTMLBody:      newsletterHTML(),
		TextBody:      newsletterText(),
		Tag:           "newsletter-welcome",
		TrackOpens:    true,
		MessageStream: "outbound",
	})
}

func (d *PostmarkDispatcher) send(ctx context.Context, msg postmark.Email) (string, error) {
	resp, err := d.client.SendEmail(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("postmark send failed: %w", err)
	}
	if resp.ErrorCode != 0 {
		return "", fmt.Errorf("postmark rejected message: code %d: %s", resp.ErrorCode, resp.Message)
	}
	return resp.MessageID, nil
}

func notificationHTML(form domain.ContactForm) string {
	body := fmt.Sprintf("<h2>New Contact Form Submission</h2>"+
		"<p><strong>Name:</strong> %s</p>"+
		"<p><strong>Email:</strong> %s</p>",
		html.EscapeString(form.Name), html.EscapeString(form.Email))
	if form.Company != "" {
		body += fmt.Sprintf("<p><strong>Company:</strong> %s</p>", html.EscapeString(form.Company))
	}
	if form.Phone != "" {
		body += fmt.Sprintf("<p><strong>Phone:</strong> %s</p>", html.EscapeString(form.Phone))
	}
	body += fmt.Sprintf("<p><strong>Message:</strong></p><p>%s</p>", html.EscapeString(form.Message))
	return body
}

func notificationText(form domain.ContactForm) string {
	body := fmt.Sprintf("New Contact Form Submission\n\nName: %s\nEmail: %s\n", form.Name, form.Email)
	if form.Company != "" {
		body += fmt.Sprintf("Company: %s\n", form.Company)
	}
	if form.Phone != "" {
		body += fmt.Sprintf("Phone: %s\n", form.Phone)
	}
	return body + fmt.Sprintf("\nMessage:\n%s\n", form.Message)
}

func confirmationHTML(name string) string {
	return fmt.Sprintf("<p>Hi %s,</p>"+
		"<p>Thank you for reaching out to ExtreamSys. We received your message and "+
		"will be in touch within 1-2 business days.</p>"+
		"<p>— The ExtreamSys Team</p>", html.EscapeString(name))
}

func confirmationText(name string) string {
	return fmt.Sprintf("Hi %s,\n\nThank you for reaching out to ExtreamSys. We received your "+
		"message and will be in touch within 1-2 business days.\n\n— The ExtreamSys Team\n", name)
}

func newsletterHTML() string {
	return "<p>Welcome aboard!</p><p>You are now subscribed to the ExtreamSys newsletter.</p>"
}

func newsletterText() string {
	return "Welcome aboard!\n\nYou are now subscribed to the ExtreamSys newsletter.\n"
}
