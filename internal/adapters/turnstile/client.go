// Package turnstile valida tokens do Cloudflare Turnstile no endpoint siteverify.
package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/extreamsys/contact-api/internal/core/domain"
	"github.com/extreamsys/contact-api/internal/core/ports"
)

const defaultEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

type Client struct {
	secret     string
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.ChallengeVerifier = (*Client)(nil)

type Option func(*Client)

func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New falha quando a chave secreta está ausente: isso é erro de configuração,
// não de verificação, e deve estourar no startup.
func New(secret string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("turnstile secret key is required")
	}

	c := &Client{
		secret:     secret,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Verify envia {secret, response, remoteip} ao serviço de verificação.
// Qualquer falha de transporte, status não-2xx ou resposta malformada vira um
// resultado reprovado com o código internal-error; Verify nunca devolve erro.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) domain.ChallengeResult {
	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		c.logger.Error("turnstile request build failed", "error", err)
		return domain.FailedChallenge()
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("turnstile request failed", "error", err)
		return domain.FailedChallenge()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("turnstile API returned non-success status", "status", resp.StatusCode)
		return domain.FailedChallenge()
	}

	var result domain.ChallengeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error("turnstile response not parseable", "error", err)
		return domain.FailedChallenge()
	}
	return result
}
