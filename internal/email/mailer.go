package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/laywill/laywill-api/internal/config"
)

const resendAPI = "https://api.resend.com/emails"

// Mailer sends transactional email
type Mailer interface {
	Configured() bool
	Send(ctx context.Context, to, subject, html string) error
}

// ResendMailer sends email through the Resend HTTP API
type ResendMailer struct {
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewResendMailer creates a new Resend mailer
func NewResendMailer(cfg config.EmailConfig) *ResendMailer {
	return &ResendMailer{
		apiKey: cfg.APIKey,
		from:   cfg.From,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether the mailer has credentials to send
func (m *ResendMailer) Configured() bool {
	return m.apiKey != "" && m.from != ""
}

// Send delivers a single email
func (m *ResendMailer) Send(ctx context.Context, to, subject, html string) error {
	payload, err := json.Marshal(map[string]any{
		"from":    m.from,
		"to":      to,
		"subject": subject,
		"html":    html,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendAPI, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("email send failed: %d %s", resp.StatusCode, string(body))
	}

	return nil
}
