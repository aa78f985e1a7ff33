package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/mbeoliero/kit/log"

	"github.com/mbeoliero/realty/internal/config"
)

// BrevoMailer sends transactional email through the Brevo SMTP API.
// Without an API key mails are logged instead of sent.
type BrevoMailer struct {
	cli         *client.Client
	url         string
	apiKey      string
	senderEmail string
	senderName  string
}

// NewBrevoMailer creates a BrevoMailer
func NewBrevoMailer(cli *client.Client, cfg config.NotifyConfig) *BrevoMailer {
	return &BrevoMailer{
		cli:         cli,
		url:         cfg.BrevoURL,
		apiKey:      cfg.BrevoAPIKey,
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
	}
}

type brevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoRequest struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

// Send sends e
func (m *BrevoMailer) Send(ctx context.Context, e Email) error {
	if m.apiKey == "" {
		log.CtxInfo(ctx, "mailer not configured, skipping: to=%s, subject=%s", e.To, e.Subject)
		return nil
	}

	b, err := json.Marshal(brevoRequest{
		Sender:      brevoContact{Email: m.senderEmail, Name: m.senderName},
		To:          []brevoContact{{Email: e.To, Name: e.ToName}},
		Subject:     e.Subject,
		HTMLContent: e.HTML,
	})
	if err != nil {
		return err
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(m.url)
	req.Header.SetContentTypeBytes([]byte(consts.MIMEApplicationJSON))
	req.Header.Set("api-key", m.apiKey)
	req.SetBody(b)

	if err := m.cli.Do(ctx, req, resp); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("send email: status=%d, body=%s", resp.StatusCode(), resp.Body())
	}
	return nil
}

// FirstMessageEmail tells a user an admin started talking to them
func FirstMessageEmail(to, toName, fromName, link string) Email {
	return Email{
		To:      to,
		ToName:  toName,
		Subject: "You have a new message",
		HTML: fmt.Sprintf(`<p>Hello %s,</p><p>%s sent you a message.</p><p><a href="%s">Open the conversation</a></p>`,
			html.EscapeString(toName), html.EscapeString(fromName), html.EscapeString(link)),
	}
}

// AgentInviteEmail carries the credentials of a newly invited agent
func AgentInviteEmail(to, name, agencyName, tempPassword, loginURL string) Email {
	return Email{
		To:      to,
		ToName:  name,
		Subject: "You have been invited to " + agencyName,
		HTML: fmt.Sprintf(`<p>Hello %s,</p><p>You have been added as an agent of %s.</p><p>Email: %s<br/>Temporary password: %s</p><p><a href="%s">Sign in</a> and change your password.</p>`,
			html.EscapeString(name), html.EscapeString(agencyName), html.EscapeString(to), html.EscapeString(tempPassword), html.EscapeString(loginURL)),
	}
}
