// Package email 通知邮件发送
package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"studio-site-api/internal/config"
)

// ErrNotConfigured 邮件服务凭证未配置
var ErrNotConfigured = errors.New("email provider not configured")

// Message 一封 HTML 通知邮件
type Message struct {
	Subject string
	HTML    string
}

// Mailer 邮件发送端口；返回服务商的消息 ID
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendMailer 通过 Resend 发送，收发件人取自配置
type ResendMailer struct {
	client  *resend.Client
	from    string
	to      []string
	subject string
}

// NewResendMailer APIKey 为空时返回未配置的发送器，Send 时报 ErrNotConfigured
func NewResendMailer(cfg *config.EmailConfig) (*ResendMailer, error) {
	m := &ResendMailer{
		from:    strings.TrimSpace(cfg.From),
		to:      cfg.To,
		subject: strings.TrimSpace(cfg.Subject),
	}
	apiKey := strings.TrimSpace(cfg.Resend.APIKey)
	if apiKey == "" {
		return m, nil
	}

	client := resend.NewCustomClient(&http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}, apiKey)
	if base := strings.TrimSpace(cfg.Resend.BaseURL); base != "" {
		u, err := url.Parse(strings.TrimRight(base, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url: %w", err)
		}
		client.BaseURL = u
	}
	m.client = client
	return m, nil
}

// Send Subject 为空时使用配置中的默认主题
func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	if m == nil || m.client == nil {
		return "", ErrNotConfigured
	}
	if m.from == "" || len(m.to) == 0 {
		return "", fmt.Errorf("%w: from/to addresses missing", ErrNotConfigured)
	}

	subject := strings.TrimSpace(msg.Subject)
	if subject == "" {
		subject = m.subject
	}

	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      m.to,
		Subject: subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return sent.Id, nil
}
