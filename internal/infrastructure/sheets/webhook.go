// Package sheets 表格 Webhook（Apps Script 一类的 GET 接口）客户端
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"studio-site-api/internal/config"
)

const maxBodyBytes = 64 << 10

// ErrNotConfigured Webhook 地址未配置
var ErrNotConfigured = errors.New("sheets webhook not configured")

// RejectedError Webhook 返回非 2xx 或 ok:false
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

// Row 追加到表格的一行，按字段名作为查询参数发送
type Row map[string]string

type WebhookClient struct {
	http *http.Client
}

func NewWebhookClient(cfg *config.SheetsConfig) *WebhookClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &WebhookClient{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Append 以 GET 调用 webhook；secret 非空时附带 secret 参数
func (c *WebhookClient) Append(ctx context.Context, endpoint, secret string, row Row) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ErrNotConfigured
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}

	q := u.Query()
	if secret != "" {
		q.Set("secret", secret)
	}
	for k, v := range row {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call sheets webhook: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RejectedError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(fmt.Sprintf("Sheets webhook failed (%d). %s", resp.StatusCode, string(body))),
		}
	}
	return checkBody(resp.StatusCode, body)
}

// checkBody 响应通常是 JSON；非 JSON 文本视为成功
func checkBody(status int, body []byte) error {
	var parsed struct {
		OK    *bool  `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil
	}
	if parsed.OK != nil && !*parsed.OK {
		msg := strings.TrimSpace(parsed.Error)
		if msg == "" {
			msg = "Sheet error"
		}
		return &RejectedError{Status: status, Message: msg}
	}
	return nil
}
