package email

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-site-api/internal/config"
)

func TestResendMailer_NotConfigured(t *testing.T) {
	m, err := NewResendMailer(&config.EmailConfig{From: "a@b.c", To: []string{"x@y.z"}})
	require.NoError(t, err)

	_, err = m.Send(context.Background(), Message{HTML: "<p>hi</p>"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestResendMailer_Send(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"msg_123"}`)
	}))
	defer srv.Close()

	m, err := NewResendMailer(&config.EmailConfig{
		Resend:  config.ResendConfig{APIKey: "re_test", BaseURL: srv.URL},
		From:    "Studio <support@example.com>",
		To:      []string{"owner@example.com"},
		Subject: "New Waitlist Signup!",
	})
	require.NoError(t, err)

	id, err := m.Send(context.Background(), Message{HTML: "<p>hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, "msg_123", id)

	assert.Equal(t, "New Waitlist Signup!", got["subject"])
	assert.Equal(t, "<p>hi</p>", got["html"])
	assert.Equal(t, []any{"owner@example.com"}, got["to"])
}
