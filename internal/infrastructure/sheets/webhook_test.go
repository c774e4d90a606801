package sheets

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-site-api/internal/config"
)

func newServer(t *testing.T, status int, body string, got *url.Values) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		if got != nil {
			*got = r.URL.Query()
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAppend_Success(t *testing.T) {
	var got url.Values
	srv := newServer(t, http.StatusOK, `{"ok":true}`, &got)

	c := NewWebhookClient(&config.SheetsConfig{})
	err := c.Append(context.Background(), srv.URL+"/exec?sheet=leads", "s3cret", Row{"email": "a@b.c", "ownerName": "Ann"})
	require.NoError(t, err)

	assert.Equal(t, "s3cret", got.Get("secret"))
	assert.Equal(t, "a@b.c", got.Get("email"))
	assert.Equal(t, "Ann", got.Get("ownerName"))
	assert.Equal(t, "leads", got.Get("sheet"))
}

func TestAppend_NoSecret(t *testing.T) {
	var got url.Values
	srv := newServer(t, http.StatusOK, "", &got)

	require.NoError(t, NewWebhookClient(&config.SheetsConfig{}).Append(context.Background(), srv.URL, "", Row{"a": "1"}))
	assert.False(t, got.Has("secret"))
}

func TestAppend_NonJSONBodyAccepted(t *testing.T) {
	srv := newServer(t, http.StatusOK, "Thanks!", nil)
	assert.NoError(t, NewWebhookClient(&config.SheetsConfig{}).Append(context.Background(), srv.URL, "", Row{}))
}

func TestAppend_Non2xx(t *testing.T) {
	srv := newServer(t, http.StatusForbidden, "denied", nil)
	err := NewWebhookClient(&config.SheetsConfig{}).Append(context.Background(), srv.URL, "", Row{})

	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, http.StatusForbidden, rej.Status)
	assert.Equal(t, "Sheets webhook failed (403). denied", rej.Error())
}

func TestAppend_OKFalse(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"with error":    {body: `{"ok":false,"error":"bad secret"}`, want: "bad secret"},
		"without error": {body: `{"ok":false}`, want: "Sheet error"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := newServer(t, http.StatusOK, tc.body, nil)
			err := NewWebhookClient(&config.SheetsConfig{}).Append(context.Background(), srv.URL, "", Row{})

			var rej *RejectedError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, tc.want, rej.Message)
		})
	}
}

func TestAppend_NotConfigured(t *testing.T) {
	err := NewWebhookClient(&config.SheetsConfig{}).Append(context.Background(), " ", "", Row{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
